// Package migrations esquema PostgreSQL embebido en el binario.
package migrations

import "embed"

// FS archivos .sql en orden de nombre.
//
//go:embed *.sql
var FS embed.FS
