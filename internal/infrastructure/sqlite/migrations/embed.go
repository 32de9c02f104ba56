package migrations

import "embed"

// FS migraciones SQLite embebidas del almacén de entidades.
//
//go:embed *.sql
var FS embed.FS
