package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// applyMigrations ejecuta cada .sql de migrationFS una sola vez, dentro de su propia transacción.
// Un advisory lock evita que dos procesos migren a la vez.
func applyMigrations(ctx context.Context, pool *pgxpool.Pool, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("leer migraciones: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(7412026)`); err != nil {
			return fmt.Errorf("lock de migraciones: %w", err)
		}
		if _, err := tx.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
    name       TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
			return fmt.Errorf("crear tabla de migraciones: %w", err)
		}
		for _, file := range files {
			var found int
			err := tx.QueryRow(ctx, `SELECT 1 FROM schema_migrations WHERE name = $1`, file).Scan(&found)
			if err == nil {
				continue
			}
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("verificar migración %s: %w", file, err)
			}
			content, err := fs.ReadFile(migrationFS, file)
			if err != nil {
				return fmt.Errorf("leer migración %s: %w", file, err)
			}
			if _, err := tx.Exec(ctx, extractUp(string(content))); err != nil {
				return fmt.Errorf("ejecutar migración %s: %w", file, err)
			}
			if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, file); err != nil {
				return fmt.Errorf("registrar migración %s: %w", file, err)
			}
		}
		return nil
	})
}

// extractUp devuelve la sección "-- +migrate Up" (o el archivo completo si no hay marcas).
func extractUp(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	if i := strings.Index(content, up); i != -1 {
		content = content[i+len(up):]
	}
	if j := strings.Index(content, down); j != -1 {
		content = content[:j]
	}
	return content
}
