// Package sqlite almacén de entidades local sobre un archivo SQLite (driver puro Go de modernc).
// Es el almacén por defecto del simulador; PostgreSQL queda como alternativa para volúmenes grandes.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/sqlbuild"
	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/sqlite/migrations"
)

const (
	dateLayout = "2006-01-02"
	// insertChunk filas por sentencia INSERT para no superar el límite de variables de SQLite.
	insertChunk = 500
)

// Querier abstrae *sqlx.DB y *sqlx.Tx para que los repositorios funcionen dentro o fuera de una transacción.
type Querier interface {
	sqlx.ExtContext
	PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
}

// Store conexión al archivo SQLite con el esquema ya migrado.
type Store struct {
	db *sqlx.DB
	sb sqlbuild.Builder
}

// Open abre (o crea) el archivo en path y aplica las migraciones embebidas.
// Cualquier fallo se reporta como domain.ErrStoreUnavailable.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: ruta de sqlite vacía", domain.ErrStoreUnavailable)
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: abrir sqlite: %v", domain.ErrStoreUnavailable, err)
	}
	// Un solo escritor: el simulador nunca tiene dos lotes en vuelo.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite: %v", domain.ErrStoreUnavailable, err)
	}
	if err := applyMigrations(ctx, db.DB, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migraciones: %v", domain.ErrStoreUnavailable, err)
	}
	sb, err := sqlbuild.New(sqlbuild.DialectSQLite)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, sb: sb}, nil
}

// Close cierra el archivo.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB expone la conexión (repositorios fuera de transacción).
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Builder devuelve el constructor de consultas del dialecto SQLite.
func (s *Store) Builder() sqlbuild.Builder {
	return s.sb
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// isUniqueViolation verifica si un error es una violación de clave primaria o única.
func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// inTx ejecuta fn dentro de la transacción vigente; si q es la conexión abre una propia,
// así una pasada de actualización nunca queda aplicada a medias.
func inTx(ctx context.Context, q Querier, fn func(Querier) error) error {
	db, ok := q.(*sqlx.DB)
	if !ok {
		return fn(q)
	}
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// insertChunks ejecuta un INSERT con nombre por tramos de insertChunk filas.
func insertChunks[T any](ctx context.Context, q Querier, query string, rows []T) error {
	for start := 0; start < len(rows); start += insertChunk {
		end := min(start+insertChunk, len(rows))
		if _, err := sqlx.NamedExecContext(ctx, q, query, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// getMaxID ejecuta la consulta de máximo ID.
func getMaxID(ctx context.Context, q Querier, sb sqlbuild.Builder, table, idCol string) (int64, error) {
	query, err := sb.MaxID(table, idCol)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := sqlx.GetContext(ctx, q, &id, query.SQL, query.Args...); err != nil {
		return 0, fmt.Errorf("max id %s: %w", table, err)
	}
	return id, nil
}
