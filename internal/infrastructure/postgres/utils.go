package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/sqlbuild"
)

// Querier lo que los repositorios necesitan de *pgxpool.Pool y de pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

func getMaxID(ctx context.Context, q Querier, sb sqlbuild.Builder, table, idCol string) (int64, error) {
	query, err := sb.MaxID(table, idCol)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := q.QueryRow(ctx, query.SQL, query.Args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("max id %s: %w", table, err)
	}
	return id, nil
}

// copyRows inserta filas con COPY; es la vía masiva de PostgreSQL.
func copyRows(ctx context.Context, q Querier, table string, columns []string, rows [][]any) error {
	_, err := q.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	return err
}

// sampleRows ejecuta la consulta de muestreo y escanea cada fila con scan.
func sampleRows[T any](ctx context.Context, q Querier, query sqlbuild.Query, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	rows, err := q.Query(ctx, query.SQL, query.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
