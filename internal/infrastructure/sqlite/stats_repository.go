package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/sqlbuild"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo conteos para el resumen.
type StatsRepo struct {
	q  Querier
	sb sqlbuild.Builder
}

func NewStatsRepository(q Querier, sb sqlbuild.Builder) *StatsRepo {
	return &StatsRepo{q: q, sb: sb}
}

func (r *StatsRepo) CountRows(ctx context.Context) ([]repository.TableCount, error) {
	counts := make([]repository.TableCount, 0, len(repository.Tables))
	for _, table := range repository.Tables {
		query, err := r.sb.CountRows(table)
		if err != nil {
			return nil, err
		}
		var n int64
		if err := sqlx.GetContext(ctx, r.q, &n, query.SQL, query.Args...); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts = append(counts, repository.TableCount{Table: table, Rows: n})
	}
	return counts, nil
}

func (r *StatsRepo) CountUpdatedCustomers(ctx context.Context) (int64, error) {
	query, err := r.sb.CountUpdated(repository.TableCustomers)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := sqlx.GetContext(ctx, r.q, &n, query.SQL, query.Args...); err != nil {
		return 0, fmt.Errorf("count updated customers: %w", err)
	}
	return n, nil
}
