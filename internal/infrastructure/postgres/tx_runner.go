package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/sqlbuild"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	sb   sqlbuild.Builder
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) (*TxRunner, error) {
	sb, err := sqlbuild.New(sqlbuild.DialectPostgres)
	if err != nil {
		return nil, err
	}
	return &TxRunner{pool: pool, sb: sb}, nil
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(
			NewCustomerRepository(tx, r.sb),
			NewProductRepository(tx, r.sb),
			NewOrderRepository(tx, r.sb),
		)
	})
}

// RunSeed igual que Run con los repos de líneas y pagos (población inicial).
func (r *TxRunner) RunSeed(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(
			NewCustomerRepository(tx, r.sb),
			NewProductRepository(tx, r.sb),
			NewOrderRepository(tx, r.sb),
			NewOrderItemRepository(tx, r.sb),
			NewPaymentRepository(tx),
		)
	})
}

// Stats repositorio de conteos sobre el pool.
func (r *TxRunner) Stats() *StatsRepo {
	return NewStatsRepository(r.pool, r.sb)
}

func (r *TxRunner) within(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
