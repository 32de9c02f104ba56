package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén abierto.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.within(ctx, func(q Querier) error {
		sb := r.store.sb
		return fn(
			NewCustomerRepository(q, sb),
			NewProductRepository(q, sb),
			NewOrderRepository(q, sb),
		)
	})
}

// RunSeed igual que Run pero con los repos de líneas y pagos (población inicial).
func (r *TxRunner) RunSeed(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.within(ctx, func(q Querier) error {
		sb := r.store.sb
		return fn(
			NewCustomerRepository(q, sb),
			NewProductRepository(q, sb),
			NewOrderRepository(q, sb),
			NewOrderItemRepository(q, sb),
			NewPaymentRepository(q),
		)
	})
}

func (r *TxRunner) within(ctx context.Context, fn func(Querier) error) error {
	tx, err := r.store.db.BeginTxx(ctx, nil)
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

// Stats repositorio de conteos fuera de transacción.
func (s *Store) Stats() *StatsRepo {
	return NewStatsRepository(s.db, s.sb)
}

// Stats repositorio de conteos fuera de transacción.
func (r *TxRunner) Stats() *StatsRepo {
	return r.store.Stats()
}
