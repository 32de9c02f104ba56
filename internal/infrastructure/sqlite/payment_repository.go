package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

type paymentRow struct {
	ID            int64   `db:"payment_id"`
	OrderID       int64   `db:"order_id"`
	PaymentMethod string  `db:"payment_method"`
	Amount        string  `db:"amount"`
	PaymentDate   int64   `db:"payment_date"`
	Status        string  `db:"status"`
	TransactionID *string `db:"transaction_id"`
}

// PaymentRepo pagos sobre SQLite.
type PaymentRepo struct {
	q Querier
}

func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) InsertBatch(ctx context.Context, payments []*entity.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	rows := make([]paymentRow, len(payments))
	for i, p := range payments {
		rows[i] = paymentRow{
			ID:            p.ID,
			OrderID:       p.OrderID,
			PaymentMethod: p.PaymentMethod,
			Amount:        money(p.Amount),
			PaymentDate:   toMillis(p.PaymentDate),
			Status:        p.Status,
			TransactionID: p.TransactionID,
		}
	}
	const query = `
		INSERT INTO payments (payment_id, order_id, payment_method, amount, payment_date, status, transaction_id)
		VALUES (:payment_id, :order_id, :payment_method, :amount, :payment_date, :status, :transaction_id)`
	err := inTx(ctx, r.q, func(q Querier) error { return insertChunks(ctx, q, query, rows) })
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payments: %w", err)
	}
	return nil
}
