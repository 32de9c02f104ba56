package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

var paymentColumns = []string{
	"payment_id", "order_id", "payment_method", "amount", "payment_date", "status", "transaction_id",
}

// PaymentRepo pagos sobre PostgreSQL.
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
	rows := make([][]any, len(payments))
	for i, p := range payments {
		rows[i] = []any{p.ID, p.OrderID, p.PaymentMethod, p.Amount, p.PaymentDate, p.Status, p.TransactionID}
	}
	if err := copyRows(ctx, r.q, repository.TablePayments, paymentColumns, rows); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payments: %w", err)
	}
	return nil
}
