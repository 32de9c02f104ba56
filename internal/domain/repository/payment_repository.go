package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
)

// PaymentRepository persistencia de pagos (1:1 con pedidos, solo inserción).
type PaymentRepository interface {
	InsertBatch(ctx context.Context, payments []*entity.Payment) error
}
