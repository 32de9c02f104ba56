package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
)

// OrderItemRepository persistencia de líneas de pedido (solo inserción: no se mutan).
type OrderItemRepository interface {
	MaxID(ctx context.Context) (int64, error)
	InsertBatch(ctx context.Context, items []*entity.OrderItem) error
}
