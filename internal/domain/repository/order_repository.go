package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	MaxID(ctx context.Context) (int64, error)
	// SampleByStatus muestrea hasta n pedidos cuyo estado esté en statuses y con updated_at <= asOf.
	SampleByStatus(ctx context.Context, statuses []string, n int, asOf time.Time) ([]*entity.Order, error)
	// ApplyDeltas cambia estado y updated_at de cada pedido en una sola pasada.
	ApplyDeltas(ctx context.Context, deltas []entity.OrderDelta) error
	InsertBatch(ctx context.Context, orders []*entity.Order) error
}
