package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	MaxID(ctx context.Context) (int64, error)
	// Sample hasta n productos con created_at <= asOf.
	Sample(ctx context.Context, n int, asOf time.Time) ([]*entity.Product, error)
	ApplyDeltas(ctx context.Context, deltas []entity.ProductDelta) error
	InsertBatch(ctx context.Context, products []*entity.Product) error
}
