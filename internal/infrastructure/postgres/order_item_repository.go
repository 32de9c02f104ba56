package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/sqlbuild"
)

var _ repository.OrderItemRepository = (*OrderItemRepo)(nil)

var orderItemColumns = []string{
	"order_item_id", "order_id", "product_id", "quantity", "unit_price", "total_price", "discount_amount",
}

// OrderItemRepo líneas de pedido sobre PostgreSQL.
type OrderItemRepo struct {
	q  Querier
	sb sqlbuild.Builder
}

func NewOrderItemRepository(q Querier, sb sqlbuild.Builder) *OrderItemRepo {
	return &OrderItemRepo{q: q, sb: sb}
}

func (r *OrderItemRepo) MaxID(ctx context.Context) (int64, error) {
	return getMaxID(ctx, r.q, r.sb, repository.TableOrderItems, sqlbuild.ColOrderItemID)
}

func (r *OrderItemRepo) InsertBatch(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([][]any, len(items))
	for i, it := range items {
		rows[i] = []any{it.ID, it.OrderID, it.ProductID, int32(it.Quantity), it.UnitPrice, it.TotalPrice, it.DiscountAmount}
	}
	if err := copyRows(ctx, r.q, repository.TableOrderItems, orderItemColumns, rows); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}
