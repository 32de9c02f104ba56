package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/sqlbuild"
)

var _ repository.OrderItemRepository = (*OrderItemRepo)(nil)

type orderItemRow struct {
	ID             int64  `db:"order_item_id"`
	OrderID        int64  `db:"order_id"`
	ProductID      int64  `db:"product_id"`
	Quantity       int    `db:"quantity"`
	UnitPrice      string `db:"unit_price"`
	TotalPrice     string `db:"total_price"`
	DiscountAmount string `db:"discount_amount"`
}

// OrderItemRepo líneas de pedido sobre SQLite.
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
	rows := make([]orderItemRow, len(items))
	for i, it := range items {
		rows[i] = orderItemRow{
			ID:             it.ID,
			OrderID:        it.OrderID,
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPrice:      money(it.UnitPrice),
			TotalPrice:     money(it.TotalPrice),
			DiscountAmount: money(it.DiscountAmount),
		}
	}
	const query = `
		INSERT INTO order_items (order_item_id, order_id, product_id, quantity, unit_price, total_price, discount_amount)
		VALUES (:order_item_id, :order_id, :product_id, :quantity, :unit_price, :total_price, :discount_amount)`
	err := inTx(ctx, r.q, func(q Querier) error { return insertChunks(ctx, q, query, rows) })
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}
