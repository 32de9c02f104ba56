package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/sqlbuild"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

var orderColumns = []string{
	"order_id", "customer_id", "order_date", "status", "total_amount", "shipping_cost",
	"discount_amount", "shipping_address_id", "created_at", "updated_at",
}

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q  Querier
	sb sqlbuild.Builder
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier, sb sqlbuild.Builder) *OrderRepo {
	return &OrderRepo{q: q, sb: sb}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.ShippingCost,
		&o.DiscountAmount, &o.ShippingAddressID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.OrderDate = o.OrderDate.UTC()
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	return &o, nil
}

func (r *OrderRepo) MaxID(ctx context.Context) (int64, error) {
	return getMaxID(ctx, r.q, r.sb, repository.TableOrders, sqlbuild.ColOrderID)
}

// SampleByStatus muestrea hasta n pedidos con estado en statuses y vigentes en asOf.
func (r *OrderRepo) SampleByStatus(ctx context.Context, statuses []string, n int, asOf time.Time) ([]*entity.Order, error) {
	if len(statuses) == 0 || n <= 0 {
		return nil, nil
	}
	where := goqu.Ex{
		sqlbuild.ColStatus:    statuses,
		sqlbuild.ColUpdatedAt: goqu.Op{"lte": asOf.UTC()},
	}
	query, err := r.sb.Sample(repository.TableOrders, orderColumns, n, where)
	if err != nil {
		return nil, err
	}
	list, err := sampleRows(ctx, r.q, query, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("sample orders: %w", err)
	}
	return list, nil
}

// ApplyDeltas cambia estado y updated_at; solo toca pedidos que siguen en el estado de origen.
func (r *OrderRepo) ApplyDeltas(ctx context.Context, deltas []entity.OrderDelta) error {
	if len(deltas) == 0 {
		return nil
	}
	ids := make([]int64, len(deltas))
	from := make([]string, len(deltas))
	to := make([]string, len(deltas))
	updated := make([]time.Time, len(deltas))
	for i, d := range deltas {
		ids[i] = d.OrderID
		from[i] = d.From
		to[i] = d.Status
		updated[i] = d.UpdatedAt.UTC()
	}
	query := `
		UPDATE orders AS o SET
			status     = d.status,
			updated_at = d.updated_at
		FROM unnest($1::bigint[], $2::text[], $3::text[], $4::timestamptz[])
			AS d(order_id, from_status, status, updated_at)
		WHERE o.order_id = d.order_id AND o.status = d.from_status`
	tag, err := r.q.Exec(ctx, query, ids, from, to, updated)
	if err != nil {
		return fmt.Errorf("update orders: %w", err)
	}
	if tag.RowsAffected() != int64(len(deltas)) {
		return fmt.Errorf("update orders: %d de %d filas: %w", tag.RowsAffected(), len(deltas), domain.ErrNotFound)
	}
	return nil
}

func (r *OrderRepo) InsertBatch(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	rows := make([][]any, len(orders))
	for i, o := range orders {
		rows[i] = []any{o.ID, o.CustomerID, o.OrderDate, o.Status, o.TotalAmount, o.ShippingCost,
			o.DiscountAmount, o.ShippingAddressID, o.CreatedAt, o.UpdatedAt}
	}
	if err := copyRows(ctx, r.q, repository.TableOrders, orderColumns, rows); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orders: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID; nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	query, err := r.sb.GetByID(repository.TableOrders, orderColumns, sqlbuild.ColOrderID, id)
	if err != nil {
		return nil, err
	}
	o, err := scanOrder(r.q.QueryRow(ctx, query.SQL, query.Args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}
