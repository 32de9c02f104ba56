package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

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

type orderRow struct {
	ID                int64  `db:"order_id"`
	CustomerID        int64  `db:"customer_id"`
	OrderDate         int64  `db:"order_date"`
	Status            string `db:"status"`
	TotalAmount       string `db:"total_amount"`
	ShippingCost      string `db:"shipping_cost"`
	DiscountAmount    string `db:"discount_amount"`
	ShippingAddressID int64  `db:"shipping_address_id"`
	CreatedAt         int64  `db:"created_at"`
	UpdatedAt         int64  `db:"updated_at"`
}

func (r orderRow) toEntity() (*entity.Order, error) {
	amounts := make([]decimal.Decimal, 3)
	for i, raw := range []string{r.TotalAmount, r.ShippingCost, r.DiscountAmount} {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("order %d amount: %w", r.ID, err)
		}
		amounts[i] = d
	}
	return &entity.Order{
		ID:                r.ID,
		CustomerID:        r.CustomerID,
		OrderDate:         fromMillis(r.OrderDate),
		Status:            r.Status,
		TotalAmount:       amounts[0],
		ShippingCost:      amounts[1],
		DiscountAmount:    amounts[2],
		ShippingAddressID: r.ShippingAddressID,
		CreatedAt:         fromMillis(r.CreatedAt),
		UpdatedAt:         fromMillis(r.UpdatedAt),
	}, nil
}

func orderRowFrom(o *entity.Order) orderRow {
	return orderRow{
		ID:                o.ID,
		CustomerID:        o.CustomerID,
		OrderDate:         toMillis(o.OrderDate),
		Status:            o.Status,
		TotalAmount:       money(o.TotalAmount),
		ShippingCost:      money(o.ShippingCost),
		DiscountAmount:    money(o.DiscountAmount),
		ShippingAddressID: o.ShippingAddressID,
		CreatedAt:         toMillis(o.CreatedAt),
		UpdatedAt:         toMillis(o.UpdatedAt),
	}
}

// OrderRepo implementación de OrderRepository sobre SQLite.
type OrderRepo struct {
	q  Querier
	sb sqlbuild.Builder
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier, sb sqlbuild.Builder) *OrderRepo {
	return &OrderRepo{q: q, sb: sb}
}

func (r *OrderRepo) MaxID(ctx context.Context) (int64, error) {
	return getMaxID(ctx, r.q, r.sb, repository.TableOrders, sqlbuild.ColOrderID)
}

// SampleByStatus muestrea hasta n pedidos con estado en statuses y vigentes en asOf. Sin estados no devuelve nada.
func (r *OrderRepo) SampleByStatus(ctx context.Context, statuses []string, n int, asOf time.Time) ([]*entity.Order, error) {
	if len(statuses) == 0 || n <= 0 {
		return nil, nil
	}
	where := goqu.Ex{
		sqlbuild.ColStatus:    statuses,
		sqlbuild.ColUpdatedAt: goqu.Op{"lte": toMillis(asOf)},
	}
	query, err := r.sb.Sample(repository.TableOrders, orderColumns, n, where)
	if err != nil {
		return nil, err
	}
	var rows []orderRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query.SQL, query.Args...); err != nil {
		return nil, fmt.Errorf("sample orders: %w", err)
	}
	list := make([]*entity.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, nil
}

// ApplyDeltas cambia el estado solo si el pedido sigue en el estado de origen del delta.
func (r *OrderRepo) ApplyDeltas(ctx context.Context, deltas []entity.OrderDelta) error {
	if len(deltas) == 0 {
		return nil
	}
	const query = `UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ? AND status = ?`
	return inTx(ctx, r.q, func(q Querier) error {
		stmt, err := q.PreparexContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare order update: %w", err)
		}
		defer stmt.Close()
		for _, d := range deltas {
			res, err := stmt.ExecContext(ctx, d.Status, toMillis(d.UpdatedAt), d.OrderID, d.From)
			if err != nil {
				return fmt.Errorf("update order %d: %w", d.OrderID, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("update order %d (%s): %w", d.OrderID, d.From, domain.ErrNotFound)
			}
		}
		return nil
	})
}

func (r *OrderRepo) InsertBatch(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	rows := make([]orderRow, len(orders))
	for i, o := range orders {
		rows[i] = orderRowFrom(o)
	}
	const query = `
		INSERT INTO orders (order_id, customer_id, order_date, status, total_amount, shipping_cost,
			discount_amount, shipping_address_id, created_at, updated_at)
		VALUES (:order_id, :customer_id, :order_date, :status, :total_amount, :shipping_cost,
			:discount_amount, :shipping_address_id, :created_at, :updated_at)`
	err := inTx(ctx, r.q, func(q Querier) error { return insertChunks(ctx, q, query, rows) })
	if err != nil {
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
	var row orderRow
	if err := sqlx.GetContext(ctx, r.q, &row, query.SQL, query.Args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return row.toEntity()
}
