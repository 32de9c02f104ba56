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

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productColumns = []string{
	"product_id", "name", "category", "subcategory", "brand", "price", "cost", "weight_kg", "created_at",
}

// Los importes se guardan como TEXT para no perder precisión decimal.
type productRow struct {
	ID          int64  `db:"product_id"`
	Name        string `db:"name"`
	Category    string `db:"category"`
	Subcategory string `db:"subcategory"`
	Brand       string `db:"brand"`
	Price       string `db:"price"`
	Cost        string `db:"cost"`
	WeightKg    string `db:"weight_kg"`
	CreatedAt   int64  `db:"created_at"`
}

func (r productRow) toEntity() (*entity.Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return nil, fmt.Errorf("product %d price: %w", r.ID, err)
	}
	cost, err := decimal.NewFromString(r.Cost)
	if err != nil {
		return nil, fmt.Errorf("product %d cost: %w", r.ID, err)
	}
	weight, err := decimal.NewFromString(r.WeightKg)
	if err != nil {
		return nil, fmt.Errorf("product %d weight_kg: %w", r.ID, err)
	}
	return &entity.Product{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Brand:       r.Brand,
		Price:       price,
		Cost:        cost,
		WeightKg:    weight,
		CreatedAt:   fromMillis(r.CreatedAt),
	}, nil
}

func productRowFrom(p *entity.Product) productRow {
	return productRow{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Brand:       p.Brand,
		Price:       money(p.Price),
		Cost:        money(p.Cost),
		WeightKg:    money(p.WeightKg),
		CreatedAt:   toMillis(p.CreatedAt),
	}
}

// money formato canónico de importes: dos decimales fijos.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func moneyPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := money(*d)
	return &s
}

// ProductRepo implementación de ProductRepository sobre SQLite.
type ProductRepo struct {
	q  Querier
	sb sqlbuild.Builder
}

// NewProductRepository construye el adaptador.
func NewProductRepository(q Querier, sb sqlbuild.Builder) *ProductRepo {
	return &ProductRepo{q: q, sb: sb}
}

func (r *ProductRepo) MaxID(ctx context.Context) (int64, error) {
	return getMaxID(ctx, r.q, r.sb, repository.TableProducts, sqlbuild.ColProductID)
}

func (r *ProductRepo) Sample(ctx context.Context, n int, asOf time.Time) ([]*entity.Product, error) {
	if n <= 0 {
		return nil, nil
	}
	where := goqu.Ex{sqlbuild.ColCreatedAt: goqu.Op{"lte": toMillis(asOf)}}
	query, err := r.sb.Sample(repository.TableProducts, productColumns, n, where)
	if err != nil {
		return nil, err
	}
	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query.SQL, query.Args...); err != nil {
		return nil, fmt.Errorf("sample products: %w", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

// ApplyDeltas fusiona precio, costo, categoría y marca por ID.
func (r *ProductRepo) ApplyDeltas(ctx context.Context, deltas []entity.ProductDelta) error {
	if len(deltas) == 0 {
		return nil
	}
	const query = `
		UPDATE products SET
			price       = COALESCE(?, price),
			cost        = COALESCE(?, cost),
			category    = COALESCE(?, category),
			subcategory = COALESCE(?, subcategory),
			brand       = COALESCE(?, brand)
		WHERE product_id = ?`
	return inTx(ctx, r.q, func(q Querier) error {
		stmt, err := q.PreparexContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare product update: %w", err)
		}
		defer stmt.Close()
		for _, d := range deltas {
			res, err := stmt.ExecContext(ctx,
				moneyPtr(d.Changes.Price), moneyPtr(d.Changes.Cost),
				d.Changes.Category, d.Changes.Subcategory, d.Changes.Brand,
				d.ProductID,
			)
			if err != nil {
				return fmt.Errorf("update product %d: %w", d.ProductID, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("update product %d: %w", d.ProductID, domain.ErrNotFound)
			}
		}
		return nil
	})
}

func (r *ProductRepo) InsertBatch(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	rows := make([]productRow, len(products))
	for i, p := range products {
		rows[i] = productRowFrom(p)
	}
	const query = `
		INSERT INTO products (product_id, name, category, subcategory, brand, price, cost, weight_kg, created_at)
		VALUES (:product_id, :name, :category, :subcategory, :brand, :price, :cost, :weight_kg, :created_at)`
	err := inTx(ctx, r.q, func(q Querier) error { return insertChunks(ctx, q, query, rows) })
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert products: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query, err := r.sb.GetByID(repository.TableProducts, productColumns, sqlbuild.ColProductID, id)
	if err != nil {
		return nil, err
	}
	var row productRow
	if err := sqlx.GetContext(ctx, r.q, &row, query.SQL, query.Args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.toEntity()
}
