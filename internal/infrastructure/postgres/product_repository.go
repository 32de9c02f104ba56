package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
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

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q  Querier
	sb sqlbuild.Builder
}

// NewProductRepository construye el adaptador.
func NewProductRepository(q Querier, sb sqlbuild.Builder) *ProductRepo {
	return &ProductRepo{q: q, sb: sb}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Subcategory, &p.Brand, &p.Price, &p.Cost, &p.WeightKg, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

// moneyText importe como texto para los arreglos de unnest; nil conserva el valor.
func moneyText(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}

func (r *ProductRepo) MaxID(ctx context.Context) (int64, error) {
	return getMaxID(ctx, r.q, r.sb, repository.TableProducts, sqlbuild.ColProductID)
}

func (r *ProductRepo) Sample(ctx context.Context, n int, asOf time.Time) ([]*entity.Product, error) {
	if n <= 0 {
		return nil, nil
	}
	where := goqu.Ex{sqlbuild.ColCreatedAt: goqu.Op{"lte": asOf.UTC()}}
	query, err := r.sb.Sample(repository.TableProducts, productColumns, n, where)
	if err != nil {
		return nil, err
	}
	list, err := sampleRows(ctx, r.q, query, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("sample products: %w", err)
	}
	return list, nil
}

// ApplyDeltas fusiona precio, costo, categoría y marca en un solo UPDATE.
func (r *ProductRepo) ApplyDeltas(ctx context.Context, deltas []entity.ProductDelta) error {
	if len(deltas) == 0 {
		return nil
	}
	ids := make([]int64, len(deltas))
	prices := make([]*string, len(deltas))
	costs := make([]*string, len(deltas))
	categories := make([]*string, len(deltas))
	subcategories := make([]*string, len(deltas))
	brands := make([]*string, len(deltas))
	for i, d := range deltas {
		ids[i] = d.ProductID
		prices[i] = moneyText(d.Changes.Price)
		costs[i] = moneyText(d.Changes.Cost)
		categories[i] = d.Changes.Category
		subcategories[i] = d.Changes.Subcategory
		brands[i] = d.Changes.Brand
	}
	query := `
		UPDATE products AS p SET
			price       = COALESCE(d.price::numeric, p.price),
			cost        = COALESCE(d.cost::numeric, p.cost),
			category    = COALESCE(d.category, p.category),
			subcategory = COALESCE(d.subcategory, p.subcategory),
			brand       = COALESCE(d.brand, p.brand)
		FROM unnest($1::bigint[], $2::text[], $3::text[], $4::text[], $5::text[], $6::text[])
			AS d(product_id, price, cost, category, subcategory, brand)
		WHERE p.product_id = d.product_id`
	tag, err := r.q.Exec(ctx, query, ids, prices, costs, categories, subcategories, brands)
	if err != nil {
		return fmt.Errorf("update products: %w", err)
	}
	if tag.RowsAffected() != int64(len(deltas)) {
		return fmt.Errorf("update products: %d de %d filas: %w", tag.RowsAffected(), len(deltas), domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepo) InsertBatch(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	rows := make([][]any, len(products))
	for i, p := range products {
		rows[i] = []any{p.ID, p.Name, p.Category, p.Subcategory, p.Brand, p.Price, p.Cost, p.WeightKg, p.CreatedAt}
	}
	if err := copyRows(ctx, r.q, repository.TableProducts, productColumns, rows); err != nil {
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
	p, err := scanProduct(r.q.QueryRow(ctx, query.SQL, query.Args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}
