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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

var customerColumns = []string{
	"customer_id", "first_name", "last_name", "email", "phone", "date_of_birth", "gender", "created_at", "updated_at",
}

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q  Querier
	sb sqlbuild.Builder
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier, sb sqlbuild.Builder) *CustomerRepo {
	return &CustomerRepo{q: q, sb: sb}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.DateOfBirth, &c.Gender, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.DateOfBirth = c.DateOfBirth.UTC()
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func (r *CustomerRepo) MaxID(ctx context.Context) (int64, error) {
	return getMaxID(ctx, r.q, r.sb, repository.TableCustomers, sqlbuild.ColCustomerID)
}

func (r *CustomerRepo) Sample(ctx context.Context, n int, asOf time.Time) ([]*entity.Customer, error) {
	if n <= 0 {
		return nil, nil
	}
	where := goqu.Ex{sqlbuild.ColUpdatedAt: goqu.Op{"lte": asOf.UTC()}}
	query, err := r.sb.Sample(repository.TableCustomers, customerColumns, n, where)
	if err != nil {
		return nil, err
	}
	list, err := sampleRows(ctx, r.q, query, scanCustomer)
	if err != nil {
		return nil, fmt.Errorf("sample customers: %w", err)
	}
	return list, nil
}

// ApplyDeltas fusiona todos los cambios en un solo UPDATE ... FROM unnest(...).
// Un campo NULL en el arreglo conserva el valor almacenado.
func (r *CustomerRepo) ApplyDeltas(ctx context.Context, deltas []entity.CustomerDelta) error {
	if len(deltas) == 0 {
		return nil
	}
	ids := make([]int64, len(deltas))
	firstNames := make([]*string, len(deltas))
	lastNames := make([]*string, len(deltas))
	emails := make([]*string, len(deltas))
	phones := make([]*string, len(deltas))
	updated := make([]time.Time, len(deltas))
	for i, d := range deltas {
		ids[i] = d.CustomerID
		firstNames[i] = d.Changes.FirstName
		lastNames[i] = d.Changes.LastName
		emails[i] = d.Changes.Email
		phones[i] = d.Changes.Phone
		updated[i] = d.UpdatedAt.UTC()
	}
	query := `
		UPDATE customers AS c SET
			first_name = COALESCE(d.first_name, c.first_name),
			last_name  = COALESCE(d.last_name, c.last_name),
			email      = COALESCE(d.email, c.email),
			phone      = COALESCE(d.phone, c.phone),
			updated_at = d.updated_at
		FROM unnest($1::bigint[], $2::text[], $3::text[], $4::text[], $5::text[], $6::timestamptz[])
			AS d(customer_id, first_name, last_name, email, phone, updated_at)
		WHERE c.customer_id = d.customer_id`
	tag, err := r.q.Exec(ctx, query, ids, firstNames, lastNames, emails, phones, updated)
	if err != nil {
		return fmt.Errorf("update customers: %w", err)
	}
	if tag.RowsAffected() != int64(len(deltas)) {
		return fmt.Errorf("update customers: %d de %d filas: %w", tag.RowsAffected(), len(deltas), domain.ErrNotFound)
	}
	return nil
}

func (r *CustomerRepo) InsertBatch(ctx context.Context, customers []*entity.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	rows := make([][]any, len(customers))
	for i, c := range customers {
		rows[i] = []any{c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.DateOfBirth, c.Gender, c.CreatedAt, c.UpdatedAt}
	}
	if err := copyRows(ctx, r.q, repository.TableCustomers, customerColumns, rows); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customers: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID; nil si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	query, err := r.sb.GetByID(repository.TableCustomers, customerColumns, sqlbuild.ColCustomerID, id)
	if err != nil {
		return nil, err
	}
	c, err := scanCustomer(r.q.QueryRow(ctx, query.SQL, query.Args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}
