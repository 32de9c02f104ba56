package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/sqlbuild"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

var customerColumns = []string{
	"customer_id", "first_name", "last_name", "email", "phone", "date_of_birth", "gender", "created_at", "updated_at",
}

type customerRow struct {
	ID          int64  `db:"customer_id"`
	FirstName   string `db:"first_name"`
	LastName    string `db:"last_name"`
	Email       string `db:"email"`
	Phone       string `db:"phone"`
	DateOfBirth string `db:"date_of_birth"`
	Gender      string `db:"gender"`
	CreatedAt   int64  `db:"created_at"`
	UpdatedAt   int64  `db:"updated_at"`
}

func (r customerRow) toEntity() (*entity.Customer, error) {
	dob, err := parseDate(r.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("customer %d date_of_birth: %w", r.ID, err)
	}
	return &entity.Customer{
		ID:          r.ID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		DateOfBirth: dob,
		Gender:      r.Gender,
		CreatedAt:   fromMillis(r.CreatedAt),
		UpdatedAt:   fromMillis(r.UpdatedAt),
	}, nil
}

func customerRowFrom(c *entity.Customer) customerRow {
	return customerRow{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		DateOfBirth: c.DateOfBirth.UTC().Format(dateLayout),
		Gender:      c.Gender,
		CreatedAt:   toMillis(c.CreatedAt),
		UpdatedAt:   toMillis(c.UpdatedAt),
	}
}

// CustomerRepo implementación de CustomerRepository sobre SQLite (usable con la conexión o una tx).
type CustomerRepo struct {
	q  Querier
	sb sqlbuild.Builder
}

// NewCustomerRepository construye el adaptador. Pasar la conexión o una tx (Querier).
func NewCustomerRepository(q Querier, sb sqlbuild.Builder) *CustomerRepo {
	return &CustomerRepo{q: q, sb: sb}
}

// MaxID mayor customer_id (0 si no hay clientes).
func (r *CustomerRepo) MaxID(ctx context.Context) (int64, error) {
	return getMaxID(ctx, r.q, r.sb, repository.TableCustomers, sqlbuild.ColCustomerID)
}

// Sample muestreo uniforme de hasta n clientes vigentes en asOf.
func (r *CustomerRepo) Sample(ctx context.Context, n int, asOf time.Time) ([]*entity.Customer, error) {
	if n <= 0 {
		return nil, nil
	}
	where := goqu.Ex{sqlbuild.ColUpdatedAt: goqu.Op{"lte": toMillis(asOf)}}
	query, err := r.sb.Sample(repository.TableCustomers, customerColumns, n, where)
	if err != nil {
		return nil, err
	}
	var rows []customerRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query.SQL, query.Args...); err != nil {
		return nil, fmt.Errorf("sample customers: %w", err)
	}
	list := make([]*entity.Customer, 0, len(rows))
	for _, row := range rows {
		c, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, nil
}

// ApplyDeltas fusiona los cambios por ID con COALESCE: un campo nil conserva el valor almacenado.
func (r *CustomerRepo) ApplyDeltas(ctx context.Context, deltas []entity.CustomerDelta) error {
	if len(deltas) == 0 {
		return nil
	}
	const query = `
		UPDATE customers SET
			first_name = COALESCE(?, first_name),
			last_name  = COALESCE(?, last_name),
			email      = COALESCE(?, email),
			phone      = COALESCE(?, phone),
			updated_at = ?
		WHERE customer_id = ?`
	return inTx(ctx, r.q, func(q Querier) error {
		stmt, err := q.PreparexContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare customer update: %w", err)
		}
		defer stmt.Close()
		for _, d := range deltas {
			res, err := stmt.ExecContext(ctx,
				d.Changes.FirstName, d.Changes.LastName, d.Changes.Email, d.Changes.Phone,
				toMillis(d.UpdatedAt), d.CustomerID,
			)
			if err != nil {
				return fmt.Errorf("update customer %d: %w", d.CustomerID, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("update customer %d: %w", d.CustomerID, domain.ErrNotFound)
			}
		}
		return nil
	})
}

// InsertBatch inserta clientes nuevos.
func (r *CustomerRepo) InsertBatch(ctx context.Context, customers []*entity.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	rows := make([]customerRow, len(customers))
	for i, c := range customers {
		rows[i] = customerRowFrom(c)
	}
	const query = `
		INSERT INTO customers (customer_id, first_name, last_name, email, phone, date_of_birth, gender, created_at, updated_at)
		VALUES (:customer_id, :first_name, :last_name, :email, :phone, :date_of_birth, :gender, :created_at, :updated_at)`
	err := inTx(ctx, r.q, func(q Querier) error { return insertChunks(ctx, q, query, rows) })
	if err != nil {
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
	var row customerRow
	if err := sqlx.GetContext(ctx, r.q, &row, query.SQL, query.Args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return row.toEntity()
}
