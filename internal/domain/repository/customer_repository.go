package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Las cuatro operaciones son todo lo que el motor de lotes necesita del almacén.
type CustomerRepository interface {
	// MaxID devuelve el mayor ID existente (0 si la tabla está vacía).
	MaxID(ctx context.Context) (int64, error)
	// Sample devuelve hasta n clientes elegidos uniformemente sin reemplazo entre los que tienen
	// updated_at <= asOf. Si hay menos de n candidatos devuelve todos.
	Sample(ctx context.Context, n int, asOf time.Time) ([]*entity.Customer, error)
	// ApplyDeltas aplica los cambios en una sola pasada por ID; los campos ausentes conservan su valor.
	ApplyDeltas(ctx context.Context, deltas []entity.CustomerDelta) error
	// InsertBatch inserta clientes nuevos con IDs ya asignados.
	InsertBatch(ctx context.Context, customers []*entity.Customer) error
}
