package scd2

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/mutation"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/pkg/logger"
)

// Nombres de paso tal como aparecen en logs y reportes.
const (
	StepCustomers = "customers"
	StepProducts  = "products"
	StepOrders    = "orders"
	StepNewCust   = "new_customers"
	StepNewProd   = "new_products"
)

// MutationEngine muestrea registros existentes, aplica las políticas y persiste solo los deltas no vacíos.
type MutationEngine struct {
	customers  *mutation.CustomerPolicy
	products   *mutation.ProductPolicy
	statuses   *mutation.StatusPolicy
	updateSize int
	log        *logger.Logger
}

// NewMutationEngine construye el motor. updateSize es el tamaño de muestra por tabla;
// los pedidos usan la mitad.
func NewMutationEngine(
	customers *mutation.CustomerPolicy,
	products *mutation.ProductPolicy,
	statuses *mutation.StatusPolicy,
	updateSize int,
	log *logger.Logger,
) *MutationEngine {
	if log == nil {
		log = logger.Nop()
	}
	return &MutationEngine{
		customers:  customers,
		products:   products,
		statuses:   statuses,
		updateSize: max(updateSize, 0),
		log:        log,
	}
}

// OrderPoolSize tamaño de muestra de pedidos por lote.
func (e *MutationEngine) OrderPoolSize() int {
	return e.updateSize / 2
}

// MutateCustomers muestrea clientes, aplica la política de campos y persiste los cambios con updated_at = ts.
// Devuelve la cantidad de clientes modificados.
func (e *MutationEngine) MutateCustomers(ctx context.Context, repo repository.CustomerRepository, ts time.Time) (int, error) {
	sample, err := repo.Sample(ctx, e.updateSize, ts)
	if err != nil {
		return 0, fmt.Errorf("muestrear clientes: %w", err)
	}
	deltas := make([]entity.CustomerDelta, 0, len(sample))
	for _, c := range sample {
		changes := e.customers.Mutate(c)
		if changes.IsEmpty() {
			continue
		}
		deltas = append(deltas, entity.CustomerDelta{CustomerID: c.ID, Changes: changes, UpdatedAt: ts})
	}
	if err := repo.ApplyDeltas(ctx, deltas); err != nil {
		return 0, fmt.Errorf("aplicar cambios de clientes: %w", err)
	}
	e.logStep(StepCustomers, ts, len(sample), len(deltas))
	return len(deltas), nil
}

// MutateProducts igual que MutateCustomers para productos. La tabla no tiene updated_at;
// ts solo define qué productos ya existían.
func (e *MutationEngine) MutateProducts(ctx context.Context, repo repository.ProductRepository, ts time.Time) (int, error) {
	sample, err := repo.Sample(ctx, e.updateSize, ts)
	if err != nil {
		return 0, fmt.Errorf("muestrear productos: %w", err)
	}
	deltas := make([]entity.ProductDelta, 0, len(sample))
	for _, p := range sample {
		changes := e.products.Mutate(p)
		if changes.IsEmpty() {
			continue
		}
		deltas = append(deltas, entity.ProductDelta{ProductID: p.ID, Changes: changes})
	}
	if err := repo.ApplyDeltas(ctx, deltas); err != nil {
		return 0, fmt.Errorf("aplicar cambios de productos: %w", err)
	}
	e.logStep(StepProducts, ts, len(sample), len(deltas))
	return len(deltas), nil
}

// TransitionOrders avanza pedidos abiertos según la máquina de estados. Los terminales no se muestrean;
// un estado sin regla se omite sin abortar el lote.
func (e *MutationEngine) TransitionOrders(ctx context.Context, repo repository.OrderRepository, ts time.Time) (int, error) {
	sample, err := repo.SampleByStatus(ctx, entity.OpenOrderStatuses, e.OrderPoolSize(), ts)
	if err != nil {
		return 0, fmt.Errorf("muestrear pedidos: %w", err)
	}
	deltas := make([]entity.OrderDelta, 0, len(sample))
	skipped := 0
	for _, o := range sample {
		next, moved, err := e.statuses.Next(o.Status)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				skipped++
				e.log.Debug().Int64("order_id", o.ID).Str("status", o.Status).Msg("pedido sin regla de transición")
				continue
			}
			return 0, err
		}
		if !moved {
			continue
		}
		deltas = append(deltas, entity.OrderDelta{OrderID: o.ID, From: o.Status, Status: next, UpdatedAt: ts})
	}
	if err := repo.ApplyDeltas(ctx, deltas); err != nil {
		return 0, fmt.Errorf("aplicar transiciones de pedidos: %w", err)
	}
	e.log.Info().
		Str("step", StepOrders).
		Time("ts", ts).
		Int("sampled", len(sample)).
		Int("changed", len(deltas)).
		Int("skipped", skipped).
		Msg("paso aplicado")
	return len(deltas), nil
}

func (e *MutationEngine) logStep(step string, ts time.Time, sampled, changed int) {
	e.log.Info().
		Str("step", step).
		Time("ts", ts).
		Int("sampled", sampled).
		Int("changed", changed).
		Msg("paso aplicado")
}
