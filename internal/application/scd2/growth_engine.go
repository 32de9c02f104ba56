package scd2

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/generate"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/pkg/logger"
)

// GrowthEngine agrega clientes y productos nuevos continuando la secuencia de IDs.
type GrowthEngine struct {
	gen     *generate.Generator
	newSize int
	log     *logger.Logger
}

// NewGrowthEngine construye el motor. newSize clientes por lote; productos la mitad (redondeo hacia abajo).
func NewGrowthEngine(gen *generate.Generator, newSize int, log *logger.Logger) *GrowthEngine {
	if log == nil {
		log = logger.Nop()
	}
	return &GrowthEngine{gen: gen, newSize: max(newSize, 0), log: log}
}

// AddCustomers inserta newSize clientes con IDs max+1..max+newSize y created_at = updated_at = ts.
func (g *GrowthEngine) AddCustomers(ctx context.Context, repo repository.CustomerRepository, ts time.Time) (int, error) {
	k := g.newSize
	if k == 0 {
		return 0, nil
	}
	maxID, err := repo.MaxID(ctx)
	if err != nil {
		return 0, fmt.Errorf("max id clientes: %w", err)
	}
	batch := make([]*entity.Customer, k)
	for i := range batch {
		batch[i] = g.gen.Customer(maxID+int64(i)+1, ts)
	}
	if err := repo.InsertBatch(ctx, batch); err != nil {
		return 0, fmt.Errorf("insertar clientes: %w", err)
	}
	g.log.Info().Str("step", StepNewCust).Time("ts", ts).Int64("first_id", maxID+1).Int("changed", k).Msg("paso aplicado")
	return k, nil
}

// AddProducts inserta newSize/2 productos con IDs max+1.. y created_at = ts.
func (g *GrowthEngine) AddProducts(ctx context.Context, repo repository.ProductRepository, ts time.Time) (int, error) {
	k := g.newSize / 2
	if k == 0 {
		return 0, nil
	}
	maxID, err := repo.MaxID(ctx)
	if err != nil {
		return 0, fmt.Errorf("max id productos: %w", err)
	}
	batch := make([]*entity.Product, k)
	for i := range batch {
		batch[i] = g.gen.Product(maxID+int64(i)+1, ts)
	}
	if err := repo.InsertBatch(ctx, batch); err != nil {
		return 0, fmt.Errorf("insertar productos: %w", err)
	}
	g.log.Info().Str("step", StepNewProd).Time("ts", ts).Int64("first_id", maxID+1).Int("changed", k).Msg("paso aplicado")
	return k, nil
}
