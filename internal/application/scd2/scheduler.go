package scd2

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/pkg/logger"
)

// Scheduler ejecuta lotes incrementales: uno en el instante actual o N históricos espaciados D días.
type Scheduler struct {
	tx        TxRunner
	mutations *MutationEngine
	growth    *GrowthEngine
	log       *logger.Logger
	now       func() time.Time
}

// NewScheduler construye el planificador.
func NewScheduler(tx TxRunner, mutations *MutationEngine, growth *GrowthEngine, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{tx: tx, mutations: mutations, growth: growth, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Now instante actual según el reloj del planificador, truncado a milisegundos.
func (s *Scheduler) Now() time.Time {
	return batchTime(s.now())
}

// batchTime los almacenes guardan milisegundos; el lote usa exactamente el valor que se persiste.
func batchTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// RunIncremental aplica un lote con timestamp ts en una sola transacción, en orden fijo:
// clientes, productos, pedidos, clientes nuevos, productos nuevos.
// Cualquier fallo revierte el lote y se devuelve envuelto en domain.ErrBatchNotApplied.
func (s *Scheduler) RunIncremental(ctx context.Context, ts time.Time) (*BatchReport, error) {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	report := &BatchReport{ID: id, Timestamp: batchTime(ts)}
	ts = report.Timestamp

	log := s.log.WithStr("batch_id", id.String())
	log.Info().Time("ts", ts).Msg("iniciando lote")
	err = s.tx.Run(ctx, func(
		customerRepo repository.CustomerRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		var err error
		if report.CustomersUpdated, err = s.mutations.MutateCustomers(ctx, customerRepo, ts); err != nil {
			return err
		}
		if report.ProductsUpdated, err = s.mutations.MutateProducts(ctx, productRepo, ts); err != nil {
			return err
		}
		if report.OrdersTransitioned, err = s.mutations.TransitionOrders(ctx, orderRepo, ts); err != nil {
			return err
		}
		if report.CustomersAdded, err = s.growth.AddCustomers(ctx, customerRepo, ts); err != nil {
			return err
		}
		report.ProductsAdded, err = s.growth.AddProducts(ctx, productRepo, ts)
		return err
	})
	if err != nil {
		log.Error().Err(err).Time("ts", ts).Msg("lote revertido")
		return nil, fmt.Errorf("%w (%s): %w", domain.ErrBatchNotApplied, ts.Format(time.RFC3339), err)
	}
	log.Info().Time("ts", ts).Int("total", report.Total()).Msg("lote confirmado")
	return report, nil
}

// RunHistorical ejecuta n lotes con timestamps base + i*days (i = 0..n-1), base = ahora - n*days.
// Se detiene en el primer lote fallido y devuelve los reportes ya confirmados junto con el error.
func (s *Scheduler) RunHistorical(ctx context.Context, n, days int) ([]*BatchReport, error) {
	if n <= 0 || days <= 0 {
		return nil, fmt.Errorf("%w: lotes=%d días=%d", domain.ErrInvalidInput, n, days)
	}
	step := time.Duration(days) * 24 * time.Hour
	base := s.Now().Add(-time.Duration(n) * step)

	reports := make([]*BatchReport, 0, n)
	for i := range n {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report, err := s.RunIncremental(ctx, base.Add(time.Duration(i)*step))
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
