package scd2

import (
	"context"
	"fmt"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
)

// Summary foto del almacén: filas por tabla y clientes con al menos una actualización.
type Summary struct {
	Tables           []repository.TableCount `json:"tables"`
	UpdatedCustomers int64                   `json:"updated_customers"`
}

// Rows filas de table (0 si no está en el resumen).
func (s *Summary) Rows(table string) int64 {
	for _, t := range s.Tables {
		if t.Table == table {
			return t.Rows
		}
	}
	return 0
}

// TakeSummary lee los conteos actuales.
func TakeSummary(ctx context.Context, stats repository.StatsRepository) (*Summary, error) {
	tables, err := stats.CountRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("resumen: %w", err)
	}
	updated, err := stats.CountUpdatedCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("resumen: %w", err)
	}
	return &Summary{Tables: tables, UpdatedCustomers: updated}, nil
}
