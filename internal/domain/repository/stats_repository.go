package repository

import "context"

// Nombres de tabla del almacén, en el orden en que se reportan.
const (
	TableCustomers  = "customers"
	TableProducts   = "products"
	TableOrders     = "orders"
	TableOrderItems = "order_items"
	TablePayments   = "payments"
)

// Tables tablas del conjunto de datos en orden de reporte.
var Tables = []string{TableCustomers, TableProducts, TableOrders, TableOrderItems, TablePayments}

// TableCount cantidad de filas de una tabla.
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// StatsRepository consultas de solo lectura para el resumen antes/después de un lote.
type StatsRepository interface {
	// CountRows devuelve el conteo de filas de cada tabla en el orden de Tables.
	CountRows(ctx context.Context) ([]TableCount, error)
	// CountUpdatedCustomers cuenta clientes con updated_at > created_at.
	CountUpdatedCustomers(ctx context.Context) (int64, error)
}
