package scd2

import (
	"time"

	"github.com/google/uuid"
)

// BatchReport resultado de un lote confirmado.
type BatchReport struct {
	ID                 uuid.UUID `json:"batch_id"`
	Timestamp          time.Time `json:"timestamp"`
	CustomersUpdated   int       `json:"customers_updated"`
	ProductsUpdated    int       `json:"products_updated"`
	OrdersTransitioned int       `json:"orders_transitioned"`
	CustomersAdded     int       `json:"customers_added"`
	ProductsAdded      int       `json:"products_added"`
}

// Total registros modificados o creados en el lote.
func (r BatchReport) Total() int {
	return r.CustomersUpdated + r.ProductsUpdated + r.OrdersTransitioned + r.CustomersAdded + r.ProductsAdded
}
