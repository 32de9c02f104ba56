package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusReturned  = "returned"
)

// OrderStatuses todos los estados en orden del ciclo de vida.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
}

// OpenOrderStatuses estados que aún pueden avanzar (pool de muestreo de transiciones).
var OpenOrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
}

// IsTerminalOrderStatus indica si el estado ya no admite transiciones.
func IsTerminalOrderStatus(status string) bool {
	switch status {
	case OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

// Order representa la cabecera de un pedido.
type Order struct {
	ID                int64
	CustomerID        int64
	OrderDate         time.Time
	Status            string
	TotalAmount       decimal.Decimal
	ShippingCost      decimal.Decimal
	DiscountAmount    decimal.Decimal
	ShippingAddressID int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
