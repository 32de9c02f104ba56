package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment pago de un pedido (relación 1:1; ID = OrderID).
// TransactionID solo existe para métodos digitales (nil en efectivo y transferencia).
type Payment struct {
	ID            int64
	OrderID       int64
	PaymentMethod string
	Amount        decimal.Decimal
	PaymentDate   time.Time
	Status        string
	TransactionID *string
}
