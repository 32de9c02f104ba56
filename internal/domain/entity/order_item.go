package entity

import "github.com/shopspring/decimal"

// OrderItem línea de un pedido. No se muta después de creada.
type OrderItem struct {
	ID             int64
	OrderID        int64
	ProductID      int64
	Quantity       int
	UnitPrice      decimal.Decimal
	TotalPrice     decimal.Decimal
	DiscountAmount decimal.Decimal
}
