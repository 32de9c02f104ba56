package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (precios en NPR).
// Cost puede quedar por encima de Price tras varias mutaciones; no se fuerza Cost < Price.
type Product struct {
	ID          int64
	Name        string // "<marca> <subcategoría>"
	Category    string
	Subcategory string
	Brand       string
	Price       decimal.Decimal
	Cost        decimal.Decimal
	WeightKg    decimal.Decimal
	CreatedAt   time.Time
}
