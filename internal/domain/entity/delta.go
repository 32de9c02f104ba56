package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nombres de campo tal como se reportan en logs y en las columnas del almacén.
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldPrice       = "price"
	FieldCost        = "cost"
	FieldCategory    = "category"
	FieldSubcategory = "subcategory"
	FieldBrand       = "brand"
)

// CustomerChanges conjunto disperso de cambios de un cliente. Un campo nil conserva el valor almacenado.
type CustomerChanges struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
}

// IsEmpty indica que la política no seleccionó ningún campo.
func (c CustomerChanges) IsEmpty() bool {
	return c.FirstName == nil && c.LastName == nil && c.Email == nil && c.Phone == nil
}

// Fields lista los campos seleccionados.
func (c CustomerChanges) Fields() []string {
	var fields []string
	if c.FirstName != nil {
		fields = append(fields, FieldFirstName)
	}
	if c.LastName != nil {
		fields = append(fields, FieldLastName)
	}
	if c.Email != nil {
		fields = append(fields, FieldEmail)
	}
	if c.Phone != nil {
		fields = append(fields, FieldPhone)
	}
	return fields
}

// CustomerDelta cambios de un cliente dentro de un lote.
type CustomerDelta struct {
	CustomerID int64
	Changes    CustomerChanges
	UpdatedAt  time.Time
}

// ProductChanges conjunto disperso de cambios de un producto.
// Category y Subcategory siempre viajan juntos.
type ProductChanges struct {
	Price       *decimal.Decimal
	Cost        *decimal.Decimal
	Category    *string
	Subcategory *string
	Brand       *string
}

// IsEmpty indica que la política no seleccionó ningún campo.
func (c ProductChanges) IsEmpty() bool {
	return c.Price == nil && c.Cost == nil && c.Category == nil && c.Subcategory == nil && c.Brand == nil
}

// Fields lista los campos seleccionados.
func (c ProductChanges) Fields() []string {
	var fields []string
	if c.Price != nil {
		fields = append(fields, FieldPrice)
	}
	if c.Cost != nil {
		fields = append(fields, FieldCost)
	}
	if c.Category != nil {
		fields = append(fields, FieldCategory)
	}
	if c.Subcategory != nil {
		fields = append(fields, FieldSubcategory)
	}
	if c.Brand != nil {
		fields = append(fields, FieldBrand)
	}
	return fields
}

// ProductDelta cambios de un producto dentro de un lote. La tabla de productos no tiene updated_at.
type ProductDelta struct {
	ProductID int64
	Changes   ProductChanges
}

// OrderDelta transición de estado de un pedido.
type OrderDelta struct {
	OrderID   int64
	From      string
	Status    string
	UpdatedAt time.Time
}
