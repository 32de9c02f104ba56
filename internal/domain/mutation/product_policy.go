package mutation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/generate"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/sampling"
)

// Límites de variación de precio y costo (NPR).
var (
	MinPrice = decimal.NewFromInt(50)
	MinCost  = decimal.NewFromInt(20)
)

const (
	priceChangeMin = -0.20
	priceChangeMax = 0.30
	costChangeMin  = -0.15
	costChangeMax  = 0.25
)

// ProductRates probabilidad independiente de cambio por campo.
type ProductRates struct {
	Price    float64
	Cost     float64 // cambio de proveedor
	Category float64 // categoría y subcategoría cambian juntas
	Brand    float64
}

// DefaultProductRates tasas por defecto del feed.
func DefaultProductRates() ProductRates {
	return ProductRates{
		Price:    0.50,
		Cost:     0.30,
		Category: 0.10,
		Brand:    0.15,
	}
}

// ProductPolicy decide los cambios de campo de un producto muestreado.
// No impone Cost < Price: tras varias mutaciones el costo puede superar al precio.
type ProductPolicy struct {
	gen   *generate.Generator
	rates ProductRates
}

// NewProductPolicy construye la política.
func NewProductPolicy(gen *generate.Generator, rates ProductRates) *ProductPolicy {
	return &ProductPolicy{gen: gen, rates: rates}
}

// Mutate devuelve solo los campos seleccionados.
func (p *ProductPolicy) Mutate(prod *entity.Product) entity.ProductChanges {
	r := p.gen.Rand()
	var ch entity.ProductChanges

	if sampling.Bernoulli(r, p.rates.Price) {
		price := Drift(prod.Price, sampling.Uniform(r, priceChangeMin, priceChangeMax), MinPrice)
		ch.Price = &price
	}
	if sampling.Bernoulli(r, p.rates.Cost) {
		cost := Drift(prod.Cost, sampling.Uniform(r, costChangeMin, costChangeMax), MinCost)
		ch.Cost = &cost
	}
	if sampling.Bernoulli(r, p.rates.Category) {
		cat, sub := p.gen.Category()
		name := cat.Name
		ch.Category = &name
		ch.Subcategory = &sub
	}
	if sampling.Bernoulli(r, p.rates.Brand) {
		brand := p.gen.Brand()
		ch.Brand = &brand
	}
	return ch
}

// Drift aplica old*(1+u), con piso floor y redondeo a 2 decimales.
func Drift(old decimal.Decimal, u float64, floor decimal.Decimal) decimal.Decimal {
	v := old.Mul(decimal.NewFromFloat(1 + u))
	return decimal.Max(v, floor).Round(2)
}
