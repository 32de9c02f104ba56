package generate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/sampling"
)

// Sufijos numéricos del correo: clientes nuevos usan 1..999, las mutaciones 100..999.
const (
	NewEmailSuffixMin    = 1
	NewEmailSuffixMax    = 999
	UpdateEmailSuffixMin = 100
	UpdateEmailSuffixMax = 999

	minWeightKg  = 0.1
	maxWeightKg  = 5.0
	minCostRatio = 0.4
	maxCostRatio = 0.7
)

// Customer cliente nuevo con created_at = updated_at = ts.
func (g *Generator) Customer(id int64, ts time.Time) *entity.Customer {
	first, last := g.FirstName(), g.LastName()
	return &entity.Customer{
		ID:          id,
		FirstName:   first,
		LastName:    last,
		Email:       g.Email(first, last, NewEmailSuffixMin, NewEmailSuffixMax, g.cat.EmailDomains),
		Phone:       g.Phone(),
		DateOfBirth: g.DateOfBirth(ts),
		Gender:      g.Gender(),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// Product producto nuevo: precio según el rango de su categoría y costo entre 40% y 70% del precio.
func (g *Generator) Product(id int64, ts time.Time) *entity.Product {
	cat, sub := g.Category()
	brand := g.Brand()
	price := decimal.NewFromInt(int64(sampling.IntBetween(g.r, cat.Price.Min, cat.Price.Max)))
	cost := price.Mul(decimal.NewFromFloat(sampling.Uniform(g.r, minCostRatio, maxCostRatio))).Round(2)
	return &entity.Product{
		ID:          id,
		Name:        fmt.Sprintf("%s %s", brand, sub),
		Category:    cat.Name,
		Subcategory: sub,
		Brand:       brand,
		Price:       price.Round(2),
		Cost:        cost,
		WeightKg:    decimal.NewFromFloat(sampling.Uniform(g.r, minWeightKg, maxWeightKg)).Round(2),
		CreatedAt:   ts,
	}
}

// SeedCustomer cliente de la población inicial: alta en los últimos 2 años y updated_at hasta 30 días después
// (nunca posterior a now).
func (g *Generator) SeedCustomer(id int64, now time.Time) *entity.Customer {
	c := g.Customer(id, g.Between(now.AddDate(-2, 0, 0), now))
	c.Email = g.Email(c.FirstName, c.LastName, NewEmailSuffixMin, NewEmailSuffixMax, g.cat.SeedEmailDomains)
	updated := c.CreatedAt.AddDate(0, 0, sampling.IntBetween(g.r, 0, 30))
	if updated.After(now) {
		updated = now
	}
	c.UpdatedAt = updated
	return c
}

// SeedProduct producto de la población inicial con alta en el último año.
func (g *Generator) SeedProduct(id int64, now time.Time) *entity.Product {
	return g.Product(id, g.Between(now.AddDate(-1, 0, 0), now))
}
