// Package mutation políticas que deciden qué cambia en un registro existente durante un lote:
// mutación de campos (clientes, productos) y transición de estado (pedidos).
package mutation

import (
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/generate"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/sampling"
)

// CustomerRates probabilidad independiente de cambio por campo.
type CustomerRates struct {
	Phone     float64
	Email     float64
	FirstName float64 // cambio de nombre (p. ej. matrimonio)
	LastName  float64
}

// DefaultCustomerRates tasas por defecto del feed.
func DefaultCustomerRates() CustomerRates {
	return CustomerRates{
		Phone:     0.30,
		Email:     0.20,
		FirstName: 0.10,
		LastName:  0.05,
	}
}

// CustomerPolicy decide los cambios de campo de un cliente muestreado.
type CustomerPolicy struct {
	gen   *generate.Generator
	rates CustomerRates
}

// NewCustomerPolicy construye la política.
func NewCustomerPolicy(gen *generate.Generator, rates CustomerRates) *CustomerPolicy {
	return &CustomerPolicy{gen: gen, rates: rates}
}

// Mutate devuelve solo los campos seleccionados. Un resultado vacío significa que el registro se omite.
// El correo nuevo se arma con el nombre y apellido almacenados, no con los que cambien en este mismo lote.
func (p *CustomerPolicy) Mutate(c *entity.Customer) entity.CustomerChanges {
	r := p.gen.Rand()
	var ch entity.CustomerChanges

	if sampling.Bernoulli(r, p.rates.Phone) {
		phone := p.gen.Phone()
		ch.Phone = &phone
	}
	if sampling.Bernoulli(r, p.rates.Email) {
		email := p.gen.Email(c.FirstName, c.LastName,
			generate.UpdateEmailSuffixMin, generate.UpdateEmailSuffixMax, p.gen.Catalog().EmailDomains)
		ch.Email = &email
	}
	if sampling.Bernoulli(r, p.rates.FirstName) {
		first := p.gen.FirstName()
		ch.FirstName = &first
	}
	if sampling.Bernoulli(r, p.rates.LastName) {
		last := p.gen.LastName()
		ch.LastName = &last
	}
	return ch
}
