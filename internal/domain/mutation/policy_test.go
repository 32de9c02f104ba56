package mutation_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/catalog"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/generate"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/mutation"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/sampling"
)

func newGenerator(t *testing.T, seed uint64) *generate.Generator {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return generate.New(cat, sampling.NewRand(seed))
}

func testCustomer() *entity.Customer {
	created := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	return &entity.Customer{
		ID:        1,
		FirstName: "Sita",
		LastName:  "Gurung",
		Email:     "sita.gurung12@gmail.com",
		Phone:     "+977-981-1111111",
		Gender:    entity.GenderFemale,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerPolicy_SoloTelefono(t *testing.T) {
	policy := mutation.NewCustomerPolicy(newGenerator(t, 1), mutation.CustomerRates{Phone: 1})

	ch := policy.Mutate(testCustomer())

	require.NotNil(t, ch.Phone)
	assert.Regexp(t, regexp.MustCompile(`^\+977-98[0-9]-\d{7}$`), *ch.Phone)
	assert.Nil(t, ch.Email)
	assert.Nil(t, ch.FirstName)
	assert.Nil(t, ch.LastName)
	assert.Equal(t, []string{entity.FieldPhone}, ch.Fields())
}

func TestCustomerPolicy_SinDisparosDevuelveVacio(t *testing.T) {
	policy := mutation.NewCustomerPolicy(newGenerator(t, 2), mutation.CustomerRates{})
	for i := 0; i < 100; i++ {
		assert.True(t, policy.Mutate(testCustomer()).IsEmpty())
	}
}

func TestCustomerPolicy_CorreoConNombreActual(t *testing.T) {
	policy := mutation.NewCustomerPolicy(newGenerator(t, 3), mutation.CustomerRates{Email: 1, FirstName: 1})

	ch := policy.Mutate(testCustomer())

	require.NotNil(t, ch.Email)
	assert.Regexp(t, `^sita\.gurung[1-9]\d{2}@(gmail|yahoo|hotmail|outlook)\.com$`, *ch.Email,
		"el correo usa el nombre almacenado y un sufijo de 3 dígitos")
	require.NotNil(t, ch.FirstName)
}

func TestCustomerPolicy_TasasAproximadas(t *testing.T) {
	policy := mutation.NewCustomerPolicy(newGenerator(t, 4), mutation.DefaultCustomerRates())
	const n = 20000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		for _, f := range policy.Mutate(testCustomer()).Fields() {
			counts[f]++
		}
	}
	assert.InDelta(t, 0.30, float64(counts[entity.FieldPhone])/n, 0.02)
	assert.InDelta(t, 0.20, float64(counts[entity.FieldEmail])/n, 0.02)
	assert.InDelta(t, 0.10, float64(counts[entity.FieldFirstName])/n, 0.02)
	assert.InDelta(t, 0.05, float64(counts[entity.FieldLastName])/n, 0.02)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestDrift_PisoYRedondeo(t *testing.T) {
	got := mutation.Drift(decimal.NewFromInt(55), -0.2, mutation.MinPrice)
	assert.True(t, got.Equal(decimal.NewFromInt(50)), "55*0.8=44 queda en el piso de 50, got %s", got)

	got = mutation.Drift(decimal.RequireFromString("1000.00"), 0.12345, mutation.MinPrice)
	assert.Equal(t, "1123.45", got.StringFixed(2))
}

func TestProductPolicy_RangosDePrecioYCosto(t *testing.T) {
	policy := mutation.NewProductPolicy(newGenerator(t, 5), mutation.ProductRates{Price: 1, Cost: 1})
	old := &entity.Product{ID: 9, Price: decimal.NewFromInt(10000), Cost: decimal.NewFromInt(6000)}

	for i := 0; i < 500; i++ {
		ch := policy.Mutate(old)
		require.NotNil(t, ch.Price)
		require.NotNil(t, ch.Cost)
		assert.True(t, ch.Price.GreaterThanOrEqual(decimal.NewFromInt(8000)), "precio %s", ch.Price)
		assert.True(t, ch.Price.LessThanOrEqual(decimal.NewFromInt(13000)), "precio %s", ch.Price)
		assert.True(t, ch.Cost.GreaterThanOrEqual(decimal.NewFromInt(5100)), "costo %s", ch.Cost)
		assert.True(t, ch.Cost.LessThanOrEqual(decimal.NewFromInt(7500)), "costo %s", ch.Cost)
		assert.Nil(t, ch.Category)
		assert.Nil(t, ch.Brand)
	}
}

func TestProductPolicy_CategoriaYSubcategoriaJuntas(t *testing.T) {
	gen := newGenerator(t, 6)
	policy := mutation.NewProductPolicy(gen, mutation.ProductRates{Category: 1})
	old := &entity.Product{ID: 1, Category: "Books", Subcategory: "Novel"}

	for i := 0; i < 200; i++ {
		ch := policy.Mutate(old)
		require.NotNil(t, ch.Category)
		require.NotNil(t, ch.Subcategory)
		cat, ok := gen.Catalog().Category(*ch.Category)
		require.True(t, ok)
		assert.Contains(t, cat.Subcategories, *ch.Subcategory)
		assert.Nil(t, ch.Price)
	}
}

func TestProductPolicy_CostoPuedeSuperarPrecio(t *testing.T) {
	policy := mutation.NewProductPolicy(newGenerator(t, 7), mutation.ProductRates{Cost: 1})
	old := &entity.Product{ID: 1, Price: decimal.NewFromInt(100), Cost: decimal.NewFromInt(99)}

	exceeded := false
	for i := 0; i < 200 && !exceeded; i++ {
		exceeded = policy.Mutate(old).Cost.GreaterThan(old.Price)
	}
	assert.True(t, exceeded, "no se fuerza cost < price")
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func newStatusPolicy(t *testing.T, seed uint64) *mutation.StatusPolicy {
	t.Helper()
	p, err := mutation.NewStatusPolicy(sampling.NewRand(seed), mutation.DefaultStatusRules())
	require.NoError(t, err)
	return p
}

func TestStatusPolicy_EstadosTerminales(t *testing.T) {
	p := newStatusPolicy(t, 1)
	for _, s := range []string{entity.OrderStatusDelivered, entity.OrderStatusCancelled, entity.OrderStatusReturned, "lost"} {
		next, changed, err := p.Next(s)
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "estado %s", s)
		assert.False(t, changed)
		assert.Equal(t, s, next)
		assert.Empty(t, p.Successors(s))
	}
}

func TestStatusPolicy_SoloSucesoresDefinidos(t *testing.T) {
	p := newStatusPolicy(t, 2)
	for _, from := range entity.OpenOrderStatuses {
		for i := 0; i < 2000; i++ {
			next, changed, err := p.Next(from)
			require.NoError(t, err)
			if !changed {
				assert.Equal(t, from, next)
				continue
			}
			assert.Contains(t, p.Successors(from), next, "%s -> %s no es una arista definida", from, next)
			if from != entity.OrderStatusShipped {
				assert.NotEqual(t, entity.OrderStatusDelivered, next, "solo shipped lleva a delivered, no %s", from)
			}
		}
	}
}

func TestStatusPolicy_PendingSeReparteEntreConfirmedYCancelled(t *testing.T) {
	p := newStatusPolicy(t, 3)
	counts := map[string]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		next, _, err := p.Next(entity.OrderStatusPending)
		require.NoError(t, err)
		counts[next]++
	}
	assert.InDelta(t, 0.30, float64(counts[entity.OrderStatusPending])/n, 0.02)
	assert.InDelta(t, 0.35, float64(counts[entity.OrderStatusConfirmed])/n, 0.02)
	assert.InDelta(t, 0.35, float64(counts[entity.OrderStatusCancelled])/n, 0.02)
}

// Un pedido shipped sometido a 1000 lotes independientes con p=0.90 llega a delivered en >= 85% de los casos.
func TestStatusPolicy_ShippedADeliveredEstadistico(t *testing.T) {
	p := newStatusPolicy(t, 4)
	delivered := 0
	for i := 0; i < 1000; i++ {
		next, _, err := p.Next(entity.OrderStatusShipped)
		require.NoError(t, err)
		if next == entity.OrderStatusDelivered {
			delivered++
		}
	}
	assert.GreaterOrEqual(t, delivered, 850)
}

func TestNewStatusPolicy_ReglasInvalidas(t *testing.T) {
	r := sampling.NewRand(5)
	_, err := mutation.NewStatusPolicy(r, mutation.StatusRules{
		entity.OrderStatusDelivered: {Probability: 1, Targets: []sampling.Outcome[string]{{Value: entity.OrderStatusReturned, Weight: 1}}},
	})
	assert.Error(t, err, "un estado terminal no puede tener salidas")

	_, err = mutation.NewStatusPolicy(r, mutation.StatusRules{
		entity.OrderStatusPending: {Probability: 1},
	})
	assert.Error(t, err, "una regla sin destinos es inválida")
}
