package generate_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/catalog"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/generate"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/sampling"
)

var (
	phonePattern = regexp.MustCompile(`^\+977-98[0-9]-\d{7}$`)
	emailPattern = regexp.MustCompile(`^[a-z]+\.[a-z]+\d{1,3}@(gmail\.com|yahoo\.com|hotmail\.com|outlook\.com)$`)
	testNow      = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
)

func newGenerator(t *testing.T, seed uint64) *generate.Generator {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return generate.New(cat, sampling.NewRand(seed))
}

func TestPhone_FormatoLocal(t *testing.T) {
	g := newGenerator(t, 1)
	for i := 0; i < 500; i++ {
		assert.Regexp(t, phonePattern, g.Phone())
	}
}

func TestEmail_NormalizaNombre(t *testing.T) {
	g := newGenerator(t, 2)
	email := g.Email("Rámesh", "Local Brand", 100, 100, []string{"gmail.com"})
	assert.Equal(t, "ramesh.localbrand100@gmail.com", email,
		"la parte local va sin diacríticos, sin espacios y en minúsculas")
}

func TestCustomer_ReglasDeCrecimiento(t *testing.T) {
	g := newGenerator(t, 3)
	c := g.Customer(42, testNow)

	assert.Equal(t, int64(42), c.ID)
	assert.Equal(t, testNow, c.CreatedAt)
	assert.Equal(t, testNow, c.UpdatedAt)
	assert.Regexp(t, phonePattern, c.Phone)
	assert.Regexp(t, emailPattern, c.Email)
	assert.True(t, strings.HasPrefix(c.Email, strings.ToLower(c.FirstName)+"."+strings.ToLower(c.LastName)))
	assert.Contains(t, []string{"Male", "Female"}, c.Gender)

	age := testNow.Sub(c.DateOfBirth)
	assert.GreaterOrEqual(t, age, 18*365*24*time.Hour-48*time.Hour)
	assert.LessOrEqual(t, age, 71*366*24*time.Hour)
}

func TestProduct_PrecioSegunCategoria(t *testing.T) {
	g := newGenerator(t, 4)
	cat := g.Catalog()
	for i := int64(1); i <= 300; i++ {
		p := g.Product(i, testNow)
		category, ok := cat.Category(p.Category)
		require.True(t, ok, "categoría desconocida %q", p.Category)
		assert.Contains(t, category.Subcategories, p.Subcategory, "subcategoría inconsistente")
		assert.Equal(t, p.Brand+" "+p.Subcategory, p.Name)

		assert.True(t, p.Price.GreaterThanOrEqual(decimal.NewFromInt(int64(category.Price.Min))))
		assert.True(t, p.Price.LessThanOrEqual(decimal.NewFromInt(int64(category.Price.Max))))

		ratio := p.Cost.Div(p.Price).InexactFloat64()
		assert.InDelta(t, 0.55, ratio, 0.151, "costo entre 40%% y 70%% del precio")
		assert.Equal(t, testNow, p.CreatedAt)
	}
}

func TestSeedCustomer_UpdatedNoAntesDeCreated(t *testing.T) {
	g := newGenerator(t, 5)
	for i := int64(1); i <= 200; i++ {
		c := g.SeedCustomer(i, testNow)
		assert.False(t, c.UpdatedAt.Before(c.CreatedAt))
		assert.False(t, c.UpdatedAt.After(testNow))
		assert.True(t, c.CreatedAt.After(testNow.AddDate(-2, 0, -1)))
	}
}

func TestOrder_PagoYLineasConsistentes(t *testing.T) {
	g := newGenerator(t, 6)
	refs := generate.OrderRefs{MaxCustomerID: 50, MaxProductID: 20}
	nextItem := int64(1)
	for id := int64(1); id <= 200; id++ {
		b := g.Order(id, nextItem, refs, testNow)

		require.NotEmpty(t, b.Items)
		assert.LessOrEqual(t, len(b.Items), 4)
		assert.GreaterOrEqual(t, b.Order.CustomerID, int64(1))
		assert.LessOrEqual(t, b.Order.CustomerID, int64(50))
		assert.False(t, b.Order.UpdatedAt.Before(b.Order.CreatedAt))

		seen := map[int64]bool{}
		for i, it := range b.Items {
			assert.Equal(t, nextItem+int64(i), it.ID, "IDs de línea consecutivos")
			assert.Equal(t, id, it.OrderID)
			assert.False(t, seen[it.ProductID], "producto repetido en el pedido")
			seen[it.ProductID] = true
			assert.GreaterOrEqual(t, it.Quantity, 1)
		}
		nextItem += int64(len(b.Items))

		assert.Equal(t, id, b.Payment.ID)
		assert.Equal(t, id, b.Payment.OrderID)
		assert.True(t, b.Payment.Amount.Equal(b.Order.TotalAmount))
		switch b.Payment.PaymentMethod {
		case "Cash on Delivery", "Bank Transfer":
			assert.Nil(t, b.Payment.TransactionID)
		default:
			require.NotNil(t, b.Payment.TransactionID)
			assert.Regexp(t, `^[A-Z ]{3}\d{6}$`, *b.Payment.TransactionID)
		}
	}
}
