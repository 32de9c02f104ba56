// Package catalog datos de referencia del simulador: pools de nombres, marcas, categorías con rangos de precio
// y tablas de pesos. Se cargan una vez al arrancar (YAML embebido o archivo externo) y se tratan como inmutables.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/sampling"
)

//go:embed catalog.yaml
var defaultYAML []byte

// IntRange rango entero inclusivo.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Category categoría de producto con sus subcategorías y rango de precio (NPR).
type Category struct {
	Name          string   `yaml:"name"`
	Subcategories []string `yaml:"subcategories"`
	Price         IntRange `yaml:"price"`
}

// PaymentMethod método de pago con su peso; Digital indica que genera transaction_id.
type PaymentMethod struct {
	Name    string  `yaml:"name"`
	Weight  float64 `yaml:"weight"`
	Digital bool    `yaml:"digital"`
}

// WeightedValue par valor/peso leído del YAML.
type WeightedValue struct {
	Value  string  `yaml:"value"`
	Weight float64 `yaml:"weight"`
}

// Catalog datos de referencia ya validados.
type Catalog struct {
	FirstNames         []string        `yaml:"first_names"`
	LastNames          []string        `yaml:"last_names"`
	Brands             []string        `yaml:"brands"`
	EmailDomains       []string        `yaml:"email_domains"`
	SeedEmailDomains   []string        `yaml:"seed_email_domains"`
	Categories         []Category      `yaml:"categories"`
	PaymentMethods     []PaymentMethod `yaml:"payment_methods"`
	OrderStatuses      []WeightedValue `yaml:"order_statuses"`
	PaymentStatuses    []WeightedValue `yaml:"payment_statuses"`
	ShippingAddressIDs IntRange        `yaml:"shipping_address_ids"`

	byName         map[string]*Category
	paymentMethods *sampling.Weighted[PaymentMethod]
	orderStatus    *sampling.Weighted[string]
	paymentStatus  *sampling.Weighted[string]
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default devuelve el catálogo embebido (parseado una sola vez por proceso).
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(defaultYAML)
	})
	return defaultCatalog, defaultErr
}

// Load carga el catálogo desde path; si path está vacío usa el embebido.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo %s: %w", path, err)
	}
	return Parse(data)
}

// Parse interpreta y valida un catálogo en YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsear catálogo: %w", err)
	}
	applyDefaults(&c)
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func applyDefaults(c *Catalog) {
	if len(c.SeedEmailDomains) == 0 {
		c.SeedEmailDomains = c.EmailDomains
	}
	if c.ShippingAddressIDs.Max == 0 {
		c.ShippingAddressIDs = IntRange{Min: 1, Max: 8}
	}
}

func (c *Catalog) index() error {
	switch {
	case len(c.FirstNames) == 0:
		return fmt.Errorf("catálogo: first_names vacío")
	case len(c.LastNames) == 0:
		return fmt.Errorf("catálogo: last_names vacío")
	case len(c.Brands) == 0:
		return fmt.Errorf("catálogo: brands vacío")
	case len(c.EmailDomains) == 0:
		return fmt.Errorf("catálogo: email_domains vacío")
	case len(c.Categories) == 0:
		return fmt.Errorf("catálogo: categories vacío")
	}

	c.byName = make(map[string]*Category, len(c.Categories))
	for i := range c.Categories {
		cat := &c.Categories[i]
		if len(cat.Subcategories) == 0 {
			return fmt.Errorf("catálogo: categoría %q sin subcategorías", cat.Name)
		}
		if cat.Price.Min <= 0 || cat.Price.Max < cat.Price.Min {
			return fmt.Errorf("catálogo: rango de precio inválido en %q", cat.Name)
		}
		if _, dup := c.byName[cat.Name]; dup {
			return fmt.Errorf("catálogo: categoría duplicada %q", cat.Name)
		}
		c.byName[cat.Name] = cat
	}

	var err error
	methods := make([]sampling.Outcome[PaymentMethod], 0, len(c.PaymentMethods))
	for _, m := range c.PaymentMethods {
		methods = append(methods, sampling.Outcome[PaymentMethod]{Value: m, Weight: m.Weight})
	}
	if c.paymentMethods, err = sampling.NewWeighted(methods); err != nil {
		return fmt.Errorf("catálogo: payment_methods: %w", err)
	}
	if c.orderStatus, err = sampling.NewWeighted(outcomes(c.OrderStatuses)); err != nil {
		return fmt.Errorf("catálogo: order_statuses: %w", err)
	}
	if c.paymentStatus, err = sampling.NewWeighted(outcomes(c.PaymentStatuses)); err != nil {
		return fmt.Errorf("catálogo: payment_statuses: %w", err)
	}
	return nil
}

func outcomes(values []WeightedValue) []sampling.Outcome[string] {
	out := make([]sampling.Outcome[string], 0, len(values))
	for _, v := range values {
		out = append(out, sampling.Outcome[string]{Value: v.Value, Weight: v.Weight})
	}
	return out
}

// Category busca una categoría por nombre.
func (c *Catalog) Category(name string) (*Category, bool) {
	cat, ok := c.byName[name]
	return cat, ok
}

// PaymentMethodDistribution distribución ponderada de métodos de pago.
func (c *Catalog) PaymentMethodDistribution() *sampling.Weighted[PaymentMethod] {
	return c.paymentMethods
}

// OrderStatusDistribution distribución ponderada de estados iniciales de pedido.
func (c *Catalog) OrderStatusDistribution() *sampling.Weighted[string] {
	return c.orderStatus
}

// PaymentStatusDistribution distribución ponderada de estados de pago.
func (c *Catalog) PaymentStatusDistribution() *sampling.Weighted[string] {
	return c.paymentStatus
}
