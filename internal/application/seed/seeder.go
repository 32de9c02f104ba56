// Package seed población inicial del conjunto de datos: clientes, productos y pedidos con líneas y pagos.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/generate"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/pkg/logger"
)

// chunkSize registros generados por inserción; acota la memoria con tamaños grandes.
const chunkSize = 5000

// TxRunner transacción con todos los repositorios de escritura.
type TxRunner interface {
	RunSeed(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// Sizes cantidades a generar.
type Sizes struct {
	Customers int `json:"customers"`
	Products  int `json:"products"`
	Orders    int `json:"orders"`
}

// DefaultSizes tamaños de la población inicial por defecto.
func DefaultSizes() Sizes {
	return Sizes{Customers: 12000, Products: 800, Orders: 50000}
}

// Result filas insertadas por tabla.
type Result struct {
	Customers  int `json:"customers"`
	Products   int `json:"products"`
	Orders     int `json:"orders"`
	OrderItems int `json:"order_items"`
	Payments   int `json:"payments"`
}

// Seeder genera e inserta la población inicial en una sola transacción.
type Seeder struct {
	tx  TxRunner
	gen *generate.Generator
	log *logger.Logger
}

// NewSeeder construye el generador de población.
func NewSeeder(tx TxRunner, gen *generate.Generator, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{tx: tx, gen: gen, log: log}
}

// Seed agrega sizes registros a partir de los IDs máximos actuales, con fechas anteriores a now.
// Los pedidos referencian cualquier cliente y producto existente (1..max).
func (s *Seeder) Seed(ctx context.Context, sizes Sizes, now time.Time) (*Result, error) {
	if sizes.Customers < 0 || sizes.Products < 0 || sizes.Orders < 0 {
		return nil, fmt.Errorf("%w: tamaños negativos", domain.ErrInvalidInput)
	}
	now = now.UTC().Truncate(time.Millisecond)
	res := &Result{}

	err := s.tx.RunSeed(ctx, func(
		customerRepo repository.CustomerRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		maxCustomer, err := s.seedCustomers(ctx, customerRepo, sizes.Customers, now)
		if err != nil {
			return err
		}
		res.Customers = sizes.Customers

		maxProduct, err := s.seedProducts(ctx, productRepo, sizes.Products, now)
		if err != nil {
			return err
		}
		res.Products = sizes.Products

		if sizes.Orders == 0 {
			return nil
		}
		if maxCustomer == 0 || maxProduct == 0 {
			return fmt.Errorf("%w: no hay clientes o productos para los pedidos", domain.ErrInvalidInput)
		}
		refs := generate.OrderRefs{MaxCustomerID: maxCustomer, MaxProductID: maxProduct}
		return s.seedOrders(ctx, orderRepo, itemRepo, paymentRepo, refs, sizes.Orders, now, res)
	})
	if err != nil {
		return nil, fmt.Errorf("población inicial: %w", err)
	}
	s.log.Info().
		Int("customers", res.Customers).
		Int("products", res.Products).
		Int("orders", res.Orders).
		Int("order_items", res.OrderItems).
		Msg("población inicial generada")
	return res, nil
}

func (s *Seeder) seedCustomers(ctx context.Context, repo repository.CustomerRepository, n int, now time.Time) (int64, error) {
	maxID, err := repo.MaxID(ctx)
	if err != nil {
		return 0, err
	}
	for start := 0; start < n; start += chunkSize {
		batch := make([]*entity.Customer, min(chunkSize, n-start))
		for i := range batch {
			batch[i] = s.gen.SeedCustomer(maxID+int64(start+i)+1, now)
		}
		if err := repo.InsertBatch(ctx, batch); err != nil {
			return 0, fmt.Errorf("clientes: %w", err)
		}
	}
	return maxID + int64(n), nil
}

func (s *Seeder) seedProducts(ctx context.Context, repo repository.ProductRepository, n int, now time.Time) (int64, error) {
	maxID, err := repo.MaxID(ctx)
	if err != nil {
		return 0, err
	}
	for start := 0; start < n; start += chunkSize {
		batch := make([]*entity.Product, min(chunkSize, n-start))
		for i := range batch {
			batch[i] = s.gen.SeedProduct(maxID+int64(start+i)+1, now)
		}
		if err := repo.InsertBatch(ctx, batch); err != nil {
			return 0, fmt.Errorf("productos: %w", err)
		}
	}
	return maxID + int64(n), nil
}

func (s *Seeder) seedOrders(
	ctx context.Context,
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	paymentRepo repository.PaymentRepository,
	refs generate.OrderRefs,
	n int,
	now time.Time,
	res *Result,
) error {
	orderID, err := orderRepo.MaxID(ctx)
	if err != nil {
		return err
	}
	itemID, err := itemRepo.MaxID(ctx)
	if err != nil {
		return err
	}
	for start := 0; start < n; start += chunkSize {
		size := min(chunkSize, n-start)
		orders := make([]*entity.Order, 0, size)
		payments := make([]*entity.Payment, 0, size)
		var items []*entity.OrderItem
		for range size {
			orderID++
			bundle := s.gen.Order(orderID, itemID+1, refs, now)
			itemID += int64(len(bundle.Items))
			orders = append(orders, bundle.Order)
			items = append(items, bundle.Items...)
			payments = append(payments, bundle.Payment)
		}
		if err := orderRepo.InsertBatch(ctx, orders); err != nil {
			return fmt.Errorf("pedidos: %w", err)
		}
		if err := itemRepo.InsertBatch(ctx, items); err != nil {
			return fmt.Errorf("líneas de pedido: %w", err)
		}
		if err := paymentRepo.InsertBatch(ctx, payments); err != nil {
			return fmt.Errorf("pagos: %w", err)
		}
		res.Orders += len(orders)
		res.OrderItems += len(items)
		res.Payments += len(payments)
		s.log.Debug().Int("orders", res.Orders).Msg("pedidos insertados")
	}
	return nil
}
