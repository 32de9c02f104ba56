//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/postgres"
	"github.com/jhoicas/ecommerce-scd2/pkg/config"
)

var t0 = time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)

func setupRunner(t *testing.T) *postgres.TxRunner {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("nepal_ecommerce"),
		tcpostgres.WithUsername("scd2"),
		tcpostgres.WithPassword("scd2"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: connStr})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	runner, err := postgres.NewTxRunner(pool)
	require.NoError(t, err)
	return runner
}

func ptr[T any](v T) *T { return &v }

func fixtures() ([]*entity.Customer, []*entity.Product, []*entity.Order) {
	customers := []*entity.Customer{{
		ID: 1, FirstName: "Ram", LastName: "Shrestha", Email: "ram.shrestha101@gmail.com",
		Phone: "+977-981-1111111", DateOfBirth: time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		Gender: entity.GenderMale, CreatedAt: t0, UpdatedAt: t0,
	}}
	products := []*entity.Product{{
		ID: 1, Name: "Samsung Smartphones", Category: "Electronics", Subcategory: "Smartphones", Brand: "Samsung",
		Price: decimal.RequireFromString("45000.50"), Cost: decimal.RequireFromString("30000"),
		WeightKg: decimal.RequireFromString("0.35"), CreatedAt: t0,
	}}
	orders := []*entity.Order{{
		ID: 1, CustomerID: 1, OrderDate: t0, Status: entity.OrderStatusPending,
		TotalAmount: decimal.RequireFromString("45100.50"), ShippingCost: decimal.NewFromInt(100),
		DiscountAmount: decimal.Zero, ShippingAddressID: 2, CreatedAt: t0, UpdatedAt: t0,
	}}
	return customers, products, orders
}

func TestPostgres_LoteCompleto(t *testing.T) {
	runner := setupRunner(t)
	ctx := context.Background()
	customers, products, orders := fixtures()

	require.NoError(t, runner.Run(ctx, func(c repository.CustomerRepository, p repository.ProductRepository, o repository.OrderRepository) error {
		if err := c.InsertBatch(ctx, customers); err != nil {
			return err
		}
		if err := p.InsertBatch(ctx, products); err != nil {
			return err
		}
		return o.InsertBatch(ctx, orders)
	}))

	ts := t0.Add(7 * 24 * time.Hour)
	require.NoError(t, runner.Run(ctx, func(c repository.CustomerRepository, p repository.ProductRepository, o repository.OrderRepository) error {
		if err := c.ApplyDeltas(ctx, []entity.CustomerDelta{{
			CustomerID: 1, Changes: entity.CustomerChanges{Phone: ptr("+977-985-7654321")}, UpdatedAt: ts,
		}}); err != nil {
			return err
		}
		if err := p.ApplyDeltas(ctx, []entity.ProductDelta{{
			ProductID: 1, Changes: entity.ProductChanges{Price: ptr(decimal.RequireFromString("39999.99"))},
		}}); err != nil {
			return err
		}
		return o.ApplyDeltas(ctx, []entity.OrderDelta{{
			OrderID: 1, From: entity.OrderStatusPending, Status: entity.OrderStatusConfirmed, UpdatedAt: ts,
		}})
	}))

	require.NoError(t, runner.Run(ctx, func(c repository.CustomerRepository, p repository.ProductRepository, o repository.OrderRepository) error {
		cust, err := c.(*postgres.CustomerRepo).GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "+977-985-7654321", cust.Phone)
		assert.Equal(t, "ram.shrestha101@gmail.com", cust.Email)
		assert.True(t, cust.UpdatedAt.Equal(ts))

		prod, err := p.(*postgres.ProductRepo).GetByID(ctx, 1)
		require.NoError(t, err)
		assert.True(t, prod.Price.Equal(decimal.RequireFromString("39999.99")))
		assert.True(t, prod.Cost.Equal(decimal.RequireFromString("30000")))

		sample, err := o.SampleByStatus(ctx, entity.OpenOrderStatuses, 10, ts)
		require.NoError(t, err)
		require.Len(t, sample, 1)
		assert.Equal(t, entity.OrderStatusConfirmed, sample[0].Status)
		return nil
	}))

	updated, err := runner.Stats().CountUpdatedCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
}

func TestPostgres_FalloRevierteLote(t *testing.T) {
	runner := setupRunner(t)
	ctx := context.Background()
	customers, _, _ := fixtures()

	err := runner.Run(ctx, func(c repository.CustomerRepository, _ repository.ProductRepository, _ repository.OrderRepository) error {
		if err := c.InsertBatch(ctx, customers); err != nil {
			return err
		}
		return c.ApplyDeltas(ctx, []entity.CustomerDelta{{
			CustomerID: 99, Changes: entity.CustomerChanges{Phone: ptr("+977-980-0000000")}, UpdatedAt: t0,
		}})
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	counts, err := runner.Stats().CountRows(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts[0].Rows)
}
