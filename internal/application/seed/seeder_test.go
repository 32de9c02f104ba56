package seed_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-scd2/internal/application/seed"
	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/catalog"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/generate"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/sampling"
	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/sqlite"
	"github.com/jhoicas/ecommerce-scd2/pkg/logger"
)

var now = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func newSeeder(t *testing.T) (*seed.Seeder, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cat, err := catalog.Default()
	require.NoError(t, err)
	gen := generate.New(cat, sampling.NewRand(7))
	return seed.NewSeeder(sqlite.NewTxRunner(store), gen, logger.Nop()), store
}

func TestSeed_PoblacionConsistente(t *testing.T) {
	seeder, store := newSeeder(t)
	ctx := context.Background()

	res, err := seeder.Seed(ctx, seed.Sizes{Customers: 50, Products: 10, Orders: 120}, now)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Customers)
	assert.Equal(t, 10, res.Products)
	assert.Equal(t, 120, res.Orders)
	assert.Equal(t, 120, res.Payments)
	assert.GreaterOrEqual(t, res.OrderItems, 120)
	assert.LessOrEqual(t, res.OrderItems, 480)

	counts, err := store.Stats().CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []repository.TableCount{
		{Table: repository.TableCustomers, Rows: 50},
		{Table: repository.TableProducts, Rows: 10},
		{Table: repository.TableOrders, Rows: 120},
		{Table: repository.TableOrderItems, Rows: int64(res.OrderItems)},
		{Table: repository.TablePayments, Rows: 120},
	}, counts)

	orders := sqlite.NewOrderRepository(store.DB(), store.Builder())
	for id := int64(1); id <= 120; id++ {
		o, err := orders.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, o)
		assert.Contains(t, entity.OrderStatuses, o.Status)
		assert.False(t, o.UpdatedAt.Before(o.CreatedAt))
		assert.False(t, o.OrderDate.After(now))
	}
}

func TestSeed_SegundaEjecucionContinuaIDs(t *testing.T) {
	seeder, store := newSeeder(t)
	ctx := context.Background()

	_, err := seeder.Seed(ctx, seed.Sizes{Customers: 5, Products: 3, Orders: 4}, now)
	require.NoError(t, err)
	_, err = seeder.Seed(ctx, seed.Sizes{Customers: 5, Products: 3, Orders: 4}, now)
	require.NoError(t, err)

	max, err := sqlite.NewCustomerRepository(store.DB(), store.Builder()).MaxID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), max)
	max, err = sqlite.NewOrderRepository(store.DB(), store.Builder()).MaxID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), max)
}

func TestSeed_PedidosSinClientesFalla(t *testing.T) {
	seeder, store := newSeeder(t)
	ctx := context.Background()

	_, err := seeder.Seed(ctx, seed.Sizes{Customers: 0, Products: 3, Orders: 4}, now)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	counts, err := store.Stats().CountRows(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts[1].Rows, "la transacción se revierte completa")
}
