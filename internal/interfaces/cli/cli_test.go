package cli_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-scd2/internal/application/scd2"
	"github.com/jhoicas/ecommerce-scd2/internal/application/seed"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/catalog"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/generate"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/mutation"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/sampling"
	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/sqlite"
	"github.com/jhoicas/ecommerce-scd2/internal/interfaces/cli"
	"github.com/jhoicas/ecommerce-scd2/pkg/config"
	"github.com/jhoicas/ecommerce-scd2/pkg/logger"
)

func testOpener(t *testing.T, path string) cli.Opener {
	t.Helper()
	return func(ctx context.Context, batch config.BatchConfig) (*cli.Runtime, error) {
		store, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		cat, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		gen := generate.New(cat, sampling.NewRand(batch.Seed))
		statuses, err := mutation.NewStatusPolicy(gen.Rand(), mutation.DefaultStatusRules())
		if err != nil {
			return nil, err
		}
		runner := sqlite.NewTxRunner(store)
		log := logger.Nop()
		mutations := scd2.NewMutationEngine(
			mutation.NewCustomerPolicy(gen, mutation.DefaultCustomerRates()),
			mutation.NewProductPolicy(gen, mutation.DefaultProductRates()),
			statuses, batch.UpdateSize, log,
		)
		return &cli.Runtime{
			Scheduler: scd2.NewScheduler(runner, mutations, scd2.NewGrowthEngine(gen, batch.NewRecordsSize, log), log),
			Seeder:    seed.NewSeeder(runner, gen, log),
			Stats:     runner.Stats(),
			Close:     func() { _ = store.Close() },
		}, nil
	}
}

func run(t *testing.T, path string, args ...string) (string, error) {
	t.Helper()
	cfg := &config.Config{Batch: config.BatchConfig{UpdateSize: 100, NewRecordsSize: 10, Seed: 3}}
	var out bytes.Buffer
	root := cli.NewRootCommand(cfg, logger.Nop(), testOpener(t, path), &out)
	root.SetArgs(args)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

type batchJSON struct {
	Batches []struct {
		BatchID        string `json:"batch_id"`
		CustomersAdded int    `json:"customers_added"`
		ProductsAdded  int    `json:"products_added"`
	} `json:"batches"`
	Before *struct {
		UpdatedCustomers int64 `json:"updated_customers"`
	} `json:"before"`
	After *struct {
		Tables []struct {
			Table string `json:"table"`
			Rows  int64  `json:"rows"`
		} `json:"tables"`
	} `json:"after"`
}

func TestCLI_SeedBatchHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, path, "seed", "--customers", "30", "--products", "8", "--orders", "20", "--json")
	require.NoError(t, err)
	var res seed.Result
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &res))
	assert.Equal(t, 30, res.Customers)
	assert.Equal(t, 20, res.Payments)

	out, err = run(t, path, "batch", "--json")
	require.NoError(t, err)
	var batch batchJSON
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &batch))
	require.Len(t, batch.Batches, 1)
	assert.NotEmpty(t, batch.Batches[0].BatchID)
	assert.Equal(t, 10, batch.Batches[0].CustomersAdded)
	assert.Equal(t, 5, batch.Batches[0].ProductsAdded)
	require.NotNil(t, batch.After)
	assert.Equal(t, "customers", batch.After.Tables[0].Table)
	assert.Equal(t, int64(40), batch.After.Tables[0].Rows)

	out, err = run(t, path, "history", "-n", "2", "-d", "3", "--new-size", "4", "--json")
	require.NoError(t, err)
	var history batchJSON
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &history))
	require.Len(t, history.Batches, 2)
	assert.Equal(t, 4, history.Batches[1].CustomersAdded)
}

func TestCLI_SummaryTexto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.db")

	out, err := run(t, path, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Resumen del almacén")
	assert.Contains(t, out, "customers")
	assert.Contains(t, out, "clientes con cambios")
}

func TestCLI_HistoryParametrosInvalidos(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "bad.db"), "history", "-n", "0")
	require.Error(t, err)
}
