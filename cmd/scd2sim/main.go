package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/ecommerce-scd2/internal/application/scd2"
	"github.com/jhoicas/ecommerce-scd2/internal/application/seed"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/catalog"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/generate"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/mutation"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/sampling"
	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/postgres"
	"github.com/jhoicas/ecommerce-scd2/internal/infrastructure/sqlite"
	"github.com/jhoicas/ecommerce-scd2/internal/interfaces/cli"
	"github.com/jhoicas/ecommerce-scd2/pkg/config"
	"github.com/jhoicas/ecommerce-scd2/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Debug().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.Store.Driver).
		Msg("iniciando simulador")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cfg, log, opener(cfg, log), os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("comando fallido")
		stop()
		os.Exit(1)
	}
}

// opener conecta el almacén configurado y arma motores y planificador.
func opener(cfg *config.Config, log *logger.Logger) cli.Opener {
	return func(ctx context.Context, batch config.BatchConfig) (*cli.Runtime, error) {
		cat, err := loadCatalog(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}

		var (
			tx     scd2.TxRunner
			seedTx seed.TxRunner
			stats  repository.StatsRepository
			closer func()
		)
		switch cfg.Store.Driver {
		case config.DriverPostgres:
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return nil, err
			}
			runner, err := postgres.NewTxRunner(pool)
			if err != nil {
				pool.Close()
				return nil, err
			}
			tx, seedTx, stats, closer = runner, runner, runner.Stats(), pool.Close
		default:
			store, err := sqlite.Open(ctx, cfg.Store.Path)
			if err != nil {
				return nil, err
			}
			runner := sqlite.NewTxRunner(store)
			tx, seedTx, stats, closer = runner, runner, runner.Stats(), func() { _ = store.Close() }
		}

		gen := generate.New(cat, sampling.NewRand(batch.Seed))
		statuses, err := mutation.NewStatusPolicy(gen.Rand(), mutation.DefaultStatusRules())
		if err != nil {
			closer()
			return nil, err
		}
		mutations := scd2.NewMutationEngine(
			mutation.NewCustomerPolicy(gen, mutation.DefaultCustomerRates()),
			mutation.NewProductPolicy(gen, mutation.DefaultProductRates()),
			statuses,
			batch.UpdateSize,
			log,
		)
		growth := scd2.NewGrowthEngine(gen, batch.NewRecordsSize, log)

		return &cli.Runtime{
			Scheduler: scd2.NewScheduler(tx, mutations, growth, log),
			Seeder:    seed.NewSeeder(seedTx, gen, log),
			Stats:     stats,
			Close:     closer,
		}, nil
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}
