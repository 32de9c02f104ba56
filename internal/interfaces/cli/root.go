// Package cli comandos del simulador: lote incremental, lotes históricos, población inicial y resumen.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ecommerce-scd2/internal/application/scd2"
	"github.com/jhoicas/ecommerce-scd2/internal/application/seed"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
	"github.com/jhoicas/ecommerce-scd2/pkg/config"
	"github.com/jhoicas/ecommerce-scd2/pkg/logger"
)

// Runtime dependencias ya conectadas al almacén.
type Runtime struct {
	Scheduler *scd2.Scheduler
	Seeder    *seed.Seeder
	Stats     repository.StatsRepository
	Close     func()
}

// Opener abre el almacén y arma los motores con los parámetros de lote finales (config + flags).
type Opener func(ctx context.Context, batch config.BatchConfig) (*Runtime, error)

type rootOptions struct {
	cfg        *config.Config
	log        *logger.Logger
	open       Opener
	out        io.Writer
	jsonOutput bool
	updateSize int
	newSize    int
	seed       uint64
}

// NewRootCommand arma el árbol de comandos. out recibe reportes y resúmenes; los logs van por log.
func NewRootCommand(cfg *config.Config, log *logger.Logger, open Opener, out io.Writer) *cobra.Command {
	o := &rootOptions{cfg: cfg, log: log, open: open, out: out}

	root := &cobra.Command{
		Use:   "scd2sim",
		Short: "Simulador de fuente SCD2 para un e-commerce nepalí",
		Long: `scd2sim mantiene un conjunto de datos relacional (clientes, productos, pedidos,
líneas y pagos) y le aplica lotes de cambios plausibles: mutaciones de campos,
transiciones de estado de pedidos y altas nuevas, cada lote en una sola transacción.`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.BoolVar(&o.jsonOutput, "json", false, "Salida en JSON")
	flags.IntVar(&o.updateSize, "update-size", cfg.Batch.UpdateSize, "Registros muestreados por tabla y lote (pedidos: la mitad)")
	flags.IntVar(&o.newSize, "new-size", cfg.Batch.NewRecordsSize, "Clientes nuevos por lote (productos: la mitad)")
	flags.Uint64Var(&o.seed, "seed", cfg.Batch.Seed, "Semilla aleatoria (0 = reloj)")

	root.AddCommand(
		newBatchCommand(o),
		newHistoryCommand(o),
		newSeedCommand(o),
		newSummaryCommand(o),
	)
	return root
}

func (o *rootOptions) runtime(ctx context.Context) (*Runtime, error) {
	return o.open(ctx, config.BatchConfig{
		UpdateSize:     o.updateSize,
		NewRecordsSize: o.newSize,
		Seed:           o.seed,
	})
}
