package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ecommerce-scd2/internal/application/scd2"
	"github.com/jhoicas/ecommerce-scd2/internal/application/seed"
)

func newBatchCommand(o *rootOptions) *cobra.Command {
	var withSummary bool
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Aplica un lote incremental con el instante actual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := o.runtime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			before, err := o.summaryIf(cmd, rt, withSummary)
			if err != nil {
				return err
			}
			report, err := rt.Scheduler.RunIncremental(ctx, rt.Scheduler.Now())
			if err != nil {
				return err
			}
			after, err := o.summaryIf(cmd, rt, withSummary)
			if err != nil {
				return err
			}
			if o.jsonOutput {
				return writeJSON(o.out, batchOutput{Batches: []*scd2.BatchReport{report}, Before: before, After: after})
			}
			printReports(o.out, []*scd2.BatchReport{report})
			printSummaries(o.out, before, after)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withSummary, "summary", true, "Mostrar resumen antes y después")
	return cmd
}

func newHistoryCommand(o *rootOptions) *cobra.Command {
	var (
		batches     int
		days        int
		withSummary bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Aplica N lotes históricos espaciados D días, terminando antes del instante actual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := o.runtime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			before, err := o.summaryIf(cmd, rt, withSummary)
			if err != nil {
				return err
			}
			reports, runErr := rt.Scheduler.RunHistorical(ctx, batches, days)
			after, err := o.summaryIf(cmd, rt, withSummary)
			if err != nil {
				return err
			}
			if o.jsonOutput {
				out := batchOutput{Batches: reports, Before: before, After: after}
				if runErr != nil {
					out.Error = runErr.Error()
				}
				if err := writeJSON(o.out, out); err != nil {
					return err
				}
				return runErr
			}
			printReports(o.out, reports)
			if runErr != nil {
				printFailure(o.out, len(reports), batches, runErr)
				return runErr
			}
			printSummaries(o.out, before, after)
			return nil
		},
	}
	cmd.Flags().IntVarP(&batches, "batches", "n", 5, "Cantidad de lotes")
	cmd.Flags().IntVarP(&days, "days", "d", 7, "Días entre lotes")
	cmd.Flags().BoolVar(&withSummary, "summary", true, "Mostrar resumen antes y después")
	return cmd
}

func newSeedCommand(o *rootOptions) *cobra.Command {
	sizes := seed.DefaultSizes()
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Genera la población inicial (continúa desde los IDs existentes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := o.runtime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			res, err := rt.Seeder.Seed(ctx, sizes, rt.Scheduler.Now())
			if err != nil {
				return err
			}
			if o.jsonOutput {
				return writeJSON(o.out, res)
			}
			printSeed(o.out, res)
			summary, err := scd2.TakeSummary(ctx, rt.Stats)
			if err != nil {
				return err
			}
			printSummaries(o.out, nil, summary)
			return nil
		},
	}
	cmd.Flags().IntVar(&sizes.Customers, "customers", sizes.Customers, "Clientes a generar")
	cmd.Flags().IntVar(&sizes.Products, "products", sizes.Products, "Productos a generar")
	cmd.Flags().IntVar(&sizes.Orders, "orders", sizes.Orders, "Pedidos a generar (con líneas y pagos)")
	return cmd
}

func newSummaryCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Muestra filas por tabla y clientes con actualizaciones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := o.runtime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			summary, err := scd2.TakeSummary(cmd.Context(), rt.Stats)
			if err != nil {
				return err
			}
			if o.jsonOutput {
				return writeJSON(o.out, summary)
			}
			printSummaries(o.out, nil, summary)
			return nil
		},
	}
}

func (o *rootOptions) summaryIf(cmd *cobra.Command, rt *Runtime, enabled bool) (*scd2.Summary, error) {
	if !enabled {
		return nil, nil
	}
	s, err := scd2.TakeSummary(cmd.Context(), rt.Stats)
	if err != nil {
		return nil, fmt.Errorf("resumen: %w", err)
	}
	return s, nil
}
