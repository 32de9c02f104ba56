package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	jsoniter "github.com/json-iterator/go"

	"github.com/jhoicas/ecommerce-scd2/internal/application/scd2"
	"github.com/jhoicas/ecommerce-scd2/internal/application/seed"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	labelStyle   = lipgloss.NewStyle().Width(22)
	numberStyle  = lipgloss.NewStyle().Width(12).Align(lipgloss.Right)
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type batchOutput struct {
	Batches []*scd2.BatchReport `json:"batches"`
	Before  *scd2.Summary       `json:"before,omitempty"`
	After   *scd2.Summary       `json:"after,omitempty"`
	Error   string              `json:"error,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := jsonAPI.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(title))
}

func row(w io.Writer, label string, values ...string) {
	line := labelStyle.Render(label)
	for _, v := range values {
		line += numberStyle.Render(v)
	}
	fmt.Fprintln(w, line)
}

func printReports(w io.Writer, reports []*scd2.BatchReport) {
	for i, r := range reports {
		section(w, fmt.Sprintf("Lote %d/%d  %s", i+1, len(reports), r.Timestamp.Format(time.RFC3339)))
		fmt.Fprintln(w, mutedStyle.Render(r.ID.String()))
		row(w, "clientes actualizados", fmt.Sprint(r.CustomersUpdated))
		row(w, "productos actualizados", fmt.Sprint(r.ProductsUpdated))
		row(w, "pedidos en transición", fmt.Sprint(r.OrdersTransitioned))
		row(w, "clientes nuevos", fmt.Sprint(r.CustomersAdded))
		row(w, "productos nuevos", fmt.Sprint(r.ProductsAdded))
		fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("✓ %d registros", r.Total())))
	}
}

func printFailure(w io.Writer, done, requested int, err error) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("✗ lote %d de %d falló; no se ejecutan los siguientes", done+1, requested)))
	fmt.Fprintln(w, mutedStyle.Render(err.Error()))
}

// printSummaries imprime el resumen; con before != nil agrega columnas antes/después.
func printSummaries(w io.Writer, before, after *scd2.Summary) {
	if after == nil {
		return
	}
	section(w, "Resumen del almacén")
	if before == nil {
		for _, t := range after.Tables {
			row(w, t.Table, fmt.Sprintf("%d", t.Rows))
		}
		row(w, "clientes con cambios", fmt.Sprintf("%d", after.UpdatedCustomers))
		return
	}
	row(w, "", mutedStyle.Render("antes"), mutedStyle.Render("después"))
	for _, t := range after.Tables {
		row(w, t.Table, fmt.Sprintf("%d", before.Rows(t.Table)), fmt.Sprintf("%d", t.Rows))
	}
	row(w, "clientes con cambios", fmt.Sprintf("%d", before.UpdatedCustomers), fmt.Sprintf("%d", after.UpdatedCustomers))
}

func printSeed(w io.Writer, res *seed.Result) {
	section(w, "Población inicial")
	row(w, "clientes", fmt.Sprint(res.Customers))
	row(w, "productos", fmt.Sprint(res.Products))
	row(w, "pedidos", fmt.Sprint(res.Orders))
	row(w, "líneas de pedido", fmt.Sprint(res.OrderItems))
	row(w, "pagos", fmt.Sprint(res.Payments))
}
