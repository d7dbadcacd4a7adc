// Package summary handles the validation / KPI report command
package summary

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tmori/kessan-cli/cmd/root"
	"tmori/kessan-cli/internal/models"
	"tmori/kessan-cli/internal/query"
	"tmori/kessan-cli/internal/render"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a validation report of the loaded data",
	Long: `Print a validation report over the whole store: headline statistics
(row count, customer count, latest-year revenue with YoY), the yearly
account pivot, and the yearly profit rollup.`,
	Run: summaryFunc,
}

func summaryFunc(cmd *cobra.Command, args []string) {
	s := root.OpenStore()
	defer s.Close()
	svc := query.New(s)
	ctx := context.Background()

	table, err := svc.ComputeTableStats(ctx)
	if err != nil {
		root.Log.Fatalf("Error computing table stats: %v", err)
	}
	if table.Records == 0 {
		root.Log.Info("The store is empty; load or seed data first")
		return
	}

	fmt.Println("=== Data statistics ===")
	render.TableStats(os.Stdout, table)

	stats, err := svc.ComputeStats(ctx, models.NewFilter())
	if err != nil {
		root.Log.Fatalf("Error computing revenue stats: %v", err)
	}
	fmt.Println("\n=== Revenue ===")
	render.Stats(os.Stdout, stats)

	yearly, err := svc.YearlySummary(ctx)
	if err != nil {
		root.Log.Fatalf("Error computing yearly summary: %v", err)
	}
	fmt.Println("\n=== Yearly totals by account ===")
	render.YearlySummary(os.Stdout, yearly)

	profit, err := svc.OperatingProfit(ctx, nil)
	if err != nil {
		root.Log.Fatalf("Error computing profit rollup: %v", err)
	}
	fmt.Println("\n=== Profit rollup ===")
	render.OperatingProfit(os.Stdout, profit)
}
