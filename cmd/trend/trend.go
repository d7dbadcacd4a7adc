// Package trend handles the monthly trend query command
package trend

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tmori/kessan-cli/cmd/common"
	"tmori/kessan-cli/cmd/root"
	"tmori/kessan-cli/internal/exporter"
	"tmori/kessan-cli/internal/query"
	"tmori/kessan-cli/internal/render"
)

// Cmd represents the trend command
var Cmd = &cobra.Command{
	Use:   "trend",
	Short: "Monthly totals for one account",
	Long: `Sum one account by (year, month) under the active filter and print
the series in chronological order. Months with no matching rows are
omitted. Defaults to revenue across all years and segments.`,
	Run: trendFunc,
}

func init() {
	common.AddFilterFlags(Cmd)
	common.AddOutputFlag(Cmd)
}

func trendFunc(cmd *cobra.Command, args []string) {
	filter, err := common.BuildFilter()
	if err != nil {
		root.Log.Fatal(err)
	}

	s := root.OpenStore()
	defer s.Close()

	points, err := query.New(s).MonthlyTrend(context.Background(), filter)
	if err != nil {
		root.Log.Fatalf("Error querying trend: %v", err)
	}

	if len(points) == 0 {
		root.Log.Info("No data matches the filter")
		return
	}
	if out := root.SharedFlags.Output; out != "" {
		if err := exporter.WriteTrend(points, out); err != nil {
			root.Log.Fatalf("Error exporting trend: %v", err)
		}
		return
	}
	render.Trend(os.Stdout, points)
}
