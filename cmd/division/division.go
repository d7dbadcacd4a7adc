// Package division handles the division summary and profit commands
package division

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

var (
	profit       bool
	divisionName string
)

// Cmd represents the division command
var Cmd = &cobra.Command{
	Use:   "division",
	Short: "Composition of one account by division",
	Long: `Sum one account per division under the active filter, with each
division's share of the filtered total. With --profit, print the
yearly gross and operating profit rollup instead. With --monthly
DIVISION, print per-department monthly totals within that division.`,
	Run: divisionFunc,
}

func init() {
	common.AddFilterFlags(Cmd)
	common.AddOutputFlag(Cmd)
	Cmd.Flags().BoolVar(&profit, "profit", false, "Print the yearly profit rollup instead")
	Cmd.Flags().StringVar(&divisionName, "monthly", "", "Print monthly totals per department within this division")
}

func divisionFunc(cmd *cobra.Command, args []string) {
	filter, err := common.BuildFilter()
	if err != nil {
		root.Log.Fatal(err)
	}

	s := root.OpenStore()
	defer s.Close()
	svc := query.New(s)
	ctx := context.Background()

	switch {
	case profit:
		rows, err := svc.OperatingProfit(ctx, filter.Years)
		if err != nil {
			root.Log.Fatalf("Error querying operating profit: %v", err)
		}
		if len(rows) == 0 {
			root.Log.Info("No data matches the filter")
			return
		}
		render.OperatingProfit(os.Stdout, rows)

	case divisionName != "":
		rows, err := svc.DepartmentMonthly(ctx, filter.Years, divisionName, nil, filter.Account)
		if err != nil {
			root.Log.Fatalf("Error querying department totals: %v", err)
		}
		if len(rows) == 0 {
			root.Log.Info("No data matches the filter")
			return
		}
		render.DepartmentMonthly(os.Stdout, rows)

	default:
		rows, err := svc.DivisionSummary(ctx, filter.Years, filter.Account)
		if err != nil {
			root.Log.Fatalf("Error querying division composition: %v", err)
		}
		if len(rows) == 0 {
			root.Log.Info("No data matches the filter")
			return
		}
		if out := root.SharedFlags.Output; out != "" {
			if err := exporter.WriteComposition(rows, out); err != nil {
				root.Log.Fatalf("Error exporting composition: %v", err)
			}
			return
		}
		render.Composition(os.Stdout, "division", rows)
	}
}
