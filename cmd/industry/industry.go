// Package industry handles the industry composition query command
package industry

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

// Cmd represents the industry command
var Cmd = &cobra.Command{
	Use:   "industry",
	Short: "Composition of one account by customer industry",
	Long: `Sum one account per customer industry under the active filter, with
each industry's share of the filtered total. Ordered by total
descending.`,
	Run: industryFunc,
}

func init() {
	common.AddFilterFlags(Cmd)
	common.AddOutputFlag(Cmd)
}

func industryFunc(cmd *cobra.Command, args []string) {
	filter, err := common.BuildFilter()
	if err != nil {
		root.Log.Fatal(err)
	}

	s := root.OpenStore()
	defer s.Close()

	rows, err := query.New(s).IndustrySummary(context.Background(), filter.Years, filter.Account)
	if err != nil {
		root.Log.Fatalf("Error querying industry composition: %v", err)
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
	render.Composition(os.Stdout, "industry", rows)
}
