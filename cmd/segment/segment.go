// Package segment handles the segment composition query command
package segment

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

// Cmd represents the segment command
var Cmd = &cobra.Command{
	Use:   "segment",
	Short: "Composition of one account by segment",
	Long: `Sum one account per segment under the active filter, with each
segment's share of the filtered total. Ordered by total descending.`,
	Run: segmentFunc,
}

func init() {
	common.AddFilterFlags(Cmd)
	common.AddOutputFlag(Cmd)
}

func segmentFunc(cmd *cobra.Command, args []string) {
	filter, err := common.BuildFilter()
	if err != nil {
		root.Log.Fatal(err)
	}

	s := root.OpenStore()
	defer s.Close()

	rows, err := query.New(s).SegmentComposition(context.Background(), filter.Years, filter.Account)
	if err != nil {
		root.Log.Fatalf("Error querying segment composition: %v", err)
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
	render.Composition(os.Stdout, "segment", rows)
}
