// Package export handles the detail-row CSV export command
package export

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tmori/kessan-cli/cmd/common"
	"tmori/kessan-cli/cmd/root"
	"tmori/kessan-cli/internal/exporter"
	"tmori/kessan-cli/internal/query"
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered fact rows to CSV",
	Long: `Export the raw fact rows matching the active filter as a long-format
CSV with a UTF-8 BOM. The output round-trips through the load command
unchanged.`,
	Run: exportFunc,
}

func init() {
	common.AddFilterFlags(Cmd)
	common.AddOutputFlag(Cmd)
}

func exportFunc(cmd *cobra.Command, args []string) {
	filter, err := common.BuildFilter()
	if err != nil {
		root.Log.Fatal(err)
	}

	s := root.OpenStore()
	defer s.Close()

	rows, err := query.New(s).DetailRows(context.Background(), filter)
	if err != nil {
		root.Log.Fatalf("Error querying detail rows: %v", err)
	}

	out := root.SharedFlags.Output
	if out == "" {
		out = exporter.DefaultFilename("export")
	}
	switch err := exporter.WriteDetail(rows, out); {
	case errors.Is(err, exporter.ErrNoRows):
		root.Log.Info("No data matches the filter")
	case err != nil:
		root.Log.Fatalf("Error exporting detail rows: %v", err)
	default:
		root.Log.Infof("Exported %d rows to %s", len(rows), out)
	}
}
