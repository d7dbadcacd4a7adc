// Package load handles importing long-format fact CSVs into the store
package load

import (
	"context"

	"github.com/spf13/cobra"

	"tmori/kessan-cli/cmd/root"
	"tmori/kessan-cli/internal/importer"
	"tmori/kessan-cli/internal/logging"
	"tmori/kessan-cli/internal/store"
)

var (
	inputFile string
	mode      string
	aliasFile string
)

// Cmd represents the load command
var Cmd = &cobra.Command{
	Use:   "load",
	Short: "Load a long-format fact CSV into the store",
	Long: `Load a long-format fact CSV into the SQLite store. Headers may use
the canonical English names or the Japanese ledger-export spellings;
the file encoding (UTF-8, UTF-8 with BOM, Shift_JIS) is detected
automatically. Master tables are rebuilt after the load.`,
	Run: loadFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file (required)")
	Cmd.Flags().StringVarP(&mode, "mode", "m", "append", "Load mode: append or replace")
	Cmd.Flags().StringVar(&aliasFile, "aliases", "", "YAML file with extra header aliases")
	Cmd.MarkFlagRequired("input")
}

func loadFunc(cmd *cobra.Command, args []string) {
	loadMode, err := store.ParseLoadMode(mode)
	if err != nil {
		root.Log.Fatal(err)
	}

	s := root.OpenStore()
	defer s.Close()

	imp := importer.New(s, logging.NewLogrusAdapterFromLogger(root.Log))
	if aliasFile == "" {
		aliasFile = root.Cfg.Import.AliasFile
	}
	if aliasFile != "" {
		if err := imp.UseAliasFile(aliasFile); err != nil {
			root.Log.Fatalf("Error loading alias file: %v", err)
		}
	}

	result, err := imp.ImportCSV(context.Background(), inputFile, loadMode)
	if err != nil {
		root.Log.Fatalf("Error importing CSV: %v", err)
	}

	for _, w := range result.Warnings {
		root.Log.Warn(w)
	}
	root.Log.Infof("Loaded %d rows from %s (%s, %d skipped)",
		result.Inserted, inputFile, result.Encoding, result.Skipped)
}
