// Package transform handles the wide-to-long conversion command
package transform

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"tmori/kessan-cli/cmd/root"
	"tmori/kessan-cli/internal/exporter"
	"tmori/kessan-cli/internal/importer"
	"tmori/kessan-cli/internal/logging"
	"tmori/kessan-cli/internal/models"
	"tmori/kessan-cli/internal/store"
	"tmori/kessan-cli/internal/transform"
)

var (
	input      string
	outputFile string
	year       int
	loadDirect bool
	mode       string
	aliasFile  string
)

// Cmd represents the transform command
var Cmd = &cobra.Command{
	Use:   "transform",
	Short: "Melt wide fiscal-year CSVs into the long fact format",
	Long: `Melt wide-format fiscal-year exports (one column per month, 1月..12月)
into the canonical long format: one row per month. The input may be a
single file or a directory of CSV files. The per-row total column is
dropped and recomputed downstream; the sort-order helper column is
ignored. Use --load to insert the result straight into the store
instead of writing a CSV.`,
	Run: transformFunc,
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Input wide CSV file or directory (required)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output long CSV file (default transform_YYYYMMDD.csv)")
	Cmd.Flags().IntVar(&year, "year", 0, "Fiscal year for files without a year column")
	Cmd.Flags().BoolVar(&loadDirect, "load", false, "Insert melted rows into the store instead of writing a CSV")
	Cmd.Flags().StringVarP(&mode, "mode", "m", "append", "Load mode with --load: append or replace")
	Cmd.Flags().StringVar(&aliasFile, "aliases", "", "YAML file with extra header aliases")
	Cmd.MarkFlagRequired("input")
}

func transformFunc(cmd *cobra.Command, args []string) {
	var aliases map[string]string
	if aliasFile == "" {
		aliasFile = root.Cfg.Import.AliasFile
	}
	if aliasFile != "" {
		var err error
		aliases, err = importer.LoadAliasFile(aliasFile)
		if err != nil {
			root.Log.Fatalf("Error loading alias file: %v", err)
		}
	}

	files, err := collectInputs(input)
	if err != nil {
		root.Log.Fatalf("Error reading input: %v", err)
	}
	if len(files) == 0 {
		root.Log.Fatalf("No CSV files found under %s", input)
	}

	melter := transform.New(logging.NewLogrusAdapterFromLogger(root.Log), aliases)
	var rows []models.FactRow
	for _, file := range files {
		melted, warnings, err := melter.MeltFile(file, year)
		if err != nil {
			root.Log.Fatalf("Error melting %s: %v", file, err)
		}
		for _, w := range warnings {
			root.Log.Warn(w)
		}
		rows = append(rows, melted...)
	}

	if len(rows) == 0 {
		root.Log.Fatal("No rows produced; check the input files and warnings above")
	}

	if loadDirect {
		loadRows(rows)
		return
	}

	if outputFile == "" {
		outputFile = exporter.DefaultFilename("transform")
	}
	if err := exporter.WriteDetail(rows, outputFile); err != nil {
		root.Log.Fatalf("Error writing long CSV: %v", err)
	}
	root.Log.Infof("Wrote %d long rows to %s", len(rows), outputFile)
}

func loadRows(rows []models.FactRow) {
	loadMode, err := store.ParseLoadMode(mode)
	if err != nil {
		root.Log.Fatal(err)
	}

	s := root.OpenStore()
	defer s.Close()

	inserted, err := s.InsertFacts(context.Background(), rows, loadMode)
	if err != nil {
		root.Log.Fatalf("Error loading rows: %v", err)
	}
	root.Log.Infof("Loaded %d rows into %s", inserted, s.Path())
}

// collectInputs expands a directory argument into its CSV files, sorted
// for a stable load order.
func collectInputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
