// Package seed handles the sample-data generation command
package seed

import (
	"context"

	"github.com/spf13/cobra"

	"tmori/kessan-cli/cmd/common"
	"tmori/kessan-cli/cmd/root"
	"tmori/kessan-cli/internal/exporter"
	"tmori/kessan-cli/internal/seed"
	"tmori/kessan-cli/internal/store"
)

var (
	yearsFlag  []string
	seedValue  int64
	outputFile string
)

// Cmd represents the seed command
var Cmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate deterministic sample data",
	Long: `Generate deterministic sample accounting data and load it into the
store (replace mode). The same --seed always regenerates identical
data. Use -o to write a long CSV instead of loading the store.`,
	Run: seedFunc,
}

func init() {
	Cmd.Flags().StringSliceVar(&yearsFlag, "years", nil, "Fiscal years to generate (default 2022,2023,2024)")
	Cmd.Flags().Int64Var(&seedValue, "seed", seed.DefaultSeed, "Random seed")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write a long CSV instead of loading the store")
}

func seedFunc(cmd *cobra.Command, args []string) {
	years, err := common.ParseYears(yearsFlag)
	if err != nil {
		root.Log.Fatalf("Error parsing years: %v", err)
	}

	rows := seed.Generate(years, seedValue)

	if outputFile != "" {
		if err := exporter.WriteDetail(rows, outputFile); err != nil {
			root.Log.Fatalf("Error writing sample CSV: %v", err)
		}
		root.Log.Infof("Wrote %d sample rows to %s", len(rows), outputFile)
		return
	}

	s := root.OpenStore()
	defer s.Close()

	inserted, err := s.InsertFacts(context.Background(), rows, store.ModeReplace)
	if err != nil {
		root.Log.Fatalf("Error loading sample data: %v", err)
	}
	root.Log.Infof("Seeded %d rows into %s", inserted, s.Path())
}
