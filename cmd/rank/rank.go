// Package rank handles the customer ranking query command
package rank

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tmori/kessan-cli/cmd/root"
	"tmori/kessan-cli/internal/exporter"
	"tmori/kessan-cli/internal/models"
	"tmori/kessan-cli/internal/query"
	"tmori/kessan-cli/internal/render"
)

var (
	year       int
	account    string
	limit      int
	outputFile string
)

// Cmd represents the rank command
var Cmd = &cobra.Command{
	Use:   "rank",
	Short: "Top customers by one account within a year",
	Long: `Rank customers by the total of one account within a single fiscal
year, descending. Ties are broken by customer code so the ranking is
deterministic. Defaults to revenue and the configured limit.`,
	Run: rankFunc,
}

func init() {
	Cmd.Flags().IntVarP(&year, "year", "y", 0, "Fiscal year (required)")
	Cmd.Flags().StringVarP(&account, "account", "a", "", "Account to rank by (default revenue)")
	Cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Number of customers to return (default from config)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write result to a CSV file instead of stdout")
	Cmd.MarkFlagRequired("year")
}

func rankFunc(cmd *cobra.Command, args []string) {
	acct := models.AccountRevenue
	if account != "" {
		parsed, err := models.ParseAccount(account)
		if err != nil {
			root.Log.Fatal(err)
		}
		acct = parsed
	}
	if limit == 0 {
		limit = root.Cfg.Ranking.DefaultLimit
	}

	s := root.OpenStore()
	defer s.Close()

	rows, err := query.New(s).CustomerRanking(context.Background(), year, acct, limit)
	if err != nil {
		root.Log.Fatalf("Error querying ranking: %v", err)
	}

	if len(rows) == 0 {
		root.Log.Info("No data matches the filter")
		return
	}
	if outputFile != "" {
		if err := exporter.WriteRanking(rows, outputFile); err != nil {
			root.Log.Fatalf("Error exporting ranking: %v", err)
		}
		return
	}
	render.Ranking(os.Stdout, rows)
}
