// Package common holds helpers shared by the query subcommands: filter
// flag parsing and the render-or-export output step.
package common

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tmori/kessan-cli/cmd/root"
	"tmori/kessan-cli/internal/models"
)

// AddFilterFlags registers the query filter flags shared by trend,
// segment, industry, division and export.
func AddFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&yearsFlag, "years", nil, "Fiscal years to include (e.g. 2022,2023); all when empty")
	cmd.Flags().StringSliceVar(&root.SharedFlags.Segments, "segments", nil, "Segments to include; all when empty")
	cmd.Flags().StringVarP(&root.SharedFlags.Account, "account", "a", "", "Account to aggregate (default revenue)")
}

// AddOutputFlag registers -o for commands that can export their result
// as CSV instead of printing a table.
func AddOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&root.SharedFlags.Output, "output", "o", "", "Write result to a CSV file instead of stdout")
}

var yearsFlag []string

// BuildFilter resolves the shared flags into a query filter.
func BuildFilter() (models.Filter, error) {
	f := models.NewFilter()

	years, err := ParseYears(yearsFlag)
	if err != nil {
		return f, err
	}
	f = f.WithYears(years...).WithSegments(root.SharedFlags.Segments...)

	if root.SharedFlags.Account != "" {
		account, err := models.ParseAccount(root.SharedFlags.Account)
		if err != nil {
			return f, err
		}
		f = f.WithAccount(account)
	}
	return f, nil
}

// ParseYears converts a repeated/comma-separated year flag into ints.
func ParseYears(raw []string) ([]int, error) {
	var years []int
	for _, part := range raw {
		for _, s := range strings.Split(part, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			y, err := strconv.Atoi(s)
			if err != nil {
				return nil, err
			}
			years = append(years, y)
		}
	}
	return years, nil
}

// ResetFlags clears the shared flag state between test invocations.
func ResetFlags() {
	yearsFlag = nil
	root.SharedFlags = root.CommonFlags{}
}
