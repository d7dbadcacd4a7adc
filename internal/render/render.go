// Package render prints aggregation results as aligned text tables for
// terminal use.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"tmori/kessan-cli/internal/query"
)

// FormatInt formats an integer with comma separators.
func FormatInt(n int64) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// formatPct renders a percentage with one decimal and a sign for
// deltas.
func formatPct(d decimal.Decimal, signed bool) string {
	s := d.StringFixed(1) + "%"
	if signed && d.Sign() > 0 {
		s = "+" + s
	}
	return s
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
}

// Trend prints a monthly trend table.
func Trend(w io.Writer, points []query.TrendPoint) {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "YEAR\tMONTH\tTOTAL\t")
	for _, p := range points {
		fmt.Fprintf(tw, "%d\t%d\t%s\t\n", p.Year, p.Month, FormatInt(p.Total))
	}
	tw.Flush()
}

// Composition prints a composition table under the given dimension
// heading (SEGMENT, INDUSTRY or DIVISION).
func Composition(w io.Writer, heading string, rows []query.CompositionRow) {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "%s\tTOTAL\tSHARE\t\n", strings.ToUpper(heading))
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", r.Label, FormatInt(r.Total), formatPct(r.Share, false))
	}
	tw.Flush()
}

// Ranking prints a customer ranking table.
func Ranking(w io.Writer, rows []query.RankingRow) {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "RANK\tCODE\tCUSTOMER\tINDUSTRY\tTOTAL\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			r.Rank, r.CustomerCode, r.CustomerName, r.Industry, FormatInt(r.Total))
	}
	tw.Flush()
}

// TableStats prints the whole-table validation figures.
func TableStats(w io.Writer, t query.TableStats) {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "Records\t%s\t\n", FormatInt(int64(t.Records)))
	fmt.Fprintf(tw, "Years\t%d\t\n", t.Years)
	fmt.Fprintf(tw, "Customers\t%d\t\n", t.Customers)
	fmt.Fprintf(tw, "Departments\t%d\t\n", t.Departments)
	fmt.Fprintf(tw, "Accounts\t%d\t\n", t.Accounts)
	fmt.Fprintf(tw, "Total amount\t%s\t\n", FormatInt(t.TotalAmount))
	tw.Flush()
}

// Stats prints the headline data statistics.
func Stats(w io.Writer, s query.Stats) {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "Rows\t%s\t\n", FormatInt(int64(s.Rows)))
	fmt.Fprintf(tw, "Customers\t%s\t\n", FormatInt(int64(s.Customers)))
	fmt.Fprintf(tw, "Revenue (latest year)\t%s\t\n", FormatInt(s.Total))
	if s.YoY != nil {
		fmt.Fprintf(tw, "YoY\t%s\t\n", formatPct(*s.YoY, true))
	} else {
		fmt.Fprintf(tw, "YoY\t-\t\n")
	}
	tw.Flush()
}

// YearlySummary prints the account-by-year pivot with YoY deltas.
func YearlySummary(w io.Writer, rows []query.YearlyRow) {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "YEAR\tACCOUNT\tTOTAL\tYOY\t")
	for _, r := range rows {
		yoy := "-"
		if r.YoY != nil {
			yoy = formatPct(*r.YoY, true)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", r.Year, r.Account, FormatInt(r.Total), yoy)
	}
	tw.Flush()
}

// OperatingProfit prints the profit rollup per year.
func OperatingProfit(w io.Writer, rows []query.ProfitRow) {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "YEAR\tREVENUE\tGROSS PROFIT\tOPERATING INCOME\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n",
			r.Year, FormatInt(r.Revenue), FormatInt(r.GrossProfit), FormatInt(r.OperatingIncome))
	}
	tw.Flush()
}

// DepartmentMonthly prints per-department monthly totals.
func DepartmentMonthly(w io.Writer, rows []query.DeptMonthlyRow) {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "DEPT\tNAME\tYEAR\tMONTH\tTOTAL\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t\n",
			r.DeptCode, r.DeptName, r.Year, r.Month, FormatInt(r.Total))
	}
	tw.Flush()
}
