package query

import (
	"context"
	"sort"

	"tmori/kessan-cli/internal/dataerr"
	"tmori/kessan-cli/internal/models"

	"github.com/shopspring/decimal"
)

// Stats carries the KPI card figures for the current filter: row count,
// distinct customers, grand total and year-over-year change.
type Stats struct {
	Rows      int
	Customers int
	Total     int64
	// YoY is the percentage change of the latest filtered year against
	// the year before it. Nil when the prior year has no data or sums
	// to zero.
	YoY *decimal.Decimal
}

// ComputeStats returns the KPI figures for a filter.
func (s *Service) ComputeStats(ctx context.Context, f models.Filter) (Stats, error) {
	where, args := whereFilter(f)
	var stats Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT customer_code), COALESCE(SUM(amount), 0)
		FROM transactions_denormalized
		WHERE `+where, args...).Scan(&stats.Rows, &stats.Customers, &stats.Total)
	if err != nil {
		return Stats{}, &dataerr.StoreError{Operation: "stats", Err: err}
	}

	latest, err := s.latestYear(ctx, f)
	if err != nil || latest == 0 {
		return stats, err
	}

	current, err := s.yearTotal(ctx, f, latest)
	if err != nil {
		return Stats{}, err
	}
	prior, err := s.yearTotal(ctx, f, latest-1)
	if err != nil {
		return Stats{}, err
	}
	if prior != 0 {
		yoy := decimal.NewFromInt(current).
			Sub(decimal.NewFromInt(prior)).
			Mul(decimal.NewFromInt(100)).
			DivRound(decimal.NewFromInt(prior), 1)
		stats.YoY = &yoy
	}
	return stats, nil
}

// latestYear resolves the most recent year in the filter, falling back
// to the most recent year present in the filtered data.
func (s *Service) latestYear(ctx context.Context, f models.Filter) (int, error) {
	if len(f.Years) > 0 {
		latest := f.Years[0]
		for _, y := range f.Years[1:] {
			if y > latest {
				latest = y
			}
		}
		return latest, nil
	}

	where, args := whereFilter(f)
	var latest int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(year), 0)
		FROM transactions_denormalized
		WHERE `+where, args...).Scan(&latest)
	if err != nil {
		return 0, &dataerr.StoreError{Operation: "stats", Err: err}
	}
	return latest, nil
}

// yearTotal sums the filtered facts for one year, ignoring the filter's
// own year restriction.
func (s *Service) yearTotal(ctx context.Context, f models.Filter, year int) (int64, error) {
	single := f
	single.Years = []int{year}
	where, args := whereFilter(single)
	var total int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions_denormalized
		WHERE `+where, args...).Scan(&total)
	if err != nil {
		return 0, &dataerr.StoreError{Operation: "stats", Err: err}
	}
	return total, nil
}

// TableStats carries the whole-table figures of the validation report,
// unscoped by any filter.
type TableStats struct {
	Records     int
	Years       int
	Customers   int
	Departments int
	Accounts    int
	TotalAmount int64
}

// ComputeTableStats returns counts and the grand total over the entire
// fact table.
func (s *Service) ComputeTableStats(ctx context.Context) (TableStats, error) {
	var t TableStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT year),
		       COUNT(DISTINCT customer_code),
		       COUNT(DISTINCT dept_code),
		       COUNT(DISTINCT account),
		       COALESCE(SUM(amount), 0)
		FROM transactions_denormalized`).
		Scan(&t.Records, &t.Years, &t.Customers, &t.Departments, &t.Accounts, &t.TotalAmount)
	if err != nil {
		return TableStats{}, &dataerr.StoreError{Operation: "table stats", Err: err}
	}
	return t, nil
}

// YearlyRow is one cell of the yearly account pivot.
type YearlyRow struct {
	Year    int
	Account models.Account
	Total   int64
	// YoY is the percentage change against the same account in the
	// previous year; nil for the first year or a zero prior total.
	YoY *decimal.Decimal
}

// YearlySummary returns per-year totals for every account, ordered by
// year ascending and then by the fixed financial statement order, with
// year-over-year percentages attached.
func (s *Service) YearlySummary(ctx context.Context) ([]YearlyRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT year, account, SUM(amount) AS total
		FROM transactions_denormalized
		GROUP BY year, account`)
	if err != nil {
		return nil, &dataerr.StoreError{Operation: "yearly summary", Err: err}
	}
	defer func() { _ = rows.Close() }()

	totals := make(map[int]map[models.Account]int64)
	for rows.Next() {
		var year int
		var account string
		var total int64
		if err := rows.Scan(&year, &account, &total); err != nil {
			return nil, &dataerr.StoreError{Operation: "yearly summary", Err: err}
		}
		if totals[year] == nil {
			totals[year] = make(map[models.Account]int64)
		}
		totals[year][models.Account(account)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)

	var result []YearlyRow
	for _, year := range years {
		for _, account := range models.AllAccounts {
			total, ok := totals[year][account]
			if !ok {
				continue
			}
			row := YearlyRow{Year: year, Account: account, Total: total}
			if prior, ok := totals[year-1][account]; ok && prior != 0 {
				yoy := decimal.NewFromInt(total).
					Sub(decimal.NewFromInt(prior)).
					Mul(decimal.NewFromInt(100)).
					DivRound(decimal.NewFromInt(prior), 1)
				row.YoY = &yoy
			}
			result = append(result, row)
		}
	}
	return result, nil
}

// ProfitRow carries the derived profit figures for one year.
// Gross profit = revenue - cost of sales; operating income = gross
// profit - selling expenses - general/administrative expenses.
type ProfitRow struct {
	Year            int
	Revenue         int64
	CostOfSales     int64
	GrossProfit     int64
	SellingExpenses int64
	AdminExpenses   int64
	OperatingIncome int64
}

// OperatingProfit computes per-year profit rollups for the given years
// (all years when empty), ordered by year ascending.
func (s *Service) OperatingProfit(ctx context.Context, years []int) ([]ProfitRow, error) {
	query := `
		SELECT year, account, SUM(amount) AS total
		FROM transactions_denormalized`
	var args []interface{}
	if len(years) > 0 {
		query += ` WHERE year IN (` + placeholders(len(years)) + `)`
		for _, y := range years {
			args = append(args, y)
		}
	}
	query += ` GROUP BY year, account ORDER BY year`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &dataerr.StoreError{Operation: "operating profit", Err: err}
	}
	defer func() { _ = rows.Close() }()

	byYear := make(map[int]*ProfitRow)
	var order []int
	for rows.Next() {
		var year int
		var account string
		var total int64
		if err := rows.Scan(&year, &account, &total); err != nil {
			return nil, &dataerr.StoreError{Operation: "operating profit", Err: err}
		}
		row, ok := byYear[year]
		if !ok {
			row = &ProfitRow{Year: year}
			byYear[year] = row
			order = append(order, year)
		}
		switch models.Account(account) {
		case models.AccountRevenue:
			row.Revenue = total
		case models.AccountCostOfSales:
			row.CostOfSales = total
		case models.AccountSellingExpenses:
			row.SellingExpenses = total
		case models.AccountAdminExpenses:
			row.AdminExpenses = total
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]ProfitRow, 0, len(order))
	for _, year := range order {
		row := byYear[year]
		row.GrossProfit = row.Revenue - row.CostOfSales
		row.OperatingIncome = row.GrossProfit - row.SellingExpenses - row.AdminExpenses
		result = append(result, *row)
	}
	return result, nil
}

// DeptMonthlyRow is one department's total for one month.
type DeptMonthlyRow struct {
	DeptCode string
	DeptName string
	Year     int
	Month    int
	Total    int64
}

// DepartmentMonthly returns per-department monthly totals within one
// division. deptCodes restricts the departments when non-empty.
func (s *Service) DepartmentMonthly(ctx context.Context, years []int, division string, deptCodes []string, account models.Account) ([]DeptMonthlyRow, error) {
	if account == "" {
		account = models.AccountRevenue
	}

	query := `
		SELECT dept_code, dept_name, year, month, SUM(amount) AS total
		FROM transactions_denormalized
		WHERE account = ? AND division = ?`
	args := []interface{}{string(account), division}
	if len(years) > 0 {
		query += ` AND year IN (` + placeholders(len(years)) + `)`
		for _, y := range years {
			args = append(args, y)
		}
	}
	if len(deptCodes) > 0 {
		query += ` AND dept_code IN (` + placeholders(len(deptCodes)) + `)`
		for _, code := range deptCodes {
			args = append(args, code)
		}
	}
	query += ` GROUP BY dept_code, dept_name, year, month ORDER BY dept_code, year, month`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &dataerr.StoreError{Operation: "department monthly", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var result []DeptMonthlyRow
	for rows.Next() {
		var r DeptMonthlyRow
		if err := rows.Scan(&r.DeptCode, &r.DeptName, &r.Year, &r.Month, &r.Total); err != nil {
			return nil, &dataerr.StoreError{Operation: "department monthly", Err: err}
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
