package query

import (
	"context"

	"tmori/kessan-cli/internal/dataerr"
	"tmori/kessan-cli/internal/models"
)

// TrendPoint is one (year, month, total) observation of the monthly
// trend aggregation.
type TrendPoint struct {
	Year  int
	Month int
	Total int64
}

// MonthlyTrend returns per-month totals for the filtered facts, grouped
// by (year, month) and ordered ascending by year then month. Months
// with no matching rows are absent from the result; consumers that need
// a dense time axis must fill gaps themselves.
func (s *Service) MonthlyTrend(ctx context.Context, f models.Filter) ([]TrendPoint, error) {
	where, args := whereFilter(f)
	rows, err := s.db.QueryContext(ctx, `
		SELECT year, month, SUM(amount) AS total
		FROM transactions_denormalized
		WHERE `+where+`
		GROUP BY year, month
		ORDER BY year, month`, args...)
	if err != nil {
		return nil, &dataerr.StoreError{Operation: "monthly trend", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var points []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Year, &p.Month, &p.Total); err != nil {
			return nil, &dataerr.StoreError{Operation: "monthly trend", Err: err}
		}
		points = append(points, p)
	}
	log.WithField("points", len(points)).Debug("Computed monthly trend")
	return points, rows.Err()
}
