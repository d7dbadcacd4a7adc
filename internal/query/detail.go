package query

import (
	"context"

	"tmori/kessan-cli/internal/dataerr"
	"tmori/kessan-cli/internal/models"
)

// DetailRows returns the raw filtered fact rows, ordered by year,
// month, segment and customer name — the "visible table" the export
// surface dumps to CSV.
func (s *Service) DetailRows(ctx context.Context, f models.Filter) ([]models.FactRow, error) {
	where, args := whereFilter(f)
	rows, err := s.db.QueryContext(ctx, `
		SELECT year, month, segment, division, dept_code, dept_name,
		       customer_code, customer_name, industry, account, amount
		FROM transactions_denormalized
		WHERE `+where+`
		ORDER BY year, month, segment, customer_name`, args...)
	if err != nil {
		return nil, &dataerr.StoreError{Operation: "detail rows", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var result []models.FactRow
	for rows.Next() {
		var r models.FactRow
		var account string
		if err := rows.Scan(&r.Year, &r.Month, &r.Segment, &r.Division,
			&r.DeptCode, &r.DeptName, &r.CustomerCode, &r.CustomerName,
			&r.Industry, &account, &r.Amount); err != nil {
			return nil, &dataerr.StoreError{Operation: "detail rows", Err: err}
		}
		r.Account = models.Account(account)
		result = append(result, r)
	}
	return result, rows.Err()
}
