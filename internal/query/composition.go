package query

import (
	"context"

	"tmori/kessan-cli/internal/dataerr"
	"tmori/kessan-cli/internal/models"

	"github.com/shopspring/decimal"
)

// CompositionRow is one slice of a composition aggregation: a dimension
// value, its summed amount, and its share of the grand total in percent.
type CompositionRow struct {
	Label string
	Total int64
	Share decimal.Decimal
}

// SegmentComposition returns per-segment totals for the given years and
// account. Rows are ordered by total descending; the share column is
// each segment's percentage of the grand total, rounded to one decimal.
func (s *Service) SegmentComposition(ctx context.Context, years []int, account models.Account) ([]CompositionRow, error) {
	f := models.Filter{Years: years, Account: account}
	return s.composition(ctx, "segment composition", "segment", f)
}

// IndustrySummary returns per-industry totals for the given years and
// account, ordered by total descending.
func (s *Service) IndustrySummary(ctx context.Context, years []int, account models.Account) ([]CompositionRow, error) {
	f := models.Filter{Years: years, Account: account}
	return s.composition(ctx, "industry summary", "industry", f)
}

// DivisionSummary returns per-division totals for the given years and
// account, ordered by total descending.
func (s *Service) DivisionSummary(ctx context.Context, years []int, account models.Account) ([]CompositionRow, error) {
	f := models.Filter{Years: years, Account: account}
	return s.composition(ctx, "division summary", "division", f)
}

// composition groups the filtered facts by one text dimension.
// The dimension name comes from a fixed caller-supplied identifier,
// never from user input.
func (s *Service) composition(ctx context.Context, op, dimension string, f models.Filter) ([]CompositionRow, error) {
	where, args := whereFilter(f)
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+dimension+`, SUM(amount) AS total
		FROM transactions_denormalized
		WHERE `+where+`
		GROUP BY `+dimension+`
		ORDER BY total DESC, `+dimension+` ASC`, args...)
	if err != nil {
		return nil, &dataerr.StoreError{Operation: op, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var result []CompositionRow
	var grand int64
	for rows.Next() {
		var r CompositionRow
		if err := rows.Scan(&r.Label, &r.Total); err != nil {
			return nil, &dataerr.StoreError{Operation: op, Err: err}
		}
		grand += r.Total
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if grand != 0 {
		grandDec := decimal.NewFromInt(grand)
		hundred := decimal.NewFromInt(100)
		for i := range result {
			result[i].Share = decimal.NewFromInt(result[i].Total).
				Mul(hundred).DivRound(grandDec, 1)
		}
	}
	return result, nil
}
