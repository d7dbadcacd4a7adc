package query

import (
	"context"

	"tmori/kessan-cli/internal/dataerr"
	"tmori/kessan-cli/internal/models"
)

// DefaultRankingLimit is the number of customers returned when the
// caller does not ask for a specific limit.
const DefaultRankingLimit = 20

// RankingRow is one customer in the ranking, with a
// 1-based rank.
type RankingRow struct {
	Rank         int
	CustomerCode string
	CustomerName string
	Industry     string
	Total        int64
}

// CustomerRanking returns the top customers by summed amount for
// one year and account, grouped by (customer_code, customer_name,
// industry). Equal totals are broken by customer_code ascending so the
// ordering is reproducible. limit <= 0 selects DefaultRankingLimit.
func (s *Service) CustomerRanking(ctx context.Context, year int, account models.Account, limit int) ([]RankingRow, error) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	if account == "" {
		account = models.AccountRevenue
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT customer_code, customer_name, industry, SUM(amount) AS total
		FROM transactions_denormalized
		WHERE account = ? AND year = ?
		GROUP BY customer_code, customer_name, industry
		ORDER BY total DESC, customer_code ASC
		LIMIT ?`, string(account), year, limit)
	if err != nil {
		return nil, &dataerr.StoreError{Operation: "customer ranking", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var result []RankingRow
	for rows.Next() {
		r := RankingRow{Rank: len(result) + 1}
		if err := rows.Scan(&r.CustomerCode, &r.CustomerName, &r.Industry, &r.Total); err != nil {
			return nil, &dataerr.StoreError{Operation: "customer ranking", Err: err}
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
