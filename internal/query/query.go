// Package query implements the aggregation contract over the fact
// table: parameterized, read-only SUM aggregations grouped by period,
// segment, division, industry, department or customer.
package query

import (
	"database/sql"
	"strings"

	"tmori/kessan-cli/internal/config"
	"tmori/kessan-cli/internal/models"
	"tmori/kessan-cli/internal/store"

	"github.com/sirupsen/logrus"
)

var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Service runs aggregation queries against an opened store. All methods
// are read-only; re-running any of them with identical filters over
// unchanged data yields identical results.
type Service struct {
	db *sql.DB
}

// New creates a query service over the given store.
func New(s *store.Store) *Service {
	return &Service{db: s.DB()}
}

// whereFilter builds the WHERE clause fragment and argument list for a
// filter. An empty year or segment list means no restriction on that
// dimension. The account is always constrained; it defaults to revenue
// when unset.
func whereFilter(f models.Filter) (string, []interface{}) {
	account := f.Account
	if account == "" {
		account = models.AccountRevenue
	}

	clauses := []string{"account = ?"}
	args := []interface{}{string(account)}

	if len(f.Years) > 0 {
		clauses = append(clauses, "year IN ("+placeholders(len(f.Years))+")")
		for _, y := range f.Years {
			args = append(args, y)
		}
	}
	if len(f.Segments) > 0 {
		clauses = append(clauses, "segment IN ("+placeholders(len(f.Segments))+")")
		for _, seg := range f.Segments {
			args = append(args, seg)
		}
	}

	return strings.Join(clauses, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
