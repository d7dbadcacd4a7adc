package store

import (
	"context"
	"database/sql"

	"tmori/kessan-cli/internal/dataerr"
)

// Dimension queries feed the filter surface: each returns the distinct
// values present in the fact table, ordered ascending.

// Years returns the fiscal years present in the store.
func (s *Store) Years(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT year FROM transactions_denormalized ORDER BY year`)
	if err != nil {
		return nil, &dataerr.StoreError{Operation: "list years", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, &dataerr.StoreError{Operation: "list years", Err: err}
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// Segments returns the distinct segment names.
func (s *Store) Segments(ctx context.Context) ([]string, error) {
	return s.distinctText(ctx, "list segments",
		`SELECT DISTINCT segment FROM transactions_denormalized ORDER BY segment`)
}

// Divisions returns the distinct division names.
func (s *Store) Divisions(ctx context.Context) ([]string, error) {
	return s.distinctText(ctx, "list divisions",
		`SELECT DISTINCT division FROM transactions_denormalized ORDER BY division`)
}

// Accounts returns the distinct account names present in the data.
func (s *Store) Accounts(ctx context.Context) ([]string, error) {
	return s.distinctText(ctx, "list accounts",
		`SELECT DISTINCT account FROM transactions_denormalized ORDER BY account`)
}

// Industries returns the distinct customer industries.
func (s *Store) Industries(ctx context.Context) ([]string, error) {
	return s.distinctText(ctx, "list industries",
		`SELECT DISTINCT industry FROM transactions_denormalized ORDER BY industry`)
}

// Department pairs a department code with its display name.
type Department struct {
	Code string
	Name string
}

// DepartmentsByDivision returns the departments under a division,
// ordered by code.
func (s *Store) DepartmentsByDivision(ctx context.Context, division string) ([]Department, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT dept_code, dept_name
		 FROM transactions_denormalized
		 WHERE division = ?
		 ORDER BY dept_code`, division)
	if err != nil {
		return nil, &dataerr.StoreError{Operation: "list departments", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var depts []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.Code, &d.Name); err != nil {
			return nil, &dataerr.StoreError{Operation: "list departments", Err: err}
		}
		depts = append(depts, d)
	}
	return depts, rows.Err()
}

func (s *Store) distinctText(ctx context.Context, op, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &dataerr.StoreError{Operation: op, Err: err}
	}
	defer func() { _ = rows.Close() }()

	return scanStrings(rows, op)
}

func scanStrings(rows *sql.Rows, op string) ([]string, error) {
	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, &dataerr.StoreError{Operation: op, Err: err}
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
