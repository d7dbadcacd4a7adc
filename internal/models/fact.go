// Package models defines the denormalized fact row, the account
// enumeration and the filter state shared by the store, importer,
// query and export layers.
package models

import "fmt"

// FactRow is one observation of a monetary amount for a given fiscal
// period, organizational unit, customer and account. The fact table
// is an immutable, append-only load target; SUM over amount is the only
// reducer applied to it.
type FactRow struct {
	Year         int     `csv:"year"`
	Month        int     `csv:"month"`
	Segment      string  `csv:"segment"`
	Division     string  `csv:"division"`
	DeptCode     string  `csv:"dept_code"`
	DeptName     string  `csv:"dept_name"`
	CustomerCode string  `csv:"customer_code"`
	CustomerName string  `csv:"customer_name"`
	Industry     string  `csv:"industry"`
	Account      Account `csv:"account"`
	Amount       int64   `csv:"amount"`
}

// Validate checks the row invariants: month bounded to 1-12 and account
// drawn from the closed enumeration. Year bounds are data-dependent and
// left to the caller.
func (r FactRow) Validate() error {
	if r.Month < 1 || r.Month > 12 {
		return fmt.Errorf("month %d out of range 1-12", r.Month)
	}
	if !r.Account.Valid() {
		return fmt.Errorf("unknown account %q", r.Account)
	}
	return nil
}
