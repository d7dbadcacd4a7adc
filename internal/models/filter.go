package models

// Filter is the filter-state holder shared by the query and export
// layers. A nil or empty slice means "no restriction" for that
// dimension; the account always has a value and defaults to revenue.
type Filter struct {
	Years    []int
	Segments []string
	Account  Account
}

// NewFilter returns a filter with the default account (revenue) and no
// dimension restrictions.
func NewFilter() Filter {
	return Filter{Account: AccountRevenue}
}

// WithYears returns a copy of the filter restricted to the given years.
func (f Filter) WithYears(years ...int) Filter {
	f.Years = years
	return f
}

// WithSegments returns a copy of the filter restricted to the given segments.
func (f Filter) WithSegments(segments ...string) Filter {
	f.Segments = segments
	return f
}

// WithAccount returns a copy of the filter for the given account.
func (f Filter) WithAccount(account Account) Filter {
	f.Account = account
	return f
}
