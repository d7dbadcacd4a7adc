package models

import (
	"fmt"
	"strings"
)

// Account is one of the six financial statement line categories tracked
// in the fact table. Any other value is a data-quality defect and is
// rejected at import time.
type Account string

const (
	AccountRevenue          Account = "Revenue"
	AccountCostOfSales      Account = "Cost of Sales"
	AccountSellingExpenses  Account = "Selling Expenses"
	AccountAdminExpenses    Account = "General & Administrative"
	AccountNonOpIncome      Account = "Non-operating Income"
	AccountNonOpExpenses    Account = "Non-operating Expenses"
)

// AllAccounts lists the closed enumeration in financial statement order.
// This order is used for yearly summary pivots.
var AllAccounts = []Account{
	AccountRevenue,
	AccountCostOfSales,
	AccountSellingExpenses,
	AccountAdminExpenses,
	AccountNonOpIncome,
	AccountNonOpExpenses,
}

// accountAliases maps the source-data spellings (the upstream ledger
// exports use Japanese account names) and lowercase English forms to
// the canonical Account values.
var accountAliases = map[string]Account{
	"売上高":    AccountRevenue,
	"売上原価":   AccountCostOfSales,
	"販売費":    AccountSellingExpenses,
	"一般管理費":  AccountAdminExpenses,
	"営業外収益":  AccountNonOpIncome,
	"営業外費用":  AccountNonOpExpenses,
	"revenue":                   AccountRevenue,
	"cost of sales":             AccountCostOfSales,
	"selling expenses":          AccountSellingExpenses,
	"general & administrative":  AccountAdminExpenses,
	"general and administrative": AccountAdminExpenses,
	"non-operating income":      AccountNonOpIncome,
	"non-operating expenses":    AccountNonOpExpenses,
}

// ParseAccount resolves a raw account name to its canonical Account.
// It accepts canonical names, lowercase English forms and the Japanese
// spellings found in upstream exports.
func ParseAccount(raw string) (Account, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("empty account name")
	}
	if acct, ok := accountAliases[trimmed]; ok {
		return acct, nil
	}
	if acct, ok := accountAliases[strings.ToLower(trimmed)]; ok {
		return acct, nil
	}
	return "", fmt.Errorf("unknown account %q (must be one of the six statement categories)", raw)
}

// Valid reports whether a is one of the six enumerated accounts.
func (a Account) Valid() bool {
	for _, known := range AllAccounts {
		if a == known {
			return true
		}
	}
	return false
}

// String returns the canonical account name.
func (a Account) String() string {
	return string(a)
}
