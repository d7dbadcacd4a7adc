package importer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RequiredColumns is the canonical column set of the long-format fact
// CSV. Every column must be present (under any known alias) for an
// import to proceed.
var RequiredColumns = []string{
	"year", "month", "segment", "division", "dept_code", "dept_name",
	"customer_code", "customer_name", "industry", "account", "amount",
}

// builtinAliases maps source header spellings to canonical column
// names. The upstream ledger exports carry Japanese headers; English
// headers map onto themselves case-insensitively.
var builtinAliases = map[string]string{
	"年度":    "year",
	"年":     "year",
	"月":     "month",
	"セグメント": "segment",
	"開示セグメント名称": "segment",
	"事業部":   "division",
	"事業部名称": "division",
	"部門コード": "dept_code",
	"部門名":   "dept_name",
	"部門名称":  "dept_name",
	"取引先コード": "customer_code",
	"取引先名":   "customer_name",
	"取引先名称":  "customer_name",
	"業種":     "industry",
	"WITC業種名①": "industry",
	"科目":   "account",
	"科目名":  "account",
	"科目名称": "account",
	"金額":   "amount",
}

// LoadAliasFile reads extra header aliases from a YAML file holding a
// flat map of alias -> canonical column name. Unknown canonical targets
// are rejected so a typo cannot silently divert a column.
func LoadAliasFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading alias file: %w", err)
	}

	var aliases map[string]string
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("error parsing alias file: %w", err)
	}

	canonical := make(map[string]bool, len(RequiredColumns))
	for _, col := range RequiredColumns {
		canonical[col] = true
	}
	for alias, target := range aliases {
		if !canonical[target] {
			return nil, fmt.Errorf("alias %q maps to unknown column %q", alias, target)
		}
	}
	return aliases, nil
}

// CanonicalColumn resolves one raw header cell to its canonical column
// name, or "" when it is not recognized. extra aliases take precedence
// over the built-in table. The transform layer shares this resolution
// for the non-month columns of wide files.
func CanonicalColumn(raw string, extra map[string]string) string {
	header := strings.TrimSpace(raw)
	// Strip a UTF-8 BOM that survived decoding on the first cell.
	header = strings.TrimPrefix(header, "\uFEFF")

	if target, ok := extra[header]; ok {
		return target
	}
	if target, ok := builtinAliases[header]; ok {
		return target
	}

	lower := strings.ToLower(header)
	for _, col := range RequiredColumns {
		if lower == col {
			return col
		}
	}
	return ""
}

// columnIndex maps canonical column names to their positions in the
// header row, and reports which required columns are missing.
func columnIndex(header []string, extra map[string]string) (map[string]int, []string) {
	index := make(map[string]int, len(RequiredColumns))
	for i, raw := range header {
		if col := CanonicalColumn(raw, extra); col != "" {
			if _, seen := index[col]; !seen {
				index[col] = i
			}
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return index, missing
}
