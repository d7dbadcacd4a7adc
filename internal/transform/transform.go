// Package transform converts the upstream wide-format fiscal-year
// exports (one row per department/customer/account with a column per
// month) into the canonical long-format fact rows.
package transform

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"tmori/kessan-cli/internal/dataerr"
	"tmori/kessan-cli/internal/fileutil"
	"tmori/kessan-cli/internal/importer"
	"tmori/kessan-cli/internal/logging"
	"tmori/kessan-cli/internal/models"
)

// ignoredColumns are wide-format helper columns with no long-format
// counterpart: the per-row total is recomputed from the months, and the
// sort-order hint only matters to the source spreadsheet.
var ignoredColumns = map[string]bool{
	"合計":         true,
	"total":      true,
	"昇順":         true,
	"sort_order": true,
}

// dimensionColumns are the wide-format identity columns; every one
// except year must be present.
var dimensionColumns = []string{
	"year", "segment", "division", "dept_code", "dept_name",
	"customer_code", "customer_name", "industry", "account",
}

// Melter converts wide files into fact rows.
type Melter struct {
	log     logging.Logger
	aliases map[string]string
}

// New creates a Melter. extra header aliases may be nil.
func New(log logging.Logger, aliases map[string]string) *Melter {
	return &Melter{log: log, aliases: aliases}
}

// MeltFile reads one wide-format CSV and emits long-format fact rows:
// one row per (identity, month) cell. year overrides or supplies the
// fiscal year when the file carries no year column; pass 0 to require
// the column. Cells that fail to parse are skipped and reported in the
// returned warnings.
func (m *Melter) MeltFile(path string, year int) ([]models.FactRow, []string, error) {
	data, encoding, err := fileutil.DecodeFile(path)
	if err != nil {
		return nil, nil, &dataerr.ValidationError{File: path, Reason: err.Error()}
	}
	m.log.Debug("Reading wide file",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldEncoding, encoding))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, &dataerr.ValidationError{File: path, Reason: fmt.Sprintf("CSV parse error: %v", err)}
	}
	if len(records) < 2 {
		return nil, nil, &dataerr.ValidationError{File: path, Reason: "no data rows"}
	}

	dims, months, err := classifyHeader(records[0], m.aliases, path)
	if err != nil {
		return nil, nil, err
	}
	if _, hasYear := dims["year"]; !hasYear && year == 0 {
		return nil, nil, &dataerr.ValidationError{
			File:   path,
			Reason: "no year column and no explicit year given",
		}
	}

	var rows []models.FactRow
	var warnings []string
	for i, record := range records[1:] {
		line := i + 2
		melted, rowWarnings := m.meltRecord(record, dims, months, year, path, line)
		rows = append(rows, melted...)
		warnings = append(warnings, rowWarnings...)
	}

	m.log.Info("Melted wide file",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(rows)))
	return rows, warnings, nil
}

// classifyHeader splits the header into dimension columns and month
// columns. Month headers are accepted as "1月".."12月" or bare "1".."12".
func classifyHeader(header []string, aliases map[string]string, path string) (map[string]int, map[int]int, error) {
	dims := make(map[string]int)
	months := make(map[int]int)

	for i, raw := range header {
		cell := strings.TrimSpace(strings.TrimPrefix(raw, "\uFEFF"))
		if month, ok := parseMonthHeader(cell); ok {
			months[month] = i
			continue
		}
		if ignoredColumns[cell] || ignoredColumns[strings.ToLower(cell)] {
			continue
		}
		if col := importer.CanonicalColumn(cell, aliases); col != "" {
			if _, seen := dims[col]; !seen {
				dims[col] = i
			}
		}
	}

	var missing []string
	for _, col := range dimensionColumns {
		if col == "year" {
			continue // optional, may come from the caller
		}
		if _, ok := dims[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &dataerr.ValidationError{
			File:   path,
			Reason: "missing required columns: " + strings.Join(missing, ", "),
		}
	}
	if len(months) == 0 {
		return nil, nil, &dataerr.ValidationError{File: path, Reason: "no month columns found"}
	}
	return dims, months, nil
}

func parseMonthHeader(cell string) (int, bool) {
	trimmed := strings.TrimSuffix(cell, "月")
	if trimmed == cell && len(cell) > 2 {
		return 0, false
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 || n > 12 {
		return 0, false
	}
	return n, true
}

// meltRecord expands one wide record into up to twelve fact rows.
func (m *Melter) meltRecord(record []string, dims map[string]int, months map[int]int, year int, path string, line int) ([]models.FactRow, []string) {
	get := func(col string) string {
		i, ok := dims[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rowYear := year
	if raw := get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, []string{(&dataerr.RowError{File: path, Line: line, Field: "year", Value: raw, Err: err}).Error()}
		}
		rowYear = parsed
	}

	account, err := models.ParseAccount(get("account"))
	if err != nil {
		return nil, []string{(&dataerr.RowError{File: path, Line: line, Field: "account", Value: get("account"), Err: err}).Error()}
	}

	base := models.FactRow{
		Year:         rowYear,
		Segment:      get("segment"),
		Division:     get("division"),
		DeptCode:     get("dept_code"),
		DeptName:     get("dept_name"),
		CustomerCode: get("customer_code"),
		CustomerName: get("customer_name"),
		Industry:     get("industry"),
		Account:      account,
	}

	var rows []models.FactRow
	var warnings []string
	for month := 1; month <= 12; month++ {
		i, ok := months[month]
		if !ok || i >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[i])
		if cell == "" {
			continue
		}
		amount, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			warnings = append(warnings, (&dataerr.RowError{
				File: path, Line: line,
				Field: fmt.Sprintf("month %d", month), Value: cell, Err: err,
			}).Error())
			continue
		}
		row := base
		row.Month = month
		row.Amount = amount
		rows = append(rows, row)
	}
	return rows, warnings
}
