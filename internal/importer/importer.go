// Package importer loads the long-format CSV artifact produced by the
// offline transform step into the fact store. Headers are normalized
// through an alias table, the file encoding is detected, and rows that
// violate the fact invariants are skipped with capped warnings.
package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"tmori/kessan-cli/internal/dataerr"
	"tmori/kessan-cli/internal/fileutil"
	"tmori/kessan-cli/internal/logging"
	"tmori/kessan-cli/internal/models"
	"tmori/kessan-cli/internal/store"
)

// maxReportedWarnings caps how many row warnings an import result
// carries; the remainder is summarized in one trailing line.
const maxReportedWarnings = 5

// Importer loads long-format CSV files into a store.
type Importer struct {
	store   *store.Store
	log     logging.Logger
	aliases map[string]string
}

// Result summarizes one import run.
type Result struct {
	Inserted int
	Skipped  int
	Encoding string
	Warnings []string
}

// New creates an importer over the given store.
func New(s *store.Store, log logging.Logger) *Importer {
	return &Importer{store: s, log: log}
}

// UseAliasFile loads extra header aliases from a YAML file.
func (im *Importer) UseAliasFile(path string) error {
	aliases, err := LoadAliasFile(path)
	if err != nil {
		return err
	}
	im.aliases = aliases
	im.log.Info("Loaded header aliases",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(aliases)))
	return nil
}

// ImportCSV validates and loads one long-format CSV file. Missing
// required columns fail the whole import; individually invalid rows are
// skipped and reported through Result.Warnings.
func (im *Importer) ImportCSV(ctx context.Context, path string, mode store.LoadMode) (Result, error) {
	data, encoding, err := fileutil.DecodeFile(path)
	if err != nil {
		return Result{}, &dataerr.ValidationError{File: path, Reason: err.Error()}
	}
	im.log.Debug("Detected file encoding",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldEncoding, encoding))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return Result{}, &dataerr.ValidationError{File: path, Reason: fmt.Sprintf("CSV parse error: %v", err)}
	}
	if len(records) < 2 {
		return Result{}, &dataerr.ValidationError{File: path, Reason: "no data rows"}
	}

	index, missing := columnIndex(records[0], im.aliases)
	if len(missing) > 0 {
		return Result{}, &dataerr.ValidationError{
			File:   path,
			Reason: "missing required columns: " + strings.Join(missing, ", "),
		}
	}

	rows := make([]models.FactRow, 0, len(records)-1)
	var warnings []string
	for i, record := range records[1:] {
		line := i + 2 // 1-based, after the header
		row, err := parseRow(record, index, path, line)
		if err != nil {
			warnings = append(warnings, err.Error())
			im.log.WithError(err).Warn("Skipping invalid row",
				logging.F(logging.FieldFile, path),
				logging.F(logging.FieldLine, line))
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return Result{}, &dataerr.ValidationError{File: path, Reason: "no importable rows"}
	}

	inserted, err := im.store.InsertFacts(ctx, rows, mode)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Inserted: inserted,
		Skipped:  len(warnings),
		Encoding: encoding,
		Warnings: capWarnings(warnings),
	}
	im.log.Info("Import finished",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, inserted),
		logging.F(logging.FieldMode, string(mode)))
	return result, nil
}

// parseRow converts one CSV record into a validated fact row.
func parseRow(record []string, index map[string]int, file string, line int) (models.FactRow, error) {
	get := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	year, err := strconv.Atoi(get("year"))
	if err != nil {
		return models.FactRow{}, &dataerr.RowError{File: file, Line: line, Field: "year", Value: get("year"), Err: err}
	}
	month, err := strconv.Atoi(get("month"))
	if err != nil {
		return models.FactRow{}, &dataerr.RowError{File: file, Line: line, Field: "month", Value: get("month"), Err: err}
	}
	amount, err := strconv.ParseInt(get("amount"), 10, 64)
	if err != nil {
		return models.FactRow{}, &dataerr.RowError{File: file, Line: line, Field: "amount", Value: get("amount"), Err: err}
	}
	account, err := models.ParseAccount(get("account"))
	if err != nil {
		return models.FactRow{}, &dataerr.RowError{File: file, Line: line, Field: "account", Value: get("account"), Err: err}
	}

	row := models.FactRow{
		Year:         year,
		Month:        month,
		Segment:      get("segment"),
		Division:     get("division"),
		DeptCode:     get("dept_code"),
		DeptName:     get("dept_name"),
		CustomerCode: get("customer_code"),
		CustomerName: get("customer_name"),
		Industry:     get("industry"),
		Account:      account,
		Amount:       amount,
	}
	if err := row.Validate(); err != nil {
		return models.FactRow{}, &dataerr.RowError{File: file, Line: line, Field: "month", Value: get("month"), Err: err}
	}
	return row, nil
}

// capWarnings keeps the first maxReportedWarnings entries and folds the
// rest into a single summary line.
func capWarnings(warnings []string) []string {
	if len(warnings) <= maxReportedWarnings {
		return warnings
	}
	capped := append([]string{}, warnings[:maxReportedWarnings]...)
	return append(capped, fmt.Sprintf("... and %d more warnings", len(warnings)-maxReportedWarnings))
}
