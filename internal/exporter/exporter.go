// Package exporter writes aggregation results to CSV files with a
// UTF-8 BOM so the output opens cleanly in Japanese-locale Excel.
package exporter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"tmori/kessan-cli/internal/config"
	"tmori/kessan-cli/internal/dataerr"
	"tmori/kessan-cli/internal/models"
	"tmori/kessan-cli/internal/query"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ErrNoRows is returned when an export is asked to write an empty
// result set. Callers surface it as a user-facing message rather than
// producing a header-only file.
var ErrNoRows = errors.New("no rows to export")

// utf8BOM is prepended to output files when IncludeBOM is set.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Delimiter is the field separator for output files.
var Delimiter rune = ','

// IncludeBOM controls whether output files start with a UTF-8 BOM.
var IncludeBOM = true

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetIncludeBOM toggles the UTF-8 BOM on output files.
func SetIncludeBOM(include bool) {
	IncludeBOM = include
}

// DefaultFilename builds the conventional output name for a result
// kind, e.g. trend_20230415.csv.
func DefaultFilename(prefix string) string {
	return fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format("20060102"))
}

type trendExportRow struct {
	Year  int   `csv:"year"`
	Month int   `csv:"month"`
	Total int64 `csv:"total"`
}

type compositionExportRow struct {
	Label string          `csv:"label"`
	Total int64           `csv:"total"`
	Share decimal.Decimal `csv:"share_pct"`
}

type rankingExportRow struct {
	Rank         int    `csv:"rank"`
	CustomerCode string `csv:"customer_code"`
	CustomerName string `csv:"customer_name"`
	Industry     string `csv:"industry"`
	Total        int64  `csv:"total"`
}

// WriteTrend exports a monthly trend series.
func WriteTrend(points []query.TrendPoint, path string) error {
	rows := make([]trendExportRow, len(points))
	for i, p := range points {
		rows[i] = trendExportRow{Year: p.Year, Month: p.Month, Total: p.Total}
	}
	return writeCSV(rows, len(points), path)
}

// WriteComposition exports segment, industry or division composition
// rows.
func WriteComposition(comps []query.CompositionRow, path string) error {
	rows := make([]compositionExportRow, len(comps))
	for i, c := range comps {
		rows[i] = compositionExportRow{Label: c.Label, Total: c.Total, Share: c.Share}
	}
	return writeCSV(rows, len(comps), path)
}

// WriteRanking exports a customer ranking.
func WriteRanking(ranks []query.RankingRow, path string) error {
	rows := make([]rankingExportRow, len(ranks))
	for i, r := range ranks {
		rows[i] = rankingExportRow{
			Rank:         r.Rank,
			CustomerCode: r.CustomerCode,
			CustomerName: r.CustomerName,
			Industry:     r.Industry,
			Total:        r.Total,
		}
	}
	return writeCSV(rows, len(ranks), path)
}

// WriteDetail exports raw fact rows in the canonical long format. The
// output round-trips through the importer unchanged.
func WriteDetail(facts []models.FactRow, path string) error {
	return writeCSV(facts, len(facts), path)
}

func writeCSV(rows interface{}, count int, path string) error {
	if count == 0 {
		return ErrNoRows
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return &dataerr.StoreError{Operation: "create output directory", Err: err}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		log.WithError(err).Error("Failed to create output file")
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if IncludeBOM {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("error writing BOM: %w", err)
		}
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal rows to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":  path,
		"count": count,
	}).Info("Exported CSV file")
	return nil
}
