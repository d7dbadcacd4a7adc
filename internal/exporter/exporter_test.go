package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmori/kessan-cli/internal/models"
	"tmori/kessan-cli/internal/query"
)

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriteTrend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.csv")
	points := []query.TrendPoint{
		{Year: 2023, Month: 1, Total: 100},
		{Year: 2023, Month: 2, Total: -50},
	}
	require.NoError(t, WriteTrend(points, path))

	out := readOutput(t, path)
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"), "output must start with a UTF-8 BOM")
	assert.Contains(t, out, "year,month,total")
	assert.Contains(t, out, "2023,1,100")
	assert.Contains(t, out, "2023,2,-50")
}

func TestWriteTrendEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.csv")
	err := WriteTrend(nil, path)
	assert.ErrorIs(t, err, ErrNoRows)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be written for empty results")
}

func TestWriteComposition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segment.csv")
	rows := []query.CompositionRow{
		{Label: "IT", Total: 900, Share: decimal.NewFromFloat(90.0)},
		{Label: "Retail", Total: 100, Share: decimal.NewFromFloat(10.0)},
	}
	require.NoError(t, WriteComposition(rows, path))

	out := readOutput(t, path)
	assert.Contains(t, out, "label,total,share_pct")
	assert.Contains(t, out, "IT,900,90")
	assert.Contains(t, out, "Retail,100,10")
}

func TestWriteRanking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rank.csv")
	rows := []query.RankingRow{
		{Rank: 1, CustomerCode: "C002", CustomerName: "ベータ商事", Industry: "Retail", Total: 500},
		{Rank: 2, CustomerCode: "C001", CustomerName: "Acme", Industry: "Manufacturing", Total: 300},
	}
	require.NoError(t, WriteRanking(rows, path))

	out := readOutput(t, path)
	assert.Contains(t, out, "rank,customer_code,customer_name,industry,total")
	assert.Contains(t, out, "1,C002,ベータ商事,Retail,500")
	assert.Contains(t, out, "2,C001,Acme,Manufacturing,300")
}

func TestWriteDetailRoundTripHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "detail.csv")
	facts := []models.FactRow{{
		Year: 2023, Month: 4, Segment: "IT", Division: "East",
		DeptCode: "D01", DeptName: "Sales East",
		CustomerCode: "C001", CustomerName: "Acme",
		Industry: "Manufacturing", Account: models.AccountRevenue, Amount: 1200,
	}}
	require.NoError(t, WriteDetail(facts, path))

	out := readOutput(t, path)
	assert.Contains(t, out, "year,month,segment,division,dept_code,dept_name,customer_code,customer_name,industry,account,amount")
	assert.Contains(t, out, "2023,4,IT,East,D01,Sales East,C001,Acme,Manufacturing,Revenue,1200")
}

func TestSetDelimiter(t *testing.T) {
	SetDelimiter(';')
	defer SetDelimiter(',')

	path := filepath.Join(t.TempDir(), "trend.csv")
	require.NoError(t, WriteTrend([]query.TrendPoint{{Year: 2023, Month: 1, Total: 100}}, path))

	out := readOutput(t, path)
	assert.Contains(t, out, "year;month;total")
	assert.Contains(t, out, "2023;1;100")
}

func TestWriteWithoutBOM(t *testing.T) {
	SetIncludeBOM(false)
	defer SetIncludeBOM(true)

	path := filepath.Join(t.TempDir(), "trend.csv")
	require.NoError(t, WriteTrend([]query.TrendPoint{{Year: 2023, Month: 1, Total: 100}}, path))

	out := readOutput(t, path)
	assert.True(t, strings.HasPrefix(out, "year,month,total"))
}

func TestWriteCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "trend.csv")
	require.NoError(t, WriteTrend([]query.TrendPoint{{Year: 2023, Month: 1, Total: 1}}, path))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestDefaultFilename(t *testing.T) {
	name := DefaultFilename("trend")
	assert.Equal(t, "trend_"+time.Now().Format("20060102")+".csv", name)
}
