package transform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmori/kessan-cli/internal/dataerr"
	"tmori/kessan-cli/internal/logging"
	"tmori/kessan-cli/internal/models"
)

func writeWideFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wide.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestMeltFileBasic(t *testing.T) {
	path := writeWideFile(t,
		"year,segment,division,dept_code,dept_name,customer_code,customer_name,industry,account,1月,2月,3月,合計\n"+
			"2023,IT,East,D01,Sales East,C001,Acme,Manufacturing,Revenue,100,200,300,600\n")

	melter := New(logging.NewMockLogger(), nil)
	rows, warnings, err := melter.MeltFile(path, 0)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 3)

	assert.Equal(t, 2023, rows[0].Year)
	assert.Equal(t, 1, rows[0].Month)
	assert.Equal(t, int64(100), rows[0].Amount)
	assert.Equal(t, models.AccountRevenue, rows[0].Account)
	assert.Equal(t, "C001", rows[0].CustomerCode)
	assert.Equal(t, 3, rows[2].Month)
	assert.Equal(t, int64(300), rows[2].Amount)
}

func TestMeltFileJapaneseHeadersAndExplicitYear(t *testing.T) {
	path := writeWideFile(t,
		"昇順,開示セグメント名称,事業部名称,部門コード,部門名称,取引先コード,取引先名称,WITC業種名①,科目名称,1月,2月,合計\n"+
			"1,IT,East,D01,Sales East,C001,Acme,製造業,売上高,100,,100\n")

	melter := New(logging.NewMockLogger(), nil)
	rows, warnings, err := melter.MeltFile(path, 2024)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 1)

	assert.Equal(t, 2024, rows[0].Year)
	assert.Equal(t, 1, rows[0].Month)
	assert.Equal(t, models.AccountRevenue, rows[0].Account)
	assert.Equal(t, "製造業", rows[0].Industry)
}

func TestMeltFileEmptyCellsSkipped(t *testing.T) {
	path := writeWideFile(t,
		"year,segment,division,dept_code,dept_name,customer_code,customer_name,industry,account,1月,2月,3月,4月,5月,6月,7月,8月,9月,10月,11月,12月\n"+
			"2023,IT,East,D01,Sales East,C001,Acme,Manufacturing,Revenue,100,,,,,,,,,,,-50\n")

	melter := New(logging.NewMockLogger(), nil)
	rows, warnings, err := melter.MeltFile(path, 0)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Month)
	assert.Equal(t, 12, rows[1].Month)
	assert.Equal(t, int64(-50), rows[1].Amount)
}

func TestMeltFileMissingYear(t *testing.T) {
	path := writeWideFile(t,
		"segment,division,dept_code,dept_name,customer_code,customer_name,industry,account,1月\n"+
			"IT,East,D01,Sales East,C001,Acme,Manufacturing,Revenue,100\n")

	melter := New(logging.NewMockLogger(), nil)
	_, _, err := melter.MeltFile(path, 0)
	var verr *dataerr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "year")

	rows, _, err := melter.MeltFile(path, 2023)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2023, rows[0].Year)
}

func TestMeltFileBadCellsWarn(t *testing.T) {
	path := writeWideFile(t,
		"year,segment,division,dept_code,dept_name,customer_code,customer_name,industry,account,1月,2月\n"+
			"2023,IT,East,D01,Sales East,C001,Acme,Manufacturing,Revenue,abc,200\n"+
			"2023,IT,East,D01,Sales East,C002,Beta,Retail,NotAnAccount,100,200\n")

	melter := New(logging.NewMockLogger(), nil)
	rows, warnings, err := melter.MeltFile(path, 0)
	require.NoError(t, err)

	// Row 1: bad January cell warns, February still melts.
	// Row 2: unknown account drops the whole row.
	require.Len(t, rows, 1)
	assert.Equal(t, int64(200), rows[0].Amount)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "month 1")
	assert.Contains(t, warnings[1], "account")
}

func TestMeltFileMissingColumns(t *testing.T) {
	path := writeWideFile(t,
		"year,segment,account,1月\n"+
			"2023,IT,Revenue,100\n")

	melter := New(logging.NewMockLogger(), nil)
	_, _, err := melter.MeltFile(path, 0)
	var verr *dataerr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "division")
}

func TestMeltFileNoMonthColumns(t *testing.T) {
	path := writeWideFile(t,
		"year,segment,division,dept_code,dept_name,customer_code,customer_name,industry,account\n"+
			"2023,IT,East,D01,Sales East,C001,Acme,Manufacturing,Revenue\n")

	melter := New(logging.NewMockLogger(), nil)
	_, _, err := melter.MeltFile(path, 0)
	var verr *dataerr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "month")
}

func TestMeltFileNotFound(t *testing.T) {
	melter := New(logging.NewMockLogger(), nil)
	_, _, err := melter.MeltFile(filepath.Join(t.TempDir(), "missing.csv"), 2023)
	assert.Error(t, err)
	var verr *dataerr.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestParseMonthHeader(t *testing.T) {
	cases := []struct {
		in    string
		month int
		ok    bool
	}{
		{"1月", 1, true},
		{"12月", 12, true},
		{"7", 7, true},
		{"13月", 0, false},
		{"0月", 0, false},
		{"月", 0, false},
		{"account", 0, false},
		{"2023", 0, false},
	}
	for _, tc := range cases {
		month, ok := parseMonthHeader(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.month, month, tc.in)
		}
	}
}
