package query

import (
	"context"
	"path/filepath"
	"testing"

	"tmori/kessan-cli/internal/models"
	"tmori/kessan-cli/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, rows []models.FactRow) *Service {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "query.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()
	require.NoError(t, s.EnsureSchema(ctx))
	if len(rows) > 0 {
		_, err = s.InsertFacts(ctx, rows, store.ModeReplace)
		require.NoError(t, err)
	}
	return New(s)
}

func fact(year, month int, segment, custCode, custName, industry string, account models.Account, amount int64) models.FactRow {
	return models.FactRow{
		Year: year, Month: month,
		Segment: segment, Division: segment + " Div",
		DeptCode: "100", DeptName: "Dept",
		CustomerCode: custCode, CustomerName: custName, Industry: industry,
		Account: account, Amount: amount,
	}
}

// The worked example from the dashboard contract: three revenue rows in
// 2024 produce trend [(2024,1,150),(2024,2,80)] and composition
// [(A,180),(B,50)].
func TestMonthlyTrendWorkedExample(t *testing.T) {
	svc := newTestService(t, []models.FactRow{
		fact(2024, 1, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 100),
		fact(2024, 1, "B", "C2", "Cust 2", "Mfg", models.AccountRevenue, 50),
		fact(2024, 2, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 80),
	})
	ctx := context.Background()

	points, err := svc.MonthlyTrend(ctx, models.NewFilter().WithYears(2024))
	require.NoError(t, err)
	assert.Equal(t, []TrendPoint{
		{Year: 2024, Month: 1, Total: 150},
		{Year: 2024, Month: 2, Total: 80},
	}, points)

	comp, err := svc.SegmentComposition(ctx, []int{2024}, models.AccountRevenue)
	require.NoError(t, err)
	require.Len(t, comp, 2)
	assert.Equal(t, "A", comp[0].Label)
	assert.Equal(t, int64(180), comp[0].Total)
	assert.Equal(t, "B", comp[1].Label)
	assert.Equal(t, int64(50), comp[1].Total)
}

// The trend's totals summed over all returned months must equal the sum
// of amount over all matching rows, and the segment composition must
// conserve the same grand total.
func TestAggregationConservation(t *testing.T) {
	rows := []models.FactRow{
		fact(2023, 3, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 120),
		fact(2023, 7, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, -20),
		fact(2023, 7, "B", "C2", "Cust 2", "IT", models.AccountRevenue, 300),
		fact(2024, 1, "B", "C2", "Cust 2", "IT", models.AccountRevenue, 45),
		fact(2023, 5, "A", "C1", "Cust 1", "Mfg", models.AccountCostOfSales, 999),
	}
	svc := newTestService(t, rows)
	ctx := context.Background()

	var want int64
	for _, r := range rows {
		if r.Account == models.AccountRevenue && r.Year == 2023 {
			want += r.Amount
		}
	}

	points, err := svc.MonthlyTrend(ctx, models.NewFilter().WithYears(2023))
	require.NoError(t, err)
	var got int64
	for _, p := range points {
		got += p.Total
	}
	assert.Equal(t, want, got)

	comp, err := svc.SegmentComposition(ctx, []int{2023}, models.AccountRevenue)
	require.NoError(t, err)
	got = 0
	for _, c := range comp {
		got += c.Total
	}
	assert.Equal(t, want, got)
}

func TestMonthlyTrendOrderingAndGaps(t *testing.T) {
	svc := newTestService(t, []models.FactRow{
		fact(2024, 11, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 10),
		fact(2023, 2, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 20),
		fact(2024, 3, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 30),
	})

	points, err := svc.MonthlyTrend(context.Background(), models.NewFilter())
	require.NoError(t, err)
	require.Len(t, points, 3)
	// Ascending by year then month; absent months are simply missing.
	assert.Equal(t, TrendPoint{2023, 2, 20}, points[0])
	assert.Equal(t, TrendPoint{2024, 3, 30}, points[1])
	assert.Equal(t, TrendPoint{2024, 11, 10}, points[2])
}

func TestMonthlyTrendSegmentFilterAndDefaultAccount(t *testing.T) {
	svc := newTestService(t, []models.FactRow{
		fact(2024, 1, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 100),
		fact(2024, 1, "B", "C2", "Cust 2", "IT", models.AccountRevenue, 50),
	})

	// Zero-value filter account defaults to revenue.
	points, err := svc.MonthlyTrend(context.Background(), models.Filter{Segments: []string{"A"}})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, int64(100), points[0].Total)
}

func TestSegmentCompositionShares(t *testing.T) {
	svc := newTestService(t, []models.FactRow{
		fact(2024, 1, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 180),
		fact(2024, 1, "B", "C2", "Cust 2", "IT", models.AccountRevenue, 20),
	})

	comp, err := svc.SegmentComposition(context.Background(), []int{2024}, models.AccountRevenue)
	require.NoError(t, err)
	require.Len(t, comp, 2)
	assert.True(t, comp[0].Share.Equal(decimal.RequireFromString("90")), "got %s", comp[0].Share)
	assert.True(t, comp[1].Share.Equal(decimal.RequireFromString("10")), "got %s", comp[1].Share)
}

func TestCustomerRanking(t *testing.T) {
	svc := newTestService(t, []models.FactRow{
		fact(2024, 1, "A", "C003", "Gamma", "IT", models.AccountRevenue, 500),
		fact(2024, 2, "A", "C003", "Gamma", "IT", models.AccountRevenue, 100),
		fact(2024, 1, "A", "C001", "Alpha", "Mfg", models.AccountRevenue, 300),
		fact(2024, 1, "A", "C002", "Beta", "Mfg", models.AccountRevenue, 300),
		fact(2024, 1, "A", "C004", "Delta", "IT", models.AccountRevenue, 50),
		// Different year and account must not leak into the ranking.
		fact(2023, 1, "A", "C004", "Delta", "IT", models.AccountRevenue, 9999),
		fact(2024, 1, "A", "C004", "Delta", "IT", models.AccountCostOfSales, 9999),
	})
	ctx := context.Background()

	ranking, err := svc.CustomerRanking(ctx, 2024, models.AccountRevenue, 3)
	require.NoError(t, err)
	require.Len(t, ranking, 3, "length must not exceed the requested limit")

	// Non-increasing totals.
	for i := 1; i < len(ranking); i++ {
		assert.GreaterOrEqual(t, ranking[i-1].Total, ranking[i].Total)
	}

	// Grouped per customer: Gamma = 500+100.
	assert.Equal(t, RankingRow{Rank: 1, CustomerCode: "C003", CustomerName: "Gamma", Industry: "IT", Total: 600}, ranking[0])

	// Tie between C001 and C002 broken by customer_code ascending.
	assert.Equal(t, "C001", ranking[1].CustomerCode)
	assert.Equal(t, "C002", ranking[2].CustomerCode)
}

func TestCustomerRankingDefaultLimit(t *testing.T) {
	var rows []models.FactRow
	for i := 0; i < 30; i++ {
		code := string(rune('A'+i/10)) + string(rune('0'+i%10))
		rows = append(rows, fact(2024, 1, "A", code, "Cust "+code, "Mfg", models.AccountRevenue, int64(1000-i)))
	}
	svc := newTestService(t, rows)

	ranking, err := svc.CustomerRanking(context.Background(), 2024, models.AccountRevenue, 0)
	require.NoError(t, err)
	assert.Len(t, ranking, DefaultRankingLimit)
}

// Re-running any aggregation with identical filters over unchanged data
// must yield identical results.
func TestAggregationIdempotence(t *testing.T) {
	svc := newTestService(t, []models.FactRow{
		fact(2024, 1, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 100),
		fact(2024, 2, "B", "C2", "Cust 2", "IT", models.AccountRevenue, 50),
	})
	ctx := context.Background()
	f := models.NewFilter().WithYears(2024)

	first, err := svc.MonthlyTrend(ctx, f)
	require.NoError(t, err)
	second, err := svc.MonthlyTrend(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	r1, err := svc.CustomerRanking(ctx, 2024, models.AccountRevenue, 10)
	require.NoError(t, err)
	r2, err := svc.CustomerRanking(ctx, 2024, models.AccountRevenue, 10)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

// An empty selection is an empty result, never an error.
func TestEmptyResultSets(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	points, err := svc.MonthlyTrend(ctx, models.NewFilter())
	require.NoError(t, err)
	assert.Empty(t, points)

	comp, err := svc.SegmentComposition(ctx, []int{2024}, models.AccountRevenue)
	require.NoError(t, err)
	assert.Empty(t, comp)

	ranking, err := svc.CustomerRanking(ctx, 2024, models.AccountRevenue, 20)
	require.NoError(t, err)
	assert.Empty(t, ranking)
}

func TestComputeStats(t *testing.T) {
	svc := newTestService(t, []models.FactRow{
		fact(2023, 1, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 200),
		fact(2024, 1, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 100),
		fact(2024, 2, "A", "C2", "Cust 2", "IT", models.AccountRevenue, 150),
	})

	stats, err := svc.ComputeStats(context.Background(), models.NewFilter().WithYears(2023, 2024))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 2, stats.Customers)
	assert.Equal(t, int64(450), stats.Total)
	// 2024 total 250 vs 2023 total 200 -> +25.0%
	require.NotNil(t, stats.YoY)
	assert.True(t, stats.YoY.Equal(decimal.RequireFromString("25")), "got %s", stats.YoY)
}

func TestComputeStatsNoPriorYear(t *testing.T) {
	svc := newTestService(t, []models.FactRow{
		fact(2024, 1, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 100),
	})

	stats, err := svc.ComputeStats(context.Background(), models.NewFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(100), stats.Total)
	assert.Nil(t, stats.YoY)
}

func TestYearlySummary(t *testing.T) {
	svc := newTestService(t, []models.FactRow{
		fact(2023, 1, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 100),
		fact(2023, 1, "A", "C1", "Cust 1", "Mfg", models.AccountCostOfSales, 60),
		fact(2024, 1, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 110),
	})

	rows, err := svc.YearlySummary(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Ordered by year, then statement order within a year.
	assert.Equal(t, 2023, rows[0].Year)
	assert.Equal(t, models.AccountRevenue, rows[0].Account)
	assert.Equal(t, models.AccountCostOfSales, rows[1].Account)
	assert.Nil(t, rows[0].YoY)

	assert.Equal(t, 2024, rows[2].Year)
	require.NotNil(t, rows[2].YoY)
	assert.True(t, rows[2].YoY.Equal(decimal.RequireFromString("10")), "got %s", rows[2].YoY)
}

func TestOperatingProfit(t *testing.T) {
	svc := newTestService(t, []models.FactRow{
		fact(2024, 1, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 1000),
		fact(2024, 1, "A", "C1", "Cust 1", "Mfg", models.AccountCostOfSales, 600),
		fact(2024, 1, "A", "C1", "Cust 1", "Mfg", models.AccountSellingExpenses, 100),
		fact(2024, 1, "A", "C1", "Cust 1", "Mfg", models.AccountAdminExpenses, 50),
		fact(2024, 1, "A", "C1", "Cust 1", "Mfg", models.AccountNonOpIncome, 9),
	})

	rows, err := svc.OperatingProfit(context.Background(), []int{2024})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(400), rows[0].GrossProfit)
	assert.Equal(t, int64(250), rows[0].OperatingIncome)
}

func TestDepartmentMonthly(t *testing.T) {
	rows := []models.FactRow{
		{Year: 2024, Month: 1, Segment: "A", Division: "Div 1", DeptCode: "101", DeptName: "Dept 1", CustomerCode: "C1", CustomerName: "Cust 1", Industry: "Mfg", Account: models.AccountRevenue, Amount: 100},
		{Year: 2024, Month: 1, Segment: "A", Division: "Div 1", DeptCode: "102", DeptName: "Dept 2", CustomerCode: "C2", CustomerName: "Cust 2", Industry: "Mfg", Account: models.AccountRevenue, Amount: 70},
		{Year: 2024, Month: 2, Segment: "A", Division: "Div 1", DeptCode: "101", DeptName: "Dept 1", CustomerCode: "C1", CustomerName: "Cust 1", Industry: "Mfg", Account: models.AccountRevenue, Amount: 30},
		{Year: 2024, Month: 1, Segment: "B", Division: "Div 2", DeptCode: "201", DeptName: "Dept 3", CustomerCode: "C3", CustomerName: "Cust 3", Industry: "IT", Account: models.AccountRevenue, Amount: 999},
	}
	svc := newTestService(t, rows)

	result, err := svc.DepartmentMonthly(context.Background(), []int{2024}, "Div 1", nil, models.AccountRevenue)
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "101", result[0].DeptCode)
	assert.Equal(t, int64(100), result[0].Total)

	// Restricting dept codes narrows the result.
	result, err = svc.DepartmentMonthly(context.Background(), []int{2024}, "Div 1", []string{"102"}, models.AccountRevenue)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(70), result[0].Total)
}

func TestDetailRows(t *testing.T) {
	svc := newTestService(t, []models.FactRow{
		fact(2024, 2, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 80),
		fact(2024, 1, "B", "C2", "Cust 2", "IT", models.AccountRevenue, 50),
		fact(2024, 1, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 100),
	})

	rows, err := svc.DetailRows(context.Background(), models.NewFilter().WithYears(2024))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// Ordered by year, month, segment, customer name.
	assert.Equal(t, 1, rows[0].Month)
	assert.Equal(t, "A", rows[0].Segment)
	assert.Equal(t, "B", rows[1].Segment)
	assert.Equal(t, 2, rows[2].Month)
	assert.Equal(t, models.AccountRevenue, rows[0].Account)
}

func TestComputeTableStats(t *testing.T) {
	svc := newTestService(t, []models.FactRow{
		fact(2023, 1, "A", "C1", "Cust 1", "Mfg", models.AccountRevenue, 100),
		fact(2023, 1, "A", "C1", "Cust 1", "Mfg", models.AccountCostOfSales, -60),
		fact(2024, 2, "B", "C2", "Cust 2", "IT", models.AccountRevenue, 50),
	})

	stats, err := svc.ComputeTableStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, 2, stats.Years)
	assert.Equal(t, 2, stats.Customers)
	assert.Equal(t, 1, stats.Departments)
	assert.Equal(t, 2, stats.Accounts)
	assert.Equal(t, int64(90), stats.TotalAmount)
}

func TestComputeTableStatsEmpty(t *testing.T) {
	svc := newTestService(t, nil)
	stats, err := svc.ComputeTableStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Records)
	assert.Zero(t, stats.TotalAmount)
}
