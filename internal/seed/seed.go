// Package seed generates deterministic sample accounting data for
// demos and tests. The master hierarchy mirrors a mid-size Japanese
// manufacturer: three disclosure segments, six divisions, ten
// departments and forty customers across seventeen industries.
package seed

import (
	"math/rand"
	"sort"

	"tmori/kessan-cli/internal/models"
)

// DefaultSeed fixes the random source so repeated runs regenerate
// identical data.
const DefaultSeed int64 = 42

// DefaultYears are the fiscal years to populate when none are given.
var DefaultYears = []int{2022, 2023, 2024}

type department struct {
	code string
	name string
}

type customer struct {
	code     string
	name     string
	industry string
}

type accountSpec struct {
	account models.Account
	min     float64
	max     float64
	ratio   float64 // share of the revenue-scale base amount
}

// segments fixes iteration order over segmentDivisions.
var segments = []string{"製造事業", "流通事業", "サービス事業"}

var segmentDivisions = map[string][]string{
	"製造事業":   {"製造第一事業部", "製造第二事業部"},
	"流通事業":   {"流通営業部", "流通企画部"},
	"サービス事業": {"サービス開発部", "サービス運用部"},
}

var divisionDepts = map[string][]department{
	"製造第一事業部": {{"101", "製造1課"}, {"102", "製造2課"}},
	"製造第二事業部": {{"201", "製造3課"}, {"202", "製造4課"}},
	"流通営業部":   {{"301", "営業1課"}, {"302", "営業2課"}},
	"流通企画部":   {{"401", "企画課"}},
	"サービス開発部": {{"501", "開発1課"}, {"502", "開発2課"}},
	"サービス運用部": {{"601", "運用課"}},
}

var customers = []customer{
	{"110101", "アルファ電機株式会社", "電気電子"},
	{"110102", "ベータ工業株式会社", "電気電子"},
	{"110103", "ガンマテック株式会社", "電気電子"},
	{"120101", "デルタ機械株式会社", "機械"},
	{"120102", "イプシロン重工株式会社", "機械"},
	{"120103", "ゼータエンジニアリング株式会社", "機械"},
	{"130101", "イータ化学工業株式会社", "化学"},
	{"130102", "シータケミカル株式会社", "化学"},
	{"140101", "カッパ自動車株式会社", "自動車"},
	{"140102", "ラムダモーター株式会社", "自動車"},
	{"140103", "ミューオート株式会社", "自動車"},
	{"150101", "ニューフーズ株式会社", "食品"},
	{"150102", "クサイ食品株式会社", "食品"},
	{"160101", "オミクロン商事株式会社", "商社"},
	{"160102", "パイトレーディング株式会社", "商社"},
	{"160103", "ロー物産株式会社", "商社"},
	{"170101", "シグマIT株式会社", "情報通信"},
	{"170102", "タウシステムズ株式会社", "情報通信"},
	{"170103", "ウプシロンソフト株式会社", "情報通信"},
	{"170104", "ファイテクノロジー株式会社", "情報通信"},
	{"180101", "カイ建設株式会社", "建設"},
	{"180102", "プサイ工務店株式会社", "建設"},
	{"190101", "オメガ運輸株式会社", "物流"},
	{"190102", "アルファロジスティクス株式会社", "物流"},
	{"200101", "ベータ医薬株式会社", "医薬品"},
	{"200102", "ガンマファーマ株式会社", "医薬品"},
	{"210101", "デルタ金属株式会社", "金属"},
	{"210102", "イプシロン鋼業株式会社", "金属"},
	{"220101", "ゼータ繊維株式会社", "繊維"},
	{"220102", "イータテキスタイル株式会社", "繊維"},
	{"230101", "シータ精密株式会社", "精密機器"},
	{"230102", "カッパ計器株式会社", "精密機器"},
	{"240101", "ラムダ不動産株式会社", "不動産"},
	{"240102", "ミュープロパティ株式会社", "不動産"},
	{"250101", "ニューエナジー株式会社", "エネルギー"},
	{"250102", "クサイパワー株式会社", "エネルギー"},
	{"260101", "オミクロンサービス株式会社", "サービス"},
	{"260102", "パイコンサルティング株式会社", "サービス"},
	{"260103", "ロービジネス株式会社", "サービス"},
	{"270101", "シグマ小売株式会社", "小売"},
}

// accountSpecs set the base amount range per account and the ratio
// that keeps costs proportional to a revenue-scale base (roughly a 60%
// cost-of-sales ratio, 10% selling, 5% administrative and 2%
// non-operating either way).
var accountSpecs = []accountSpec{
	{models.AccountRevenue, 500_000, 5_000_000, 1.0},
	{models.AccountCostOfSales, 300_000, 3_000_000, 0.6},
	{models.AccountSellingExpenses, 50_000, 500_000, 0.1},
	{models.AccountAdminExpenses, 30_000, 300_000, 0.05},
	{models.AccountNonOpIncome, 10_000, 100_000, 0.02},
	{models.AccountNonOpExpenses, 5_000, 50_000, 0.02},
}

// seasonality scales monthly amounts; March peaks for a fiscal year
// ending in March.
var seasonality = [13]float64{
	0, // unused, months are 1-based
	0.85, 0.80, 1.20,
	0.90, 0.95, 1.00,
	0.95, 0.85, 1.10,
	1.05, 1.10, 1.15,
}

// growthRate returns the per-year scale factor. Years outside the
// default range grow 3% per year past 2024.
func growthRate(year int) float64 {
	switch {
	case year <= 2022:
		return 1.0
	case year == 2023:
		return 1.05
	case year == 2024:
		return 1.08
	default:
		return 1.08 + 0.03*float64(year-2024)
	}
}

// Generate produces sample fact rows for the given fiscal years. The
// same (years, seed) pair always yields the same rows.
func Generate(years []int, seed int64) []models.FactRow {
	if len(years) == 0 {
		years = DefaultYears
	}
	rng := rand.New(rand.NewSource(seed))

	var rows []models.FactRow
	for _, year := range years {
		for _, segment := range segments {
			for _, division := range segmentDivisions[segment] {
				for _, dept := range divisionDepts[division] {
					for _, cust := range pickCustomers(rng) {
						rows = append(rows, customerRows(rng, year, segment, division, dept, cust)...)
					}
				}
			}
		}
	}
	return rows
}

// pickCustomers assigns five to ten distinct customers to a
// department.
func pickCustomers(rng *rand.Rand) []customer {
	n := 5 + rng.Intn(6)
	picked := rng.Perm(len(customers))[:n]
	sort.Ints(picked)
	out := make([]customer, n)
	for i, idx := range picked {
		out[i] = customers[idx]
	}
	return out
}

// customerRows generates one year of monthly rows for every account of
// a single department/customer pairing.
func customerRows(rng *rand.Rand, year int, segment, division string, dept department, cust customer) []models.FactRow {
	rows := make([]models.FactRow, 0, len(accountSpecs)*12)
	for _, spec := range accountSpecs {
		base := (spec.min + rng.Float64()*(spec.max-spec.min)) * spec.ratio
		for month := 1; month <= 12; month++ {
			jitter := 0.8 + rng.Float64()*0.4
			amount := int64(base * growthRate(year) * seasonality[month] * jitter)
			rows = append(rows, models.FactRow{
				Year:         year,
				Month:        month,
				Segment:      segment,
				Division:     division,
				DeptCode:     dept.code,
				DeptName:     dept.name,
				CustomerCode: cust.code,
				CustomerName: cust.name,
				Industry:     cust.industry,
				Account:      spec.account,
				Amount:       amount,
			})
		}
	}
	return rows
}
