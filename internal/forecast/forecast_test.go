package forecast

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
}

func engine(seed int64) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)), fixedNow)
}

func monthSales(agent string, year int, month time.Month, total, successful int, commissionEach float64) []model.SaleRecord {
	out := make([]model.SaleRecord, 0, total)
	for i := 0; i < total; i++ {
		r := model.SaleRecord{
			AgentID: agent,
			CardID:  "CC001",
			Date:    time.Date(year, month, 1+i%27, 0, 0, 0, 0, time.UTC),
		}
		if i < successful {
			r.Success = true
			r.Commission = commissionEach
		}
		out = append(out, r)
	}
	return out
}

func history(agent string) []model.SaleRecord {
	var sales []model.SaleRecord
	sales = append(sales, monthSales(agent, 2024, time.January, 4, 2, 2000)...)
	sales = append(sales, monthSales(agent, 2024, time.February, 5, 3, 2200)...)
	sales = append(sales, monthSales(agent, 2024, time.March, 6, 4, 2400)...)
	sales = append(sales, monthSales(agent, 2024, time.April, 7, 5, 2500)...)
	return sales
}

func TestForecastDeterministicUnderSeed(t *testing.T) {
	t.Parallel()

	a := engine(99).Forecast(history("A1"), nil, "A1", 6)
	b := engine(99).Forecast(history("A1"), nil, "A1", 6)
	assert.Equal(t, a, b)
}

func TestForecastCumulativeCommissionIdentity(t *testing.T) {
	t.Parallel()

	res := engine(7).Forecast(history("A1"), nil, "A1", 8)
	require.Len(t, res.Forecast, 8)

	var sum float64
	for _, m := range res.Forecast {
		sum += m.Commission
		assert.InDelta(t, sum, m.CumulativeCommission, 1e-9)
	}
}

func TestForecastHistoricalSeries(t *testing.T) {
	t.Parallel()

	res := engine(1).Forecast(history("A1"), nil, "A1", 3)
	require.Len(t, res.Historical, 4)
	assert.False(t, res.NewAgent)

	jan := res.Historical[0]
	assert.Equal(t, "2024-01", jan.Month)
	assert.Equal(t, 4, jan.TotalSales)
	assert.Equal(t, 2, jan.SuccessfulSales)
	assert.InDelta(t, 0.5, jan.SuccessRate, 0.0001)
	assert.InDelta(t, 4000, jan.Commission, 0.0001)
	assert.InDelta(t, 2000, jan.AvgCommission, 0.0001)

	assert.Equal(t, "2024-04", res.Historical[3].Month)
}

func TestForecastMonthLabelsFollowLastMonth(t *testing.T) {
	t.Parallel()

	res := engine(1).Forecast(history("A1"), nil, "A1", 3)
	require.Len(t, res.Forecast, 3)
	assert.Equal(t, "May 2024", res.Forecast[0].Month)
	assert.Equal(t, "June 2024", res.Forecast[1].Month)
	assert.Equal(t, "July 2024", res.Forecast[2].Month)
}

func TestForecastSalesStayPositive(t *testing.T) {
	t.Parallel()

	// Shrinking history drives a negative base growth; projected totals
	// must still never drop below 1.
	var sales []model.SaleRecord
	sales = append(sales, monthSales("A1", 2024, time.January, 9, 5, 1500)...)
	sales = append(sales, monthSales("A1", 2024, time.February, 4, 2, 1500)...)
	sales = append(sales, monthSales("A1", 2024, time.March, 2, 1, 1500)...)

	res := engine(13).Forecast(sales, nil, "A1", 12)
	for _, m := range res.Forecast {
		assert.GreaterOrEqual(t, m.TotalSales, 1)
		assert.GreaterOrEqual(t, m.SuccessfulSales, 0)
		assert.GreaterOrEqual(t, m.Commission, 0.0)
	}
	// Base growth is clamped to the floor.
	assert.GreaterOrEqual(t, res.Summary.ProjectedGrowth, -1.0)
}

func TestForecastSummaryTotals(t *testing.T) {
	t.Parallel()

	res := engine(5).Forecast(history("A1"), nil, "A1", 6)
	var totalSales int
	var totalCommission float64
	for _, m := range res.Forecast {
		totalSales += m.TotalSales
		totalCommission += m.Commission
	}
	assert.Equal(t, totalSales, res.Summary.TotalForecastSales)
	assert.InDelta(t, totalCommission, res.Summary.TotalForecastCommission, 1e-9)
	assert.InDelta(t, totalCommission/6, res.Summary.AvgMonthlyCommission, 1e-9)
	assert.Equal(t, 6, res.Summary.ForecastMonths)
}

func TestSingleMonthFallsThroughToNewAgentPath(t *testing.T) {
	t.Parallel()

	sales := monthSales("A1", 2024, time.March, 6, 3, 2000)
	res := engine(3).Forecast(sales, nil, "A1", 4)
	assert.True(t, res.NewAgent)
	assert.Empty(t, res.Historical)
	require.Len(t, res.Forecast, 4)
}

func TestNewAgentForecastGrowthDecays(t *testing.T) {
	t.Parallel()

	res := engine(2).Forecast(nil, nil, "brand-new", 6)
	require.True(t, res.NewAgent)
	require.Len(t, res.Forecast, 6)

	// Default benchmarks: 5 first-month sales, 50% rate, Rs.1000 each.
	first := res.Forecast[0]
	assert.Equal(t, 5, first.TotalSales)
	assert.Equal(t, 3, first.SuccessfulSales)
	assert.InDelta(t, 3000, first.Commission, 0.0001)

	// Growth decays 0.20, 0.17, 0.14... so totals are 5, 6, 7, 8, 9, 10.
	want := []int{5, 6, 7, 8, 9, 10}
	for i, m := range res.Forecast {
		assert.Equal(t, want[i], m.TotalSales, "month %d", i)
	}
	assert.InDelta(t, 0.2, res.Summary.ProjectedGrowth, 0.0001)
	assert.Len(t, res.Optimization, 3)
}

func TestNewAgentForecastUsesNetworkBenchmarks(t *testing.T) {
	t.Parallel()

	// Network numbers come from other agents: A2 sold 4 in its first
	// month at 100% success and Rs.3000 each.
	network := monthSales("A2", 2024, time.February, 4, 4, 3000)

	res := engine(2).Forecast(network, nil, "brand-new", 2)
	require.Len(t, res.Forecast, 2)
	assert.Equal(t, 4, res.Forecast[0].TotalSales)
	assert.InDelta(t, 1.0, res.Forecast[0].SuccessRate, 0.0001)
	assert.InDelta(t, 4*3000, res.Forecast[0].Commission, 0.0001)
}

func TestTrimmedMeanGrowthDropsOutliers(t *testing.T) {
	t.Parallel()

	monthly := []Month{
		{TotalSales: 10}, {TotalSales: 11}, {TotalSales: 12},
		{TotalSales: 13}, {TotalSales: 14}, {TotalSales: 15},
		{TotalSales: 16}, {TotalSales: 17}, {TotalSales: 18},
		{TotalSales: 19}, {TotalSales: 20}, {TotalSales: 200},
	}
	// The 10x spike in the last step sits beyond the 95th percentile and
	// must not drag the average up.
	got := trimmedMeanGrowth(monthly)
	assert.Less(t, got, 0.12)
	assert.Greater(t, got, 0.0)
}

func TestRecencyWeightedFavorsRecentMonths(t *testing.T) {
	t.Parallel()

	monthly := []Month{
		{SuccessRate: 0.2, AvgCommission: 1000},
		{SuccessRate: 0.8, AvgCommission: 3000},
	}
	rate, avgComm := recencyWeighted(monthly)
	// Weights 0.5 and 1.0: (0.2*0.5+0.8*1.0)/1.5 = 0.6.
	assert.InDelta(t, 0.6, rate, 0.0001)
	assert.InDelta(t, (1000*0.5+3000*1.0)/1.5, avgComm, 0.0001)
	// Plain mean would be 0.5; recency pulls it toward the newer month.
	assert.Greater(t, rate, 0.5)
}

func TestQuantileAndMedian(t *testing.T) {
	t.Parallel()

	sorted := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1.0, quantile(sorted, 0), 1e-9)
	assert.InDelta(t, 5.0, quantile(sorted, 1), 1e-9)
	assert.InDelta(t, 3.0, quantile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 1.2, quantile(sorted, 0.05), 1e-9)

	assert.Equal(t, 3, median([]int{5, 1, 3}))
	assert.Equal(t, 2, median([]int{1, 2, 3, 4}))
}

func TestSuggestionThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		growth     float64
		rate       float64
		avgComm    float64
		wantCount  int
		wantFirst  string
	}{
		{"all healthy", 0.15, 0.8, 2500, 2, "Enhance Sales Technique"},
		{"low rate only", 0.15, 0.6, 2500, 3, "Improve Approval Rate"},
		{"low growth only", 0.05, 0.8, 2500, 3, "Increase Sales Volume"},
		{"low commission only", 0.15, 0.8, 1500, 3, "Optimize Product Mix"},
		{"everything low", 0.02, 0.5, 900, 5, "Improve Approval Rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Suggestions(tt.growth, tt.rate, tt.avgComm)
			require.Len(t, got, tt.wantCount)
			assert.Equal(t, tt.wantFirst, got[0].Category)
			// Generic suggestions always close the list.
			assert.Equal(t, "Use Data-Driven Insights", got[len(got)-1].Category)
		})
	}
}

func TestStandaloneSuggestions(t *testing.T) {
	t.Parallel()

	// No history: defaults (growth 0.05, rate 0.5, commission 1000)
	// trigger all three threshold suggestions.
	assert.Len(t, StandaloneSuggestions(nil), 5)

	// Strong history: high rate and commission, but flat growth keeps the
	// volume suggestion.
	var sales []model.SaleRecord
	sales = append(sales, monthSales("A1", 2024, time.January, 6, 6, 3000)...)
	sales = append(sales, monthSales("A1", 2024, time.February, 6, 6, 3000)...)
	got := StandaloneSuggestions(sales)
	assert.Len(t, got, 3)
	assert.Equal(t, "Increase Sales Volume", got[0].Category)
}
