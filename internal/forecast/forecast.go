// Package forecast projects an agent's monthly sales and commission forward
// from historical trend, with a benchmark-based path for agents who have no
// usable history yet.
package forecast

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/aggregate"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/metrics"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// Projection bounds and defaults.
const (
	defaultGrowth     = 0.05
	growthFloor       = -0.10
	growthCeil        = 0.30
	noiseStd          = 0.05
	noisyGrowthFloor  = -0.15
	noisyGrowthCeil   = 0.35
	outlierQuantile   = 0.05

	newAgentGrowth      = 0.20
	newAgentGrowthDecay = 0.03
	newAgentGrowthFloor = 0.05
	defaultFirstMonth   = 5
	defaultSuccessRate  = 0.5
	defaultCommission   = 1000.0
)

// Month is one historical or projected month.
type Month struct {
	Month                string  `json:"month"`
	TotalSales           int     `json:"total_sales"`
	SuccessfulSales      int     `json:"successful_sales"`
	SuccessRate          float64 `json:"success_rate"`
	Commission           float64 `json:"commission"`
	AvgCommission        float64 `json:"avg_commission,omitempty"`
	CumulativeCommission float64 `json:"cumulative_commission,omitempty"`
}

// Summary aggregates a forecast horizon.
type Summary struct {
	ForecastMonths          int     `json:"forecast_months"`
	TotalForecastSales      int     `json:"total_forecast_sales"`
	TotalForecastCommission float64 `json:"total_forecast_commission"`
	AvgMonthlyCommission    float64 `json:"avg_monthly_commission"`
	ProjectedGrowth         float64 `json:"projected_growth"`
}

// Result is a complete forecast: history, projection, summary, and the
// optimization suggestions derived from the same numbers.
type Result struct {
	Agent        *model.Agent `json:"agent_info,omitempty"`
	Historical   []Month      `json:"historical"`
	Forecast     []Month      `json:"forecast"`
	Summary      Summary      `json:"summary"`
	Optimization []Suggestion `json:"optimization"`
	NewAgent     bool         `json:"new_agent"`
}

// Engine projects forecasts. The random source drives the per-month growth
// noise; now supplies the anchor date for new-agent projections. Both are
// injected so tests can pin them.
type Engine struct {
	rng *rand.Rand
	now func() time.Time
}

// NewEngine builds an Engine. A nil now defaults to time.Now.
func NewEngine(rng *rand.Rand, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{rng: rng, now: now}
}

// Forecast projects months ahead for the agent. Fewer than two dated
// historical months routes to the new-agent path.
func (e *Engine) Forecast(sales []model.SaleRecord, agent *model.Agent, agentID string, months int) *Result {
	agentSales := aggregate.FilterByAgent(sales, agentID)
	monthly := monthlySeries(agentSales)
	if len(monthly) < 2 {
		return e.newAgentForecast(sales, agent, months)
	}

	growth := trimmedMeanGrowth(monthly)
	rate, avgComm := recencyWeighted(monthly)

	last := monthly[len(monthly)-1]
	lastDate, err := time.Parse("2006-01", last.Month)
	if err != nil {
		return e.newAgentForecast(sales, agent, months)
	}

	projection := e.project(last.TotalSales, lastDate, growth, rate, avgComm, months)

	res := &Result{
		Agent:      agent,
		Historical: monthly,
		Forecast:   projection,
		Summary:    summarize(projection, months, growth),
		NewAgent:   false,
	}
	res.Optimization = Suggestions(growth, rate, avgComm)
	return res
}

// project rolls total sales forward with bounded noisy growth.
func (e *Engine) project(prevSales int, lastDate time.Time, growth, rate, avgComm float64, months int) []Month {
	base := metrics.Clamp(growth, growthFloor, growthCeil)
	out := make([]Month, 0, months)
	var cumulative float64
	for i := 1; i <= months; i++ {
		adjusted := metrics.Clamp(base+e.rng.NormFloat64()*noiseStd, noisyGrowthFloor, noisyGrowthCeil)
		total := int(math.Round(float64(prevSales) * (1 + adjusted)))
		if total < 1 {
			total = 1
		}
		successful := int(math.Round(float64(total) * rate))
		commission := float64(successful) * avgComm
		cumulative += commission
		out = append(out, Month{
			Month:                lastDate.AddDate(0, i, 0).Format("January 2006"),
			TotalSales:           total,
			SuccessfulSales:      successful,
			SuccessRate:          rate,
			Commission:           commission,
			CumulativeCommission: cumulative,
		})
		prevSales = total
	}
	return out
}

// newAgentForecast benchmarks against the network: median first-month
// volume, network success rate and commission, and a 20% growth rate that
// decays 3 points a month down to 5%.
func (e *Engine) newAgentForecast(sales []model.SaleRecord, agent *model.Agent, months int) *Result {
	rate, avgComm, firstMonth := networkBenchmarks(sales)

	anchor := e.now()
	start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)

	out := make([]Month, 0, months)
	total := firstMonth
	growth := newAgentGrowth
	var cumulative float64
	for i := 1; i <= months; i++ {
		successful := int(math.Round(float64(total) * rate))
		commission := float64(successful) * avgComm
		cumulative += commission
		out = append(out, Month{
			Month:                start.AddDate(0, i, 0).Format("January 2006"),
			TotalSales:           total,
			SuccessfulSales:      successful,
			SuccessRate:          rate,
			Commission:           commission,
			CumulativeCommission: cumulative,
		})
		next := int(math.Round(float64(total) * (1 + growth)))
		if next < 1 {
			next = 1
		}
		total = next
		growth = math.Max(newAgentGrowthFloor, growth-newAgentGrowthDecay)
	}

	return &Result{
		Agent:        agent,
		Historical:   []Month{},
		Forecast:     out,
		Summary:      summarize(out, months, newAgentGrowth),
		Optimization: NewAgentSuggestions(),
		NewAgent:     true,
	}
}

// monthlySeries folds an agent's sales into chronologically ordered Month
// rows.
func monthlySeries(agentSales []model.SaleRecord) []Month {
	byMonth := aggregate.ByMonth(agentSales)
	keys := byMonth.SortedKeys()
	out := make([]Month, 0, len(keys))
	for _, k := range keys {
		r := byMonth.Get(k)
		out = append(out, Month{
			Month:           k,
			TotalSales:      r.Count,
			SuccessfulSales: r.SuccessCount,
			SuccessRate:     r.SuccessRate(),
			Commission:      r.CommissionSum,
			AvgCommission:   r.AvgCommission(),
		})
	}
	return out
}

// trimmedMeanGrowth averages month-over-month sales growth after dropping
// values outside the 5th..95th percentile band.
func trimmedMeanGrowth(monthly []Month) float64 {
	var rates []float64
	for i := 1; i < len(monthly); i++ {
		rates = append(rates, metrics.GrowthRate(
			float64(monthly[i].TotalSales), float64(monthly[i-1].TotalSales)))
	}
	if len(rates) == 0 {
		return defaultGrowth
	}

	sorted := append([]float64{}, rates...)
	sort.Float64s(sorted)
	lo := quantile(sorted, outlierQuantile)
	hi := quantile(sorted, 1-outlierQuantile)

	var sum float64
	var n int
	for _, r := range rates {
		if r >= lo && r <= hi {
			sum += r
			n++
		}
	}
	if n == 0 {
		return defaultGrowth
	}
	return sum / float64(n)
}

// recencyWeighted averages monthly success rates and commissions with
// weights rising linearly from 0.5 on the oldest month to 1.0 on the newest.
func recencyWeighted(monthly []Month) (rate, avgComm float64) {
	n := len(monthly)
	var wsum, rsum, csum float64
	for i, m := range monthly {
		w := 0.5
		if n > 1 {
			w = 0.5 + 0.5*float64(i)/float64(n-1)
		}
		wsum += w
		rsum += w * m.SuccessRate
		csum += w * m.AvgCommission
	}
	return rsum / wsum, csum / wsum
}

// networkBenchmarks derives the new-agent defaults from network data:
// overall success rate, average commission over successful sales, and the
// median of each agent's first active month's sale count.
func networkBenchmarks(sales []model.SaleRecord) (rate, avgComm float64, firstMonth int) {
	rate, avgComm, firstMonth = defaultSuccessRate, defaultCommission, defaultFirstMonth
	if len(sales) == 0 {
		return rate, avgComm, firstMonth
	}

	var successes int
	var commissionSum float64
	for _, s := range sales {
		if s.Success {
			successes++
			commissionSum += s.Commission
		}
	}
	rate = metrics.SuccessRate(successes, len(sales))
	if successes > 0 {
		avgComm = commissionSum / float64(successes)
	}

	byAgent := aggregate.ByAgent(sales)
	var firsts []int
	for _, id := range byAgent.Keys() {
		monthly := aggregate.ByMonth(aggregate.FilterByAgent(sales, id))
		keys := monthly.SortedKeys()
		if len(keys) > 0 {
			firsts = append(firsts, monthly.Get(keys[0]).Count)
		}
	}
	if len(firsts) > 0 {
		firstMonth = median(firsts)
	}
	return rate, avgComm, firstMonth
}

func summarize(projection []Month, months int, growth float64) Summary {
	s := Summary{ForecastMonths: months, ProjectedGrowth: growth}
	for _, m := range projection {
		s.TotalForecastSales += m.TotalSales
		s.TotalForecastCommission += m.Commission
	}
	if months > 0 {
		s.AvgMonthlyCommission = s.TotalForecastCommission / float64(months)
	}
	return s
}

// quantile interpolates linearly over a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func median(vals []int) int {
	sorted := append([]int{}, vals...)
	sort.Ints(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
