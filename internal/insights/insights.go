package insights

import (
	"fmt"
	"sort"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/metrics"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// Benchmark bands: differences inside the band are treated as noise.
const (
	rateBand       = 0.05
	commissionBand = 200.0

	concentrationShare = 0.7
	bestCardRate       = 0.6
	bestCardMinSales   = 3
	poorCardRate       = 0.4
	poorCardMinSales   = 5
	trendWindow        = 3
	trendBand          = 0.1
)

// Insights is the narrative summary generated for an agent.
type Insights struct {
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	Recommendations     []string `json:"recommendations"`
}

// Generate compares the agent's performance report against network-wide
// numbers and emits strengths, improvement areas, and recommendations.
func Generate(p *Performance, sales []model.SaleRecord) *Insights {
	var networkSuccesses int
	var networkCommission float64
	for _, s := range sales {
		if s.Success {
			networkSuccesses++
		}
		networkCommission += s.Commission
	}
	networkRate := metrics.SuccessRate(networkSuccesses, len(sales))
	networkAvg := metrics.AvgCommission(networkCommission, networkSuccesses)

	ins := &Insights{}

	switch {
	case p.Overall.SuccessRate > networkRate+rateBand:
		ins.Strengths = append(ins.Strengths, fmt.Sprintf(
			"Your approval rate of %.1f%% is above the network average of %.1f%%, indicating strong customer qualification skills.",
			p.Overall.SuccessRate*100, networkRate*100))
	case p.Overall.SuccessRate < networkRate-rateBand:
		ins.AreasForImprovement = append(ins.AreasForImprovement, fmt.Sprintf(
			"Your approval rate of %.1f%% is below the network average of %.1f%%. Better pre-screening of customers could improve this metric.",
			p.Overall.SuccessRate*100, networkRate*100))
	}

	switch {
	case p.Overall.AvgCommission > networkAvg+commissionBand:
		ins.Strengths = append(ins.Strengths, fmt.Sprintf(
			"Your average commission of Rs.%.0f is higher than the network average of Rs.%.0f, showing good focus on higher-value cards.",
			p.Overall.AvgCommission, networkAvg))
	case p.Overall.AvgCommission < networkAvg-commissionBand:
		ins.AreasForImprovement = append(ins.AreasForImprovement, fmt.Sprintf(
			"Your average commission of Rs.%.0f is below the network average of Rs.%.0f. Focusing on premium cards could increase your earnings.",
			p.Overall.AvgCommission, networkAvg))
	}

	ins.analyzeCardMix(p)
	ins.analyzeTrend(p)
	ins.analyzeSegments(p)

	if len(ins.Recommendations) == 0 {
		ins.Recommendations = append(ins.Recommendations,
			"Analyze each customer's profile with the success predictor before application.",
			"Review the sales scripts for your most successful card types to refine your pitching approach.")
	}
	return ins
}

func (ins *Insights) analyzeCardMix(p *Performance) {
	if len(p.Cards) == 0 {
		return
	}

	top := p.Cards[0]
	if p.Overall.TotalSales > 0 && len(p.Cards) > 1 &&
		float64(top.TotalSales)/float64(p.Overall.TotalSales) > concentrationShare {
		ins.AreasForImprovement = append(ins.AreasForImprovement,
			"You're heavily focused on a single card type. Diversifying your product mix could increase your overall earnings.")
	}

	var best, poor []GroupPerformance
	for _, c := range p.Cards {
		if c.SuccessRate >= bestCardRate && c.TotalSales >= bestCardMinSales && c.AvgCommission > p.Overall.AvgCommission {
			best = append(best, c)
		}
		if c.SuccessRate < poorCardRate && c.TotalSales >= poorCardMinSales {
			poor = append(poor, c)
		}
	}
	for _, c := range capAt(best, 2) {
		ins.Recommendations = append(ins.Recommendations, fmt.Sprintf(
			"Increase focus on %s, which generates Rs.%.0f average commission with a %.1f%% success rate.",
			nameOrKey(c), c.AvgCommission, c.SuccessRate*100))
	}
	for _, c := range capAt(poor, 2) {
		ins.AreasForImprovement = append(ins.AreasForImprovement, fmt.Sprintf(
			"%s has a low approval rate of %.1f%%. Consider improving customer qualification or focusing on other products.",
			nameOrKey(c), c.SuccessRate*100))
	}
}

// analyzeTrend compares the most recent month's volume against three months
// back, with a 10% noise band.
func (ins *Insights) analyzeTrend(p *Performance) {
	if len(p.Monthly) < 2 {
		return
	}
	window := p.Monthly
	if len(window) > trendWindow {
		window = window[len(window)-trendWindow:]
	}
	first, last := window[0], window[len(window)-1]
	switch {
	case float64(last.TotalSales) > float64(first.TotalSales)*(1+trendBand):
		ins.Strengths = append(ins.Strengths, fmt.Sprintf(
			"Your sales volume is growing, with %d applications in your most recent month compared to %d three months ago.",
			last.TotalSales, first.TotalSales))
	case float64(last.TotalSales) < float64(first.TotalSales)*(1-trendBand):
		ins.AreasForImprovement = append(ins.AreasForImprovement, fmt.Sprintf(
			"Your sales volume has decreased from %d applications three months ago to %d in your most recent month.",
			first.TotalSales, last.TotalSales))
	}
}

func (ins *Insights) analyzeSegments(p *Performance) {
	var best []GroupPerformance
	for _, s := range p.Segments {
		if s.SuccessRate >= bestCardRate && s.TotalSales >= bestCardMinSales {
			best = append(best, s)
		}
	}
	if len(best) == 0 {
		return
	}
	sort.SliceStable(best, func(i, j int) bool { return best[i].SuccessRate > best[j].SuccessRate })
	ins.Recommendations = append(ins.Recommendations, fmt.Sprintf(
		"Focus on the %s income segment, where you have a %.1f%% approval rate.",
		best[0].Key, best[0].SuccessRate*100))
}

func nameOrKey(g GroupPerformance) string {
	if g.Name != "" {
		return g.Name
	}
	return g.Key
}

func capAt(gs []GroupPerformance, n int) []GroupPerformance {
	if len(gs) > n {
		return gs[:n]
	}
	return gs
}
