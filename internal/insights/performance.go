// Package insights analyzes an individual agent's track record: rollups
// across cards, months, and income segments, plus narrative strengths and
// improvement areas benchmarked against the network.
package insights

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/aggregate"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/metrics"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// ErrNoSales signals an agent with no recorded sales.
var ErrNoSales = eris.New("insights: agent has no sales")

// Overall is an agent's whole-history rollup.
type Overall struct {
	TotalSales      int     `json:"total_sales"`
	SuccessfulSales int     `json:"successful_sales"`
	SuccessRate     float64 `json:"success_rate"`
	TotalCommission float64 `json:"total_commission"`
	AvgCommission   float64 `json:"avg_commission"`
}

// GroupPerformance is one card/month/segment line in a performance report.
type GroupPerformance struct {
	Key             string  `json:"key"`
	Name            string  `json:"name,omitempty"`
	Type            string  `json:"type,omitempty"`
	TotalSales      int     `json:"total_sales"`
	SuccessfulSales int     `json:"successful_sales"`
	SuccessRate     float64 `json:"success_rate"`
	Commission      float64 `json:"commission"`
	AvgCommission   float64 `json:"avg_commission"`
}

// Performance is the full per-agent analysis.
type Performance struct {
	Agent    *model.Agent       `json:"agent_info,omitempty"`
	Overall  Overall            `json:"overall"`
	Cards    []GroupPerformance `json:"card_performance"`
	Monthly  []GroupPerformance `json:"monthly_performance"`
	Segments []GroupPerformance `json:"segment_performance"`
}

// Analyze builds the performance report for agentID. ErrNoSales is returned
// when the agent has no history.
func Analyze(sales []model.SaleRecord, cards []model.CardProduct, agent *model.Agent, agentID string) (*Performance, error) {
	agentSales := aggregate.FilterByAgent(sales, agentID)
	if len(agentSales) == 0 {
		return nil, eris.Wrapf(ErrNoSales, "agent %s", agentID)
	}

	p := &Performance{Agent: agent}

	for _, s := range agentSales {
		p.Overall.TotalSales++
		if s.Success {
			p.Overall.SuccessfulSales++
		}
		p.Overall.TotalCommission += s.Commission
	}
	p.Overall.SuccessRate = metrics.SuccessRate(p.Overall.SuccessfulSales, p.Overall.TotalSales)
	p.Overall.AvgCommission = metrics.AvgCommission(p.Overall.TotalCommission, p.Overall.SuccessfulSales)

	cardNames := make(map[string]model.CardProduct, len(cards))
	for _, c := range cards {
		cardNames[c.CardID] = c
	}
	byCard := aggregate.ByCard(agentSales)
	for _, id := range byCard.Keys() {
		gp := groupLine(id, byCard.Get(id))
		if c, ok := cardNames[id]; ok {
			gp.Name = c.Name
			gp.Type = c.Type
		}
		p.Cards = append(p.Cards, gp)
	}
	sort.SliceStable(p.Cards, func(i, j int) bool {
		return p.Cards[i].Commission > p.Cards[j].Commission
	})

	byMonth := aggregate.ByMonth(agentSales)
	for _, m := range byMonth.SortedKeys() {
		p.Monthly = append(p.Monthly, groupLine(m, byMonth.Get(m)))
	}

	bySegment := aggregate.ByIncomeSegment(agentSales)
	for _, s := range bySegment.Keys() {
		p.Segments = append(p.Segments, groupLine(s, bySegment.Get(s)))
	}

	return p, nil
}

func groupLine(key string, r aggregate.Rollup) GroupPerformance {
	return GroupPerformance{
		Key:             key,
		TotalSales:      r.Count,
		SuccessfulSales: r.SuccessCount,
		SuccessRate:     r.SuccessRate(),
		Commission:      r.CommissionSum,
		AvgCommission:   r.AvgCommission(),
	}
}
