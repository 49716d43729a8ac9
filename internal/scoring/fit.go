// Package scoring ranks catalog cards for an agent by blending network-wide
// card performance with the agent's own track record.
package scoring

import (
	"sort"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/aggregate"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// Fit-score weights and bonus thresholds.
const (
	baseRateWeight       = 0.4
	baseCommissionWeight = 0.6

	beginnerRateWeight       = 0.7
	beginnerCommissionWeight = 0.3

	strongHistoryBonus   = 0.2
	weakHistoryPenalty   = -0.1
	strongRateThreshold  = 0.5
	weakRateThreshold    = 0.3
	weakPenaltyCardCount = 2
)

// FitScore is one card's computed fit for an agent, including the inputs
// the explanation layer reports.
type FitScore struct {
	Card        model.CardProduct
	Score       float64
	NetworkRate float64
	NetworkAvg  float64
	AgentSales  int
	AgentRate   float64
	AgentAvg    float64
	NewAgent    bool
}

// FitScores computes normalized [0,1] fit scores for every catalog card, in
// catalog order. Agents with no history get the beginner variant that
// weighs approval likelihood over earnings.
func FitScores(cards []model.CardProduct, sales []model.SaleRecord, agentID string) []FitScore {
	network := aggregate.ByCard(sales)
	agentSales := aggregate.FilterByAgent(sales, agentID)
	agentByCard := aggregate.ByCard(agentSales)
	newAgent := len(agentSales) == 0

	var maxAvg float64
	for _, c := range cards {
		if avg := network.Get(c.CardID).AvgCommission(); avg > maxAvg {
			maxAvg = avg
		}
	}

	scores := make([]FitScore, 0, len(cards))
	for _, c := range cards {
		net := network.Get(c.CardID)
		fs := FitScore{
			Card:        c,
			NetworkRate: net.SuccessRate(),
			NetworkAvg:  net.AvgCommission(),
			NewAgent:    newAgent,
		}
		var normAvg float64
		if maxAvg > 0 {
			normAvg = net.AvgCommission() / maxAvg
		}
		if newAgent {
			fs.Score = beginnerRateWeight*fs.NetworkRate + beginnerCommissionWeight*normAvg
		} else {
			fs.Score = baseRateWeight*fs.NetworkRate + baseCommissionWeight*normAvg
			if agentByCard.Has(c.CardID) {
				own := agentByCard.Get(c.CardID)
				fs.AgentSales = own.Count
				fs.AgentRate = own.SuccessRate()
				fs.AgentAvg = own.AvgCommission()
				fs.Score += agentBonus(own, agentByCard.Len())
			}
		}
		scores = append(scores, fs)
	}

	normalize(scores)
	return scores
}

// agentBonus rewards a proven personal record with a card and penalizes a
// weak one, but only when the agent has enough breadth for the weak signal
// to mean something.
func agentBonus(own aggregate.Rollup, distinctCards int) float64 {
	if own.SuccessRate() > strongRateThreshold && own.AvgCommission() > 0 {
		return strongHistoryBonus
	}
	if own.SuccessRate() < weakRateThreshold && distinctCards > weakPenaltyCardCount {
		return weakHistoryPenalty
	}
	return 0
}

// normalize min-max scales scores into [0,1] across the candidate set.
// A degenerate set where every raw score is equal collapses to all zeros.
func normalize(scores []FitScore) {
	if len(scores) == 0 {
		return
	}
	lo, hi := scores[0].Score, scores[0].Score
	for _, s := range scores[1:] {
		if s.Score < lo {
			lo = s.Score
		}
		if s.Score > hi {
			hi = s.Score
		}
	}
	span := hi - lo
	for i := range scores {
		if span == 0 {
			scores[i].Score = 0
		} else {
			scores[i].Score = (scores[i].Score - lo) / span
		}
	}
}

// sortByScore stable-sorts descending so ties keep catalog order.
func sortByScore(scores []FitScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
}
