package coach

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/aggregate"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// CardAnalysis is the network-wide sales picture of one card.
type CardAnalysis struct {
	Card            model.CardProduct `json:"card"`
	Applications    int               `json:"applications"`
	Approvals       int               `json:"approvals"`
	SuccessRate     float64           `json:"success_rate"`
	TotalCommission float64           `json:"total_commission"`
	AvgCommission   float64           `json:"avg_commission"`
}

// AnalyzeCards reports network sales performance for every catalog card,
// sorted by total commission descending.
func (c *Coach) AnalyzeCards() []CardAnalysis {
	return c.analyze(c.cards)
}

// CompareCards reports the same analysis for a chosen set of card IDs.
// ErrCardNotFound when none of the IDs resolve; unknown IDs among known
// ones are skipped.
func (c *Coach) CompareCards(cardIDs []string) ([]CardAnalysis, error) {
	var picked []model.CardProduct
	for _, id := range cardIDs {
		if card, ok := c.cardByID(id); ok {
			picked = append(picked, card)
		}
	}
	if len(picked) == 0 {
		return nil, eris.Wrapf(ErrCardNotFound, "no card in %v", cardIDs)
	}
	return c.analyze(picked), nil
}

func (c *Coach) analyze(cards []model.CardProduct) []CardAnalysis {
	byCard := aggregate.ByCard(c.sales)

	out := make([]CardAnalysis, 0, len(cards))
	for _, card := range cards {
		r := byCard.Get(card.CardID)
		out = append(out, CardAnalysis{
			Card:            card,
			Applications:    r.Count,
			Approvals:       r.SuccessCount,
			SuccessRate:     r.SuccessRate(),
			TotalCommission: r.CommissionSum,
			AvgCommission:   r.AvgCommission(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalCommission > out[j].TotalCommission
	})
	return out
}
