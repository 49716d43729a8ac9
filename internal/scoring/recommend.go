package scoring

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// CardRecommendation is one ranked card with its generated pitch.
type CardRecommendation struct {
	CardID        string   `json:"card_id"`
	Name          string   `json:"name"`
	Issuer        string   `json:"issuer"`
	Type          string   `json:"type"`
	Score         float64  `json:"score"`
	SuccessRate   float64  `json:"success_rate"`
	AvgCommission float64  `json:"avg_commission"`
	AgentSales    int      `json:"agent_sales"`
	Benefits      []string `json:"benefits,omitempty"`
	Explanation   string   `json:"explanation"`
}

// Recommend returns the top-limit cards for the agent, sorted by fit score
// descending with catalog order breaking ties.
func Recommend(cards []model.CardProduct, sales []model.SaleRecord, agentID string, limit int) []CardRecommendation {
	if len(cards) == 0 {
		return nil
	}
	scores := FitScores(cards, sales, agentID)
	sortByScore(scores)
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}

	out := make([]CardRecommendation, 0, len(scores))
	for _, fs := range scores {
		out = append(out, CardRecommendation{
			CardID:        fs.Card.CardID,
			Name:          fs.Card.Name,
			Issuer:        fs.Card.Issuer,
			Type:          fs.Card.Type,
			Score:         fs.Score,
			SuccessRate:   fs.NetworkRate,
			AvgCommission: fs.NetworkAvg,
			AgentSales:    fs.AgentSales,
			Benefits:      fs.Card.Benefits,
			Explanation:   explain(fs),
		})
	}
	return out
}

var rupee = message.NewPrinter(language.English)

// explain assembles the recommendation pitch from the numbers that produced
// the score: network performance, the agent's own record when present, a
// fee talking point when a fee is waived, and the leading benefits.
func explain(fs FitScore) string {
	var parts []string

	parts = append(parts, rupee.Sprintf(
		"This card has a %.0f%% approval rate across the network with an average commission of Rs.%.0f per sale.",
		fs.NetworkRate*100, fs.NetworkAvg))

	if !fs.NewAgent && fs.AgentSales > 0 {
		parts = append(parts, rupee.Sprintf(
			"You have pitched it %d times with a %.0f%% success rate and Rs.%.0f average commission.",
			fs.AgentSales, fs.AgentRate*100, fs.AgentAvg))
	}

	switch {
	case fs.Card.JoiningFee == 0 && fs.Card.AnnualFee == 0:
		parts = append(parts, "No joining or annual fee makes it an easy first pitch.")
	case fs.Card.JoiningFee == 0:
		parts = append(parts, "Zero joining fee lowers the signup barrier.")
	case fs.Card.AnnualFee == 0:
		parts = append(parts, "Zero annual fee is a strong retention point.")
	}

	if len(fs.Card.Benefits) > 0 {
		highlights := fs.Card.Benefits
		if len(highlights) > 2 {
			highlights = highlights[:2]
		}
		parts = append(parts, fmt.Sprintf("Highlight %s when pitching.", strings.Join(highlights, " and ")))
	}

	return strings.Join(parts, " ")
}
