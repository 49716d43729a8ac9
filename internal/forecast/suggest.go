package forecast

import (
	"fmt"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/metrics"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// Suggestion thresholds.
const (
	lowSuccessRate   = 0.70
	lowGrowthRate    = 0.10
	lowAvgCommission = 2000.0
)

// Suggestion is one optimization recommendation.
type Suggestion struct {
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Impact      string   `json:"impact"`
	ActionItems []string `json:"action_items"`
}

// Suggestions derives threshold-triggered recommendations from the agent's
// projected metrics. The triggers are independent; the two generic
// suggestions are always appended.
func Suggestions(growth, rate, avgCommission float64) []Suggestion {
	var out []Suggestion

	if rate < lowSuccessRate {
		out = append(out, Suggestion{
			Category: "Improve Approval Rate",
			Description: fmt.Sprintf(
				"Your current approval rate of %.1f%% can be improved. Better pre-screening of customers can increase this to 70-80%%.",
				rate*100),
			Impact: "Increasing your approval rate to 70% could boost your monthly commission by approximately 20%.",
			ActionItems: []string{
				"Pre-check customer credit scores before application",
				"Verify income documents thoroughly",
				"Match customers with cards they're most likely to qualify for",
				"Run the success predictor before submitting applications",
			},
		})
	}

	if growth < lowGrowthRate {
		out = append(out, Suggestion{
			Category: "Increase Sales Volume",
			Description: fmt.Sprintf(
				"Your current monthly growth rate of %.1f%% is relatively low. Increasing your prospecting activities can accelerate growth.",
				growth*100),
			Impact: "Increasing your monthly applications by 20% could lead to a corresponding increase in commission.",
			ActionItems: []string{
				"Set a daily target for new lead contacts",
				"Use the lead recommender to identify high-potential customers",
				"Follow up with past customers for referrals",
				"Explore untapped customer segments in your network",
			},
		})
	}

	if avgCommission < lowAvgCommission {
		out = append(out, Suggestion{
			Category:    "Optimize Product Mix",
			Description: "You can increase your average commission by focusing on higher-value cards.",
			Impact: fmt.Sprintf(
				"Increasing your average commission from Rs.%.0f to Rs.2,500 could boost your earnings by 25%% or more.",
				avgCommission),
			ActionItems: []string{
				"Prioritize premium cards with higher commission rates",
				"Look for cards with joining fee waiver offers to boost approval rates",
				"Focus on customers with higher income levels who qualify for premium cards",
				"Use the card recommender to identify the highest-commission cards for your customer base",
			},
		})
	}

	out = append(out,
		Suggestion{
			Category:    "Enhance Sales Technique",
			Description: "Refine your sales approach to increase conversion rates.",
			Impact:      "Effective sales techniques can boost both your sales volume and approval rate.",
			ActionItems: []string{
				"Use personalized sales scripts for each card type",
				"Practice objection handling for common customer concerns",
				"Focus on card benefits most relevant to each customer",
				"Proactively address potential rejection reasons before submission",
			},
		},
		Suggestion{
			Category:    "Use Data-Driven Insights",
			Description: "Let the numbers point you at the best opportunities.",
			Impact:      "Data-driven sales strategies can increase your efficiency and earnings.",
			ActionItems: []string{
				"Review your performance dashboard weekly to track progress",
				"Use the lead recommender to prioritize high-probability prospects",
				"Check success predictor scores before submitting applications",
				"Experiment with different card types and customer segments to find your sweet spot",
			},
		},
	)
	return out
}

// NewAgentSuggestions is the fixed onboarding playlist for agents with no
// history.
func NewAgentSuggestions() []Suggestion {
	return []Suggestion{
		{
			Category:    "Build Strong Foundation",
			Description: "As a new partner, focus on building a solid foundation in your first few months.",
			Impact:      "A strong start can accelerate your earnings trajectory and build momentum.",
			ActionItems: []string{
				"Complete all available training modules",
				"Start with easier-to-sell products to build confidence",
				"Target family and friends as your first customers",
				"Practice your pitch until you can deliver it naturally",
			},
		},
		{
			Category:    "Use Coaching Tools from Day One",
			Description: "Lean on the sales coach to skip the learning curve.",
			Impact:      "New partners who use the coaching tools typically reach profitability faster.",
			ActionItems: []string{
				"Run the success predictor before submitting any application",
				"Follow leads suggested by the lead recommender",
				"Use pre-generated sales scripts for each card type",
				"Track your weekly performance to identify improvement areas early",
			},
		},
		{
			Category:    "Set Achievable Goals",
			Description: "Set clear, measurable goals for your first three months.",
			Impact:      "Goal-oriented agents typically outperform their peers by 30% or more.",
			ActionItems: []string{
				"Aim for at least 5 applications in your first month",
				"Target a 50% approval rate from the beginning",
				"Set a goal to learn one new product category each week",
				"Challenge yourself to increase your sales by 20% each month",
			},
		},
	}
}

// StandaloneSuggestions computes the suggestion inputs from an agent's raw
// history when no forecast was run: overall success rate and commission plus
// untrimmed mean monthly growth. An empty history falls back to the default
// benchmarks.
func StandaloneSuggestions(agentSales []model.SaleRecord) []Suggestion {
	if len(agentSales) == 0 {
		return Suggestions(defaultGrowth, defaultSuccessRate, defaultCommission)
	}

	var successful int
	var commissionSum float64
	for _, s := range agentSales {
		if s.Success {
			successful++
		}
		commissionSum += s.Commission
	}
	rate := metrics.SuccessRate(successful, len(agentSales))
	avgComm := metrics.AvgCommission(commissionSum, successful)

	growth := defaultGrowth
	monthly := monthlySeries(agentSales)
	if len(monthly) >= 2 {
		var sum float64
		for i := 1; i < len(monthly); i++ {
			sum += metrics.GrowthRate(float64(monthly[i].TotalSales), float64(monthly[i-1].TotalSales))
		}
		growth = sum / float64(len(monthly)-1)
	}
	return Suggestions(growth, rate, avgComm)
}
