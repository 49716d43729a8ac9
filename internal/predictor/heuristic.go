package predictor

import (
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/metrics"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// DefaultCommission is the expected commission when no model was ever
// trained and no trailing average exists.
const DefaultCommission = 1000.0

// HeuristicProbability is the closed-form approval estimate used whenever
// the fitted model is unavailable. It blends credit score, income, and age
// into a probability bounded to [0.1, 0.9].
func HeuristicProbability(c model.Customer) float64 {
	credit := metrics.Clamp((float64(c.CreditScoreOrDefault())-600)/300, 0, 1)
	income := metrics.Clamp((c.IncomeOrDefault()-200000)/800000, 0, 1)
	age := ageFactor(c.AgeOrDefault())
	return metrics.Clamp(0.3+0.3*credit+0.3*income+0.1*age, 0.1, 0.9)
}

func ageFactor(age int) float64 {
	switch {
	case age < 21:
		return 0.5
	case age < 25:
		return 0.8
	case age <= 55:
		return 1.0
	case age <= 65:
		return 0.9
	default:
		return 0.7
	}
}
