package leads

import (
	"fmt"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// KeyFactor is one rule-based explanation entry for a prediction.
type KeyFactor struct {
	Factor      string `json:"factor"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
}

const (
	impactPositive = "positive"
	impactNegative = "negative"
)

// KeyFactors derives the qualitative drivers behind a success probability:
// income against the card's minimum, credit score bands, employment match
// for business cards, and age fit for student/premium cards.
func KeyFactors(c model.Customer, card model.CardProduct, _ float64) []KeyFactor {
	var factors []KeyFactor

	minIncome := card.MinIncome()
	income := c.IncomeOrDefault()
	switch {
	case income < minIncome:
		factors = append(factors, KeyFactor{
			Factor: "Income below requirement",
			Impact: impactNegative,
			Description: fmt.Sprintf("Customer income (Rs.%.0f) is below the minimum requirement of Rs.%.0f",
				income, minIncome),
		})
	case income > 1.5*minIncome:
		factors = append(factors, KeyFactor{
			Factor: "Income well above requirement",
			Impact: impactPositive,
			Description: fmt.Sprintf("Customer income (Rs.%.0f) exceeds the minimum requirement of Rs.%.0f",
				income, minIncome),
		})
	}

	score := c.CreditScoreOrDefault()
	switch {
	case score < 650:
		factors = append(factors, KeyFactor{
			Factor:      "Low credit score",
			Impact:      impactNegative,
			Description: fmt.Sprintf("Credit score of %d is below the recommended minimum of 650", score),
		})
	case score >= 750:
		factors = append(factors, KeyFactor{
			Factor:      "Excellent credit score",
			Impact:      impactPositive,
			Description: fmt.Sprintf("Credit score of %d is excellent (750+)", score),
		})
	}

	emp := c.EmploymentOrDefault()
	if card.HasKeyword("business") {
		if emp == model.EmploymentBusiness || emp == model.EmploymentSelfEmployed {
			factors = append(factors, KeyFactor{
				Factor:      "Ideal employment type",
				Impact:      impactPositive,
				Description: fmt.Sprintf("%s employment type is perfect for this business card", emp),
			})
		} else {
			factors = append(factors, KeyFactor{
				Factor:      "Employment type mismatch",
				Impact:      impactNegative,
				Description: fmt.Sprintf("%s employment type is not ideal for a business card", emp),
			})
		}
	}

	age := c.AgeOrDefault()
	if card.HasKeyword("student") && age > 30 {
		factors = append(factors, KeyFactor{
			Factor:      "Age mismatch for student card",
			Impact:      impactNegative,
			Description: fmt.Sprintf("Customer age (%d) is outside typical range for student cards", age),
		})
	} else if card.HasKeyword("premium", "elite") && age < 30 {
		factors = append(factors, KeyFactor{
			Factor:      "Young age for premium card",
			Impact:      impactNegative,
			Description: fmt.Sprintf("Customer age (%d) is younger than typical premium card holders", age),
		})
	}

	return factors
}
