package model

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultMinIncome is assumed when a card's eligibility text carries no
// parseable income threshold.
const DefaultMinIncome = 300000.0

// CardProduct is one credit card in the catalog.
type CardProduct struct {
	CardID           string   `json:"card_id"`
	Name             string   `json:"name"`
	Issuer           string   `json:"issuer"`
	Type             string   `json:"type"`
	JoiningFee       float64  `json:"joining_fee"`
	AnnualFee        float64  `json:"annual_fee"`
	InterestRate     float64  `json:"interest_rate"`
	Eligibility      string   `json:"eligibility"`
	RewardRate       float64  `json:"reward_rate"`
	CreditLimitRange string   `json:"credit_limit_range"`
	Benefits         []string `json:"benefits"`
	FeatureSummary   string   `json:"feature_summary"`
}

var incomeThresholdRe = regexp.MustCompile(`>\s*([0-9][0-9,]*)`)

// MinIncome extracts the minimum-income threshold from the card's free-text
// eligibility line (e.g. "Income > 500000"). Unparseable text yields the
// 300000 default, never an error.
func (c CardProduct) MinIncome() float64 {
	m := incomeThresholdRe.FindStringSubmatch(c.Eligibility)
	if m == nil {
		return DefaultMinIncome
	}
	raw := strings.ReplaceAll(m[1], ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return DefaultMinIncome
	}
	return v
}

// HasKeyword reports whether the card name contains any of the given
// keywords, case-insensitive. Tier and audience checks all go through here.
func (c CardProduct) HasKeyword(keywords ...string) bool {
	name := strings.ToLower(c.Name)
	for _, kw := range keywords {
		if strings.Contains(name, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
