package predictor

import (
	"math"
	"sort"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// featureSpec fixes the feature layout a model was fit on: standardized
// numeric columns followed by one-hot employment and card columns. The spec
// is persisted with the weights so a reloaded model sees the same layout.
type featureSpec struct {
	Numeric     []string  `json:"numeric"`
	Employments []string  `json:"employments"`
	Cards       []string  `json:"cards"`
	Means       []float64 `json:"means"`
	Stds        []float64 `json:"stds"`
}

var numericFeatures = []string{"age", "income", "credit_score"}

// Names lists every feature column in vector order.
func (s *featureSpec) Names() []string {
	out := make([]string, 0, s.Width())
	out = append(out, s.Numeric...)
	for _, e := range s.Employments {
		out = append(out, "employment_type="+e)
	}
	for _, c := range s.Cards {
		out = append(out, "card_id="+c)
	}
	return out
}

// Width is the length of a feature vector under this spec.
func (s *featureSpec) Width() int {
	return len(s.Numeric) + len(s.Employments) + len(s.Cards)
}

// Vector encodes a customer+card pair. Missing customer fields take the
// documented defaults; an unseen employment or card encodes as all zeros.
func (s *featureSpec) Vector(c model.Customer, cardID string) []float64 {
	v := make([]float64, 0, s.Width())
	raw := []float64{
		float64(c.AgeOrDefault()),
		c.IncomeOrDefault(),
		float64(c.CreditScoreOrDefault()),
	}
	for i := range s.Numeric {
		std := s.Stds[i]
		if std == 0 {
			std = 1
		}
		v = append(v, (raw[i]-s.Means[i])/std)
	}
	emp := string(c.EmploymentOrDefault())
	for _, e := range s.Employments {
		if e == emp {
			v = append(v, 1)
		} else {
			v = append(v, 0)
		}
	}
	for _, id := range s.Cards {
		if id == cardID {
			v = append(v, 1)
		} else {
			v = append(v, 0)
		}
	}
	return v
}

// buildSpec derives the feature layout from training records: numeric
// means/stds plus the observed employment and card categories.
func buildSpec(records []model.SaleRecord) *featureSpec {
	spec := &featureSpec{Numeric: numericFeatures}

	empSet := map[string]struct{}{}
	cardSet := map[string]struct{}{}
	sums := make([]float64, len(numericFeatures))
	for _, r := range records {
		empSet[string(r.Customer.EmploymentOrDefault())] = struct{}{}
		if r.CardID != "" {
			cardSet[r.CardID] = struct{}{}
		}
		sums[0] += float64(r.Customer.AgeOrDefault())
		sums[1] += r.Customer.IncomeOrDefault()
		sums[2] += float64(r.Customer.CreditScoreOrDefault())
	}
	n := float64(len(records))
	spec.Means = make([]float64, len(numericFeatures))
	for i := range sums {
		spec.Means[i] = sums[i] / n
	}

	spec.Stds = make([]float64, len(numericFeatures))
	for _, r := range records {
		raw := []float64{
			float64(r.Customer.AgeOrDefault()),
			r.Customer.IncomeOrDefault(),
			float64(r.Customer.CreditScoreOrDefault()),
		}
		for i := range raw {
			d := raw[i] - spec.Means[i]
			spec.Stds[i] += d * d
		}
	}
	for i := range spec.Stds {
		spec.Stds[i] = math.Sqrt(spec.Stds[i] / n)
	}

	spec.Employments = sortedKeys(empSet)
	spec.Cards = sortedKeys(cardSet)
	return spec
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
