// Package leads synthesizes plausible customer profiles matched to an
// agent's strongest cards and segments, scores them through the predictors,
// and ranks the survivors.
package leads

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/aggregate"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// Keep thresholds for synthesized leads.
const (
	minProbability         = 0.4
	minProbabilityNewAgent = 0.5

	bestCardMinSales     = 3
	bestCardMinRate      = 0.5
	bestCardCount        = 3
	newAgentLeadsPerCard = 2
)

// Prediction is the scored outcome for one customer+card pair.
// ExpectedCommission is nil when the commission model is not trained.
type Prediction struct {
	SuccessProbability float64     `json:"success_probability"`
	ExpectedCommission *float64    `json:"expected_commission"`
	KeyFactors         []KeyFactor `json:"key_factors"`
}

// PredictFunc scores a synthesized profile against a card.
type PredictFunc func(c model.Customer, card model.CardProduct) Prediction

// Candidate is one recommended lead.
type Candidate struct {
	Name               string         `json:"name"`
	ContactNumber      string         `json:"contact_number"`
	Email              string         `json:"email"`
	Customer           model.Customer `json:"customer"`
	CardID             string         `json:"card_id"`
	CardName           string         `json:"card_name"`
	SuccessProbability float64        `json:"success_probability"`
	ExpectedCommission *float64       `json:"expected_commission"`
	KeyFactors         []KeyFactor    `json:"key_factors"`
}

// Generator synthesizes and ranks leads. The random source is injected so
// callers can fix the seed.
type Generator struct {
	rng     *rand.Rand
	predict PredictFunc
}

// NewGenerator builds a Generator around a random source and a scoring
// function.
func NewGenerator(rng *rand.Rand, predict PredictFunc) *Generator {
	return &Generator{rng: rng, predict: predict}
}

// Recommend produces up to limit leads for the agent. Agents with history
// get leads against their own best cards and strongest segments; new agents
// get leads against the network's most approvable cards.
func (g *Generator) Recommend(sales []model.SaleRecord, cards []model.CardProduct, agentID string, limit int) []Candidate {
	if len(cards) == 0 {
		return nil
	}
	byID := make(map[string]model.CardProduct, len(cards))
	for _, c := range cards {
		byID[c.CardID] = c
	}

	agentSales := aggregate.FilterByAgent(sales, agentID)
	if len(agentSales) == 0 {
		return g.recommendForNewAgent(sales, cards, byID, limit)
	}

	cardIDs := bestAgentCards(agentSales)
	if len(cardIDs) == 0 {
		cardIDs = topNetworkCards(sales)
	}
	bestSegments := bestGroups(aggregate.ByIncomeSegment(agentSales))
	bestEmployments := bestGroups(aggregate.ByEmployment(agentSales))

	perCard := 1
	if len(cardIDs) > 0 && limit/len(cardIDs) > 1 {
		perCard = limit / len(cardIDs)
	}

	var out []Candidate
	for _, id := range cardIDs {
		card, ok := byID[id]
		if !ok {
			continue
		}
		for i := 0; i < perCard; i++ {
			cand := g.synthesize(card, bestSegments, bestEmployments)
			pred := g.predict(cand.Customer, card)
			if pred.SuccessProbability < minProbability {
				continue
			}
			cand.SuccessProbability = pred.SuccessProbability
			cand.ExpectedCommission = pred.ExpectedCommission
			cand.KeyFactors = pred.KeyFactors
			out = append(out, cand)
		}
	}
	return rankAndTrim(out, limit)
}

func (g *Generator) recommendForNewAgent(sales []model.SaleRecord, cards []model.CardProduct, byID map[string]model.CardProduct, limit int) []Candidate {
	var out []Candidate
	for _, id := range beginnerCards(sales) {
		card, ok := byID[id]
		if !ok {
			continue
		}
		for i := 0; i < newAgentLeadsPerCard; i++ {
			cand := g.synthesize(card, nil, nil)
			pred := g.predict(cand.Customer, card)
			if pred.SuccessProbability < minProbabilityNewAgent {
				continue
			}
			cand.SuccessProbability = pred.SuccessProbability
			cand.ExpectedCommission = pred.ExpectedCommission
			cand.KeyFactors = pred.KeyFactors
			out = append(out, cand)
		}
	}
	return rankAndTrim(out, limit)
}

// bestAgentCards ranks the agent's own cards with at least 3 sales and a
// success rate of 0.5 or better by total commission, top 3.
func bestAgentCards(agentSales []model.SaleRecord) []string {
	byCard := aggregate.ByCard(agentSales)
	var ids []string
	for _, id := range byCard.Keys() {
		r := byCard.Get(id)
		if r.Count >= bestCardMinSales && r.SuccessRate() >= bestCardMinRate {
			ids = append(ids, id)
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return byCard.Get(ids[i]).CommissionSum > byCard.Get(ids[j]).CommissionSum
	})
	if len(ids) > bestCardCount {
		ids = ids[:bestCardCount]
	}
	return ids
}

// topNetworkCards ranks all cards by success rate, then average commission.
func topNetworkCards(sales []model.SaleRecord) []string {
	byCard := aggregate.ByCard(sales)
	ids := append([]string{}, byCard.Keys()...)
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := byCard.Get(ids[i]), byCard.Get(ids[j])
		if a.SuccessRate() != b.SuccessRate() {
			return a.SuccessRate() > b.SuccessRate()
		}
		return a.AvgCommission() > b.AvgCommission()
	})
	if len(ids) > bestCardCount {
		ids = ids[:bestCardCount]
	}
	return ids
}

// beginnerCards ranks cards for a new agent: approval rate carries 70% of
// the weight, normalized commission 30%.
func beginnerCards(sales []model.SaleRecord) []string {
	byCard := aggregate.ByCard(sales)
	var maxAvg float64
	for _, id := range byCard.Keys() {
		if avg := byCard.Get(id).AvgCommission(); avg > maxAvg {
			maxAvg = avg
		}
	}
	score := func(id string) float64 {
		r := byCard.Get(id)
		s := 0.7 * r.SuccessRate()
		if maxAvg > 0 {
			s += 0.3 * r.AvgCommission() / maxAvg
		}
		return s
	}
	ids := append([]string{}, byCard.Keys()...)
	sort.SliceStable(ids, func(i, j int) bool { return score(ids[i]) > score(ids[j]) })
	if len(ids) > bestCardCount {
		ids = ids[:bestCardCount]
	}
	return ids
}

// bestGroups filters a rollup to groups with at least 3 records and a
// success rate of 0.5 or better, strongest first.
func bestGroups(g *aggregate.Grouped) []string {
	var keys []string
	for _, k := range g.Keys() {
		r := g.Get(k)
		if r.Count >= bestCardMinSales && r.SuccessRate() >= bestCardMinRate {
			keys = append(keys, k)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return g.Get(keys[i]).SuccessRate() > g.Get(keys[j]).SuccessRate()
	})
	return keys
}

func rankAndTrim(out []Candidate, limit int) []Candidate {
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := commissionOrZero(out[i]), commissionOrZero(out[j])
		if ci != cj {
			return ci > cj
		}
		return out[i].SuccessProbability > out[j].SuccessProbability
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func commissionOrZero(c Candidate) float64 {
	if c.ExpectedCommission == nil {
		return 0
	}
	return *c.ExpectedCommission
}

// synthesize draws one customer profile consistent with the card's
// eligibility and the agent's strongest segments and employment types.
func (g *Generator) synthesize(card model.CardProduct, bestSegments, bestEmployments []string) Candidate {
	minIncome := card.MinIncome()

	var income float64
	if len(bestSegments) > 0 {
		income = g.segmentIncome(bestSegments[g.rng.Intn(len(bestSegments))], minIncome)
	} else {
		income = minIncome * g.uniform(1.1, 2.5)
	}

	var emp model.EmploymentType
	switch {
	case len(bestEmployments) > 0:
		emp = model.EmploymentType(bestEmployments[g.rng.Intn(len(bestEmployments))])
	case card.HasKeyword("business"):
		emp = g.pick(model.EmploymentBusiness, model.EmploymentSelfEmployed)
	case card.HasKeyword("corporate"):
		emp = model.EmploymentSalaried
	case card.HasKeyword("student"):
		emp = g.pick(model.EmploymentStudent, model.EmploymentSalaried)
	default:
		emp = g.pick(model.EmploymentSalaried, model.EmploymentSelfEmployed, model.EmploymentBusiness)
	}

	var age int
	switch {
	case emp == model.EmploymentStudent:
		age = g.randInt(21, 28)
	case emp == model.EmploymentBusiness || emp == model.EmploymentSelfEmployed:
		age = g.randInt(30, 55)
	case card.HasKeyword("premium", "elite"):
		age = g.randInt(35, 65)
	default:
		age = g.randInt(25, 50)
	}

	var score int
	if card.HasKeyword("premium", "elite", "platinum") {
		score = g.randInt(700, 900)
	} else {
		score = g.randInt(650, 850)
	}

	return Candidate{
		Name:          fmt.Sprintf("Lead %d", g.randInt(1000, 9999)),
		ContactNumber: fmt.Sprintf("+91 9%09d", g.rng.Intn(900000000)+100000000),
		Email:         fmt.Sprintf("lead%d@example.com", g.randInt(1000, 9999)),
		CardID:        card.CardID,
		CardName:      card.Name,
		Customer: model.Customer{
			Age:            &age,
			Income:         &income,
			EmploymentType: &emp,
			CreditScore:    &score,
		},
	}
}

// segmentIncome draws an income within the given segment's band, falling
// back to a buffer above the card minimum when the band is unusable.
func (g *Generator) segmentIncome(segment string, minIncome float64) float64 {
	var lo, hi float64
	switch model.IncomeSegment(segment) {
	case model.SegmentLow:
		lo, hi = minIncome, 300000
	case model.SegmentMedium:
		lo, hi = 300001, 600000
	case model.SegmentHigh:
		lo, hi = 600001, 1000000
	case model.SegmentVeryHigh:
		lo, hi = 1000001, 3000000
	}
	if hi <= lo {
		return minIncome * g.uniform(1.1, 2.0)
	}
	return float64(g.randInt(int(lo), int(hi)))
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) randInt(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) pick(opts ...model.EmploymentType) model.EmploymentType {
	return opts[g.rng.Intn(len(opts))]
}
