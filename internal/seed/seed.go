// Package seed generates realistic sample datasets for local development
// and demos: an agent roster, a card catalog, and a sales history whose
// incomes, success rates and commissions follow the card tiers.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// Options sizes the generated dataset.
type Options struct {
	Agents int
	Cards  int
	Sales  int
}

// DefaultOptions matches the sizes used by the bundled demo dataset.
func DefaultOptions() Options {
	return Options{Agents: 50, Cards: 20, Sales: 1000}
}

var cities = []string{
	"Mumbai", "Delhi", "Bengaluru", "Hyderabad", "Chennai",
	"Kolkata", "Pune", "Ahmedabad", "Jaipur", "Lucknow",
	"Kanpur", "Nagpur", "Indore", "Thane", "Bhopal",
	"Visakhapatnam", "Patna", "Vadodara", "Ghaziabad", "Ludhiana",
}

var cardTypes = []string{
	"Basic", "Gold", "Platinum", "Premium", "Business",
	"Student", "Travel", "Cashback", "Rewards",
}

var bankNames = []string{
	"State Bank", "HDFC Bank", "ICICI Bank", "Axis Bank", "Kotak Bank",
	"Yes Bank", "IndusInd Bank", "Federal Bank", "RBL Bank", "Citi Bank",
}

var benefitsPool = []string{
	"Lounge Access", "Reward Points", "Cashback", "Air Miles", "Hotel Discounts",
	"Travel Insurance", "Shopping Points", "EMI Offers", "Movie Tickets", "Fuel Surcharge Waiver",
	"Roadside Assistance", "Car Rental Discounts", "Dining Rewards", "Grocery Cashback",
	"Online Shopping Discounts", "Golf Program", "Concierge Service", "Airport Meet & Greet",
	"Zero Foreign Transaction Fee", "Global Emergency Assistance", "Lost Card Protection",
	"Extended Warranty", "Purchase Protection", "Price Protection", "Complimentary Airport Transfers",
}

var rejectionReasons = []string{
	"Low Credit Score", "Insufficient Income", "Incomplete Documentation",
	"High Debt-to-Income Ratio", "Employment Verification Failed", "Identity Verification Failed",
	"Existing Card Default", "Address Verification Failed", "Incorrect Information",
}

var employmentTypes = []model.EmploymentType{
	model.EmploymentSalaried, model.EmploymentSelfEmployed,
	model.EmploymentBusiness, model.EmploymentStudent,
}

// Generator produces datasets from a seeded random source, so the same
// seed always yields the same dataset.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator builds a Generator. A zero now defaults to the current time.
func NewGenerator(rng *rand.Rand, now time.Time) *Generator {
	if now.IsZero() {
		now = time.Now()
	}
	return &Generator{rng: rng, now: now}
}

// Generate builds a complete dataset sized by opts.
func (g *Generator) Generate(opts Options) ([]model.Agent, []model.CardProduct, []model.SaleRecord) {
	agents := g.Agents(opts.Agents)
	cards := g.Cards(opts.Cards)
	sales := g.Sales(agents, cards, opts.Sales)
	return agents, cards, sales
}

// Agents builds n roster entries with joining dates spread over the three
// years before now.
func (g *Generator) Agents(n int) []model.Agent {
	start := time.Date(g.now.Year()-3, 1, 1, 0, 0, 0, 0, time.UTC)
	dayRange := int(g.now.Sub(start).Hours() / 24)

	agents := make([]model.Agent, 0, n)
	for i := 1; i <= n; i++ {
		joined := start.AddDate(0, 0, g.rng.Intn(dayRange+1))
		months := (g.now.Year()-joined.Year())*12 + int(g.now.Month()) - int(joined.Month())

		agents = append(agents, model.Agent{
			AgentID:     fmt.Sprintf("AG%d", 1000+i),
			Name:        fmt.Sprintf("Agent %d", i),
			Location:    cities[g.rng.Intn(len(cities))],
			JoiningDate: joined,
			Experience:  months,
			Rating:      roundTo1(3.0 + g.rng.Float64()*2.0),
			Active:      g.rng.Float64() > 0.1,
		})
	}
	return agents
}

// Cards builds n catalog entries with fees, income thresholds and credit
// limits driven by the card tier.
func (g *Generator) Cards(n int) []model.CardProduct {
	cards := make([]model.CardProduct, 0, n)
	for i := 1; i <= n; i++ {
		cardType := cardTypes[g.rng.Intn(len(cardTypes))]
		bank := bankNames[g.rng.Intn(len(bankNames))]

		var joiningFee, annualFee, minIncome float64
		var limitLo, limitHi int
		switch cardType {
		case "Premium", "Platinum", "Business":
			joiningFee = pickFloat(g.rng, 0, 999, 1999, 2999, 4999)
			annualFee = pickFloat(g.rng, 999, 1999, 2999, 4999, 9999)
			minIncome = pickFloat(g.rng, 600000, 800000, 1000000, 1500000)
			limitLo = pickInt(g.rng, 200000, 300000, 500000)
			limitHi = pickInt(g.rng, 1000000, 1500000, 2000000)
		case "Gold", "Travel", "Rewards":
			joiningFee = pickFloat(g.rng, 0, 499, 999, 1499)
			annualFee = pickFloat(g.rng, 499, 999, 1499, 1999)
			minIncome = pickFloat(g.rng, 300000, 400000, 500000, 600000)
			limitLo = pickInt(g.rng, 100000, 150000, 200000)
			limitHi = pickInt(g.rng, 500000, 750000, 1000000)
		default:
			joiningFee = pickFloat(g.rng, 0, 199, 499, 999)
			annualFee = pickFloat(g.rng, 199, 499, 999)
			minIncome = pickFloat(g.rng, 200000, 250000, 300000, 350000)
			limitLo = pickInt(g.rng, 20000, 50000, 75000)
			limitHi = pickInt(g.rng, 100000, 150000, 200000)
		}

		benefits := sample(g.rng, benefitsPool, 4+g.rng.Intn(5))
		name := fmt.Sprintf("%s %s Card", bank, cardType)

		cards = append(cards, model.CardProduct{
			CardID:           fmt.Sprintf("CC%d", 100000+i),
			Name:             name,
			Issuer:           bank,
			Type:             cardType,
			JoiningFee:       joiningFee,
			AnnualFee:        annualFee,
			InterestRate:     roundTo1(24.0 + g.rng.Float64()*18.0),
			Eligibility:      fmt.Sprintf("Income > %.0f", minIncome),
			RewardRate:       roundTo1(0.5 + g.rng.Float64()*4.5),
			CreditLimitRange: fmt.Sprintf("Rs.%d - Rs.%d", limitLo, limitHi),
			Benefits:         benefits,
			FeatureSummary:   fmt.Sprintf("The %s offers %s and more.", name, strings.Join(benefits[:3], ", ")),
		})
	}
	return cards
}

// Sales builds up to n sale records. Success probability grows with how far
// the customer's income clears the card's threshold, and commission follows
// the card tier. Failed sales carry a rejection reason and no commission.
func (g *Generator) Sales(agents []model.Agent, cards []model.CardProduct, n int) []model.SaleRecord {
	if len(agents) == 0 || len(cards) == 0 {
		return nil
	}

	sales := make([]model.SaleRecord, 0, n)
	for i := 1; i <= n; i++ {
		agent := agents[g.rng.Intn(len(agents))]
		card := cards[g.rng.Intn(len(cards))]

		dayRange := int(g.now.Sub(agent.JoiningDate).Hours() / 24)
		if dayRange <= 0 {
			continue
		}
		date := agent.JoiningDate.AddDate(0, 0, g.rng.Intn(dayRange))

		minIncome := card.MinIncome()
		multiplier := 1.0 + g.rng.Float64()*2.0
		income := minIncome * multiplier
		success := g.rng.Float64() < 0.5+(multiplier-1.0)/4

		var commission float64
		if success {
			var base float64
			switch card.Type {
			case "Premium", "Platinum", "Business":
				base = 2500 + float64(g.rng.Intn(2501))
			case "Gold", "Travel", "Rewards":
				base = 1500 + float64(g.rng.Intn(1501))
			default:
				base = 500 + float64(g.rng.Intn(1001))
			}
			commission = base + float64(g.rng.Intn(1001)-500)
			if commission < 500 {
				commission = 500
			}
		}

		age := 21 + g.rng.Intn(45)
		credit := 550 + g.rng.Intn(351)
		employment := employmentTypes[g.rng.Intn(len(employmentTypes))]

		application := model.Application{
			ApplicationDate:    date,
			ProcessingTimeDays: 3 + g.rng.Intn(12),
		}
		if !success {
			reason := rejectionReasons[g.rng.Intn(len(rejectionReasons))]
			application.RejectionReason = &reason
		}

		sales = append(sales, model.SaleRecord{
			SaleID:     fmt.Sprintf("S%d", 100000+i),
			AgentID:    agent.AgentID,
			CardID:     card.CardID,
			Date:       date,
			Success:    success,
			Commission: commission,
			Customer: model.Customer{
				Age:            &age,
				Income:         &income,
				EmploymentType: &employment,
				CreditScore:    &credit,
			},
			Location: model.Location{
				City:    agent.Location,
				Pincode: fmt.Sprintf("%d", 100000+g.rng.Intn(900000)),
			},
			Application: application,
		})
	}
	return sales
}

func roundTo1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func pickFloat(rng *rand.Rand, choices ...float64) float64 {
	return choices[rng.Intn(len(choices))]
}

func pickInt(rng *rand.Rand, choices ...int) int {
	return choices[rng.Intn(len(choices))]
}

// sample draws n distinct entries from pool in shuffled order.
func sample(rng *rand.Rand, pool []string, n int) []string {
	idx := rng.Perm(len(pool))
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, pool[i])
	}
	return out
}
