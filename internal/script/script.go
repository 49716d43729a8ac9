// Package script assembles sales scripts and objection-handling material
// for a card, informed by the rejection reasons observed in its sales
// history.
package script

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// BenefitPitch is one benefit with its elaboration.
type BenefitPitch struct {
	Benefit     string `json:"benefit"`
	Description string `json:"description"`
	Script      string `json:"script,omitempty"`
}

// Objection pairs a customer objection with a suggested response.
type Objection struct {
	Objection string `json:"objection"`
	Response  string `json:"response"`
	Frequency int    `json:"frequency,omitempty"`
}

// ClosingOption is one closing strategy.
type ClosingOption struct {
	Strategy string `json:"strategy"`
	Script   string `json:"script"`
}

// Introduction opens the pitch.
type Introduction struct {
	Greeting   string `json:"greeting"`
	Opening    string `json:"opening"`
	Transition string `json:"transition"`
}

// Qualification collects the discovery questions.
type Qualification struct {
	Income     string `json:"income"`
	Employment string `json:"employment"`
	Spending   string `json:"spending"`
}

// BenefitsPresentation carries the benefit pitches and the fee line.
type BenefitsPresentation struct {
	Primary        []BenefitPitch `json:"primary_benefits"`
	Additional     []BenefitPitch `json:"additional_benefits"`
	FeesAndCharges string         `json:"fees_and_charges"`
}

// Closing holds the trial close and the closing strategies.
type Closing struct {
	TrialClose string          `json:"trial_close"`
	Options    []ClosingOption `json:"closing_options"`
}

// ApplicationProcess describes the paperwork path.
type ApplicationProcess struct {
	Documents string `json:"documents"`
	Timeline  string `json:"timeline"`
	Support   string `json:"support"`
}

// Script is a complete sales script for one card.
type Script struct {
	CardName           string               `json:"card_name"`
	Introduction       Introduction         `json:"introduction"`
	Qualification      Qualification        `json:"qualification"`
	Benefits           BenefitsPresentation `json:"benefits_presentation"`
	ObjectionHandling  []Objection          `json:"objection_handling"`
	Closing            Closing              `json:"closing"`
	ApplicationProcess ApplicationProcess   `json:"application_process"`
}

// ObjectionSet is the standalone objection-handling deliverable.
type ObjectionSet struct {
	CardName   string      `json:"card_name"`
	Objections []Objection `json:"objections"`
}

// Generator builds scripts. The random source only drives the choice of
// opening line.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator builds a Generator around a random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

var scriptObjections = []string{
	"Annual Fee",
	"Interest Rate",
	"Already Have Too Many Cards",
	"Credit Score Concerns",
	"Income Requirements",
}

var standaloneObjections = append(append([]string{}, scriptObjections...),
	"Better Offers Available",
	"Documentation Requirements",
	"Rewards Not Relevant",
)

// Create assembles the full sales script for card, mining sales for the
// card's observed rejection reasons.
func (g *Generator) Create(card model.CardProduct, sales []model.SaleRecord) *Script {
	reasons := rejectionReasons(card.CardID, sales)

	s := &Script{
		CardName: card.Name,
		Introduction: Introduction{
			Greeting:   "Hello, this is [Your Name]. How are you doing today? I'd like to tell you about a credit card that might be perfect for your needs.",
			Opening:    g.opening(card),
			Transition: "May I take a few minutes to explain how this card can benefit you?",
		},
		Qualification: Qualification{
			Income: fmt.Sprintf(
				"To ensure this card is right for you, may I ask about your approximate annual income? The minimum income requirement is %s.",
				card.Eligibility),
			Employment: "What type of employment are you currently in?",
			Spending:   "Could you tell me a bit about your monthly spending patterns? Which categories do you spend the most on?",
		},
		Closing: Closing{
			TrialClose: "Based on what I've shared, how does this card sound for your needs?",
			Options:    closingOptions(card),
		},
		ApplicationProcess: ApplicationProcess{
			Documents: "To proceed with the application, we'll need your ID proof, address proof, income proof such as salary slips or IT returns, and PAN card.",
			Timeline:  "The application process is quick and straightforward. Once submitted, approval typically takes 3-7 working days, and you'll receive your card within 7-10 days after approval.",
			Support:   "I'll be your point of contact throughout the application process. Feel free to reach out to me directly if you have any questions or need assistance.",
		},
	}

	s.Benefits.FeesAndCharges = fmt.Sprintf(
		"The card comes with a joining fee of Rs.%.0f and an annual fee of Rs.%.0f. The interest rate is %.1f%% should you carry a balance.",
		card.JoiningFee, card.AnnualFee, card.InterestRate)
	for i, b := range card.Benefits {
		pitch := BenefitPitch{Benefit: b, Description: elaborate(b)}
		if i < 3 {
			pitch.Script = fmt.Sprintf("One of the standout features of this card is %s. This means %s", b, pitch.Description)
			s.Benefits.Primary = append(s.Benefits.Primary, pitch)
		} else {
			s.Benefits.Additional = append(s.Benefits.Additional, pitch)
		}
	}

	objections := append([]string{}, scriptObjections...)
	objections = appendObserved(objections, reasons)
	for _, o := range objections {
		s.ObjectionHandling = append(s.ObjectionHandling, Objection{
			Objection: o,
			Response:  objectionResponse(o, card),
		})
	}
	return s
}

// Objections builds the standalone objection-handling set, with observed
// rejection reasons ranked by frequency.
func (g *Generator) Objections(card model.CardProduct, sales []model.SaleRecord) *ObjectionSet {
	reasons := rejectionReasons(card.CardID, sales)

	names := appendObserved(append([]string{}, standaloneObjections...), reasons)
	out := make([]Objection, 0, len(names))
	for _, o := range names {
		out = append(out, Objection{
			Objection: o,
			Response:  objectionResponse(o, card),
			Frequency: reasons[o],
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Frequency > out[j].Frequency })

	return &ObjectionSet{CardName: card.Name, Objections: out}
}

// rejectionReasons counts the rejection reasons recorded on the card's
// failed sales.
func rejectionReasons(cardID string, sales []model.SaleRecord) map[string]int {
	out := map[string]int{}
	for _, s := range sales {
		if s.CardID != cardID || s.Success {
			continue
		}
		if r := s.Application.RejectionReason; r != nil && *r != "" {
			out[*r]++
		}
	}
	return out
}

// appendObserved adds observed reasons not already in the base list, most
// frequent first.
func appendObserved(base []string, reasons map[string]int) []string {
	known := make(map[string]bool, len(base))
	for _, b := range base {
		known[b] = true
	}
	var extra []string
	for r := range reasons {
		if !known[r] {
			extra = append(extra, r)
		}
	}
	sort.SliceStable(extra, func(i, j int) bool {
		if reasons[extra[i]] != reasons[extra[j]] {
			return reasons[extra[i]] > reasons[extra[j]]
		}
		return extra[i] < extra[j]
	})
	return append(base, extra...)
}

func (g *Generator) opening(card model.CardProduct) string {
	tier := "standard"
	if card.HasKeyword("premium", "elite", "platinum") {
		tier = "premium"
	}
	var benefitsPhrase string
	if len(card.Benefits) > 0 {
		top := card.Benefits
		if len(top) > 2 {
			top = top[:2]
		}
		benefitsPhrase = fmt.Sprintf(" with excellent %s", strings.Join(top, " and "))
	}

	intros := []string{
		fmt.Sprintf("Let me tell you about %s, which offers exceptional benefits designed for your lifestyle.", card.Name),
		fmt.Sprintf("%s is a %s card that can elevate your financial flexibility and rewards experience%s.", card.Name, tier, benefitsPhrase),
		fmt.Sprintf("I'd like to introduce you to %s, one of our most popular options with excellent benefits that match your spending habits.", card.Name),
	}
	return intros[g.rng.Intn(len(intros))]
}

func closingOptions(card model.CardProduct) []ClosingOption {
	promo := "enhanced rewards"
	first := "superior rewards"
	second := "excellent service"
	top := "excellent benefits"
	if len(card.Benefits) > 0 {
		promo = card.Benefits[0]
		first = card.Benefits[0]
		pair := card.Benefits
		if len(pair) > 2 {
			pair = pair[:2]
		}
		top = strings.Join(pair, ", ")
	}
	if len(card.Benefits) > 1 {
		second = card.Benefits[1]
	}

	return []ClosingOption{
		{
			Strategy: "Benefit Summary",
			Script: fmt.Sprintf(
				"Based on what you've shared about your needs, %s with %s seems like an excellent fit. Shall we proceed with the application now?",
				card.Name, top),
		},
		{
			Strategy: "Limited Time Offer",
			Script: fmt.Sprintf(
				"Currently, we have a special promotion for this card with %s. This offer is available for a limited time. Would you like to take advantage of it today?",
				promo),
		},
		{
			Strategy: "Future Value",
			Script:   "By starting with this card today, you'll begin accumulating rewards immediately. Over the next year, based on your spending patterns, you could earn rewards worth thousands of rupees. Shall we get started so you can begin enjoying these benefits?",
		},
		{
			Strategy: "Comparison Close",
			Script: fmt.Sprintf(
				"Compared to similar cards in the market, %s offers %s and %s. This makes it one of the best options for your needs. Would you like to proceed with the application?",
				card.Name, first, second),
		},
		{
			Strategy: "Assumptive Close",
			Script: fmt.Sprintf(
				"Great! I'll need just a few details to complete your application for %s. Could you please share your PAN card number and current residential address so we can proceed?",
				card.Name),
		},
	}
}
