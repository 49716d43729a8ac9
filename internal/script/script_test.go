package script

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

func testCard() model.CardProduct {
	return model.CardProduct{
		CardID:       "card-1",
		Name:         "Platinum Travel Elite",
		Type:         "Travel",
		JoiningFee:   2000,
		AnnualFee:    1500,
		InterestRate: 42.0,
		Eligibility:  "Income > 600,000",
		Benefits:     []string{"Lounge Access", "Air Miles", "Travel Insurance", "Concierge Service"},
	}
}

func rejected(cardID, reason string) model.SaleRecord {
	return model.SaleRecord{
		SaleID:  "s-" + reason,
		CardID:  cardID,
		Success: false,
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Application: model.Application{
			RejectionReason: &reason,
		},
	}
}

func TestCreateScriptSections(t *testing.T) {
	t.Parallel()

	g := NewGenerator(rand.New(rand.NewSource(1)))
	s := g.Create(testCard(), nil)

	assert.Equal(t, "Platinum Travel Elite", s.CardName)
	assert.Contains(t, s.Introduction.Greeting, "[Your Name]")
	assert.Contains(t, s.Qualification.Income, "Income > 600,000")

	require.Len(t, s.Benefits.Primary, 3)
	require.Len(t, s.Benefits.Additional, 1)
	assert.Equal(t, "Lounge Access", s.Benefits.Primary[0].Benefit)
	assert.Contains(t, s.Benefits.Primary[0].Script, "One of the standout features")
	assert.Equal(t, "Concierge Service", s.Benefits.Additional[0].Benefit)
	assert.Empty(t, s.Benefits.Additional[0].Script)

	assert.Contains(t, s.Benefits.FeesAndCharges, "Rs.2000")
	assert.Contains(t, s.Benefits.FeesAndCharges, "Rs.1500")
	assert.Contains(t, s.Benefits.FeesAndCharges, "42.0%")

	require.Len(t, s.Closing.Options, 5)
	assert.Equal(t, "Benefit Summary", s.Closing.Options[0].Strategy)
	assert.Contains(t, s.Closing.Options[0].Script, "Lounge Access, Air Miles")
	assert.Equal(t, "Assumptive Close", s.Closing.Options[4].Strategy)

	assert.Contains(t, s.ApplicationProcess.Documents, "PAN card")
}

func TestCreateScriptObjectionsIncludeObserved(t *testing.T) {
	t.Parallel()

	sales := []model.SaleRecord{
		rejected("card-1", "Low CIBIL score"),
		rejected("card-1", "Low CIBIL score"),
		rejected("card-1", "Incomplete documents"),
		rejected("card-2", "Wrong card entirely"),
		{SaleID: "ok", CardID: "card-1", Success: true},
	}

	g := NewGenerator(rand.New(rand.NewSource(1)))
	s := g.Create(testCard(), sales)

	names := make([]string, 0, len(s.ObjectionHandling))
	for _, o := range s.ObjectionHandling {
		names = append(names, o.Objection)
	}
	assert.Equal(t, []string{
		"Annual Fee",
		"Interest Rate",
		"Already Have Too Many Cards",
		"Credit Score Concerns",
		"Income Requirements",
		"Low CIBIL score",
		"Incomplete documents",
	}, names)
	for _, o := range s.ObjectionHandling {
		assert.NotEmpty(t, o.Response, o.Objection)
	}
}

func TestIntroductionPremiumTier(t *testing.T) {
	t.Parallel()

	card := testCard()
	seen := map[string]bool{}
	g := NewGenerator(rand.New(rand.NewSource(7)))
	for i := 0; i < 50; i++ {
		seen[g.opening(card)] = true
	}
	assert.Len(t, seen, 3)
	for intro := range seen {
		if strings.Contains(intro, "card that can elevate") {
			assert.Contains(t, intro, "premium card")
			assert.Contains(t, intro, "Lounge Access and Air Miles")
		}
	}
}

func TestObjectionsSortedByFrequency(t *testing.T) {
	t.Parallel()

	sales := []model.SaleRecord{
		rejected("card-1", "Low CIBIL score"),
		rejected("card-1", "Low CIBIL score"),
		rejected("card-1", "Low CIBIL score"),
		rejected("card-1", "Incomplete documents"),
	}

	g := NewGenerator(rand.New(rand.NewSource(1)))
	set := g.Objections(testCard(), sales)

	require.GreaterOrEqual(t, len(set.Objections), 10)
	assert.Equal(t, "Low CIBIL score", set.Objections[0].Objection)
	assert.Equal(t, 3, set.Objections[0].Frequency)
	assert.Equal(t, "Incomplete documents", set.Objections[1].Objection)
	assert.Equal(t, 1, set.Objections[1].Frequency)
	assert.Equal(t, "Annual Fee", set.Objections[2].Objection)
	assert.Zero(t, set.Objections[2].Frequency)
}

func TestObjectionResponses(t *testing.T) {
	t.Parallel()

	card := testCard()

	tests := []struct {
		objection string
		want      string
	}{
		{"Annual Fee", "Consider this as an investment"},
		{"Interest Rate", "interest-free period of up to 50 days"},
		{"Credit Score Concerns", "different credit profiles"},
		{"Income Requirements", "overall financial profile"},
		{"Documentation Requirements", "largely digital"},
		{"Already Have Too Many Cards", "Lounge Access, Air Miles"},
		{"Rewards Not Relevant", "Lounge Access, Air Miles, Travel Insurance"},
		{"Better Offers Available", "side-by-side comparison"},
		{"Something Unusual", "Many of our customers had similar questions"},
	}
	for _, tc := range tests {
		t.Run(tc.objection, func(t *testing.T) {
			assert.Contains(t, objectionResponse(tc.objection, card), tc.want)
		})
	}
}

func TestObjectionResponseWaivedFee(t *testing.T) {
	t.Parallel()

	card := testCard()
	card.JoiningFee = 0
	got := objectionResponse("Annual Fee", card)
	assert.Contains(t, got, "no joining fee")

	card.JoiningFee = 500
	card.AnnualFee = 0
	got = objectionResponse("Annual Fee", card)
	assert.Contains(t, got, "no annual fee")
}

func TestElaborateFallback(t *testing.T) {
	t.Parallel()

	assert.Contains(t, elaborate("Lounge Access"), "airport lounges")
	assert.Equal(t, "Exclusive private banking desk for cardholders.", elaborate("Private Banking Desk"))
}
