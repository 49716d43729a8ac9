package script

import (
	"fmt"
	"strings"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

var benefitDescriptions = map[string]string{
	"Lounge Access":                   "Complimentary access to airport lounges, making your travel experience more comfortable and relaxing.",
	"Reward Points":                   "Earn points on every purchase that can be redeemed for a wide range of products, services, or cashback.",
	"Cashback":                        "Get money back on your purchases automatically, putting cash directly back in your pocket.",
	"Air Miles":                       "Earn miles with every purchase that can be redeemed for flights, upgrades, or travel-related expenses.",
	"Hotel Discounts":                 "Enjoy special discounts at partner hotels, making your stays more affordable.",
	"Travel Insurance":                "Complimentary travel insurance coverage for you and your family when you book tickets with this card.",
	"Shopping Points":                 "Earn extra points when shopping at partner retailers, allowing you to maximize your rewards.",
	"EMI Offers":                      "Convert large purchases into easy monthly installments at low or zero interest rates.",
	"Movie Tickets":                   "Discounted or buy-one-get-one-free offers on movie tickets at partner theaters.",
	"Fuel Surcharge Waiver":           "Save on fuel surcharges at petrol pumps across the country.",
	"Roadside Assistance":             "24/7 emergency roadside assistance for your vehicle when needed.",
	"Car Rental Discounts":            "Special rates and offers on car rentals with partner companies.",
	"Dining Rewards":                  "Extra rewards or discounts when dining at partner restaurants.",
	"Grocery Cashback":                "Special cashback rates on grocery purchases, helping you save on everyday essentials.",
	"Online Shopping Discounts":       "Exclusive discounts and offers when shopping at partner online retailers.",
	"Golf Program":                    "Complimentary golf games or discounted green fees at premium golf courses.",
	"Concierge Service":               "Personal assistance for bookings, recommendations, and arrangements.",
	"Airport Meet & Greet":            "VIP treatment with personalized greeting and assistance at select airports.",
	"Zero Foreign Transaction Fee":    "No additional charges when making purchases in foreign currencies during international travel.",
	"Global Emergency Assistance":     "24/7 support for emergencies while traveling internationally.",
	"Lost Card Protection":            "Quick card blocking and replacement with limited or zero liability for unauthorized transactions.",
	"Extended Warranty":               "Additional warranty coverage beyond the manufacturer's warranty on eligible purchases.",
	"Purchase Protection":             "Coverage against damage or theft for eligible items purchased with the card.",
	"Price Protection":                "Refund of the difference if an item's price drops within a specific period after purchase.",
	"Complimentary Airport Transfers": "Free transportation to or from the airport when traveling.",
	"Priority Pass":                   "Access to a global network of airport lounges regardless of airline or class of travel.",
	"Hotel Status Upgrade":            "Automatic status upgrade in partner hotel loyalty programs.",
	"Railway Lounge Access":           "Access to premium lounges at major railway stations.",
	"Movie Ticket Offers":             "Discounts or buy-one-get-one-free offers on movie tickets.",
}

// elaborate expands a benefit name into the pitch description.
func elaborate(benefit string) string {
	if d, ok := benefitDescriptions[benefit]; ok {
		return d
	}
	return fmt.Sprintf("Exclusive %s for cardholders.", strings.ToLower(benefit))
}

// objectionResponse picks the rebuttal for an objection by keyword.
func objectionResponse(objection string, card model.CardProduct) string {
	o := strings.ToLower(objection)

	topTwo := "excellent rewards and savings opportunities"
	lead := "rewards"
	if len(card.Benefits) > 0 {
		pair := card.Benefits
		if len(pair) > 2 {
			pair = pair[:2]
		}
		topTwo = strings.Join(pair, ", ")
		lead = card.Benefits[0]
	}

	switch {
	case strings.Contains(o, "fee") || strings.Contains(o, "expensive"):
		if card.JoiningFee == 0 || card.AnnualFee == 0 {
			waived := "no annual fee"
			if card.JoiningFee == 0 {
				waived = "no joining fee"
			}
			return fmt.Sprintf(
				"I understand your concern about fees. The good news is that this card has %s. "+
					"The benefits you'll receive far outweigh the costs, including %s.",
				waived, topTwo)
		}
		return fmt.Sprintf(
			"I understand your concern about the fees. Consider this as an investment - "+
				"the card's benefits like %s can save you much more than the fee annually. "+
				"Plus, many customers qualify for fee waivers based on their spending patterns.",
			lead)

	case strings.Contains(o, "interest") || strings.Contains(o, "rate"):
		return "I understand your concern about interest rates. The good news is that if you pay your " +
			"balance in full each month, you won't pay any interest at all. Plus, this card offers " +
			"an interest-free period of up to 50 days on purchases."

	case strings.Contains(o, "credit score") || strings.Contains(o, "credit history"):
		return "I understand your concern about credit requirements. While a good score helps, " +
			"we have options for different credit profiles. Let's focus on finding the right fit for your situation, " +
			"and I can guide you through ways to strengthen your application."

	case strings.Contains(o, "income") || strings.Contains(o, "eligibility"):
		return "I understand your concern about eligibility. Let's review the requirements together - " +
			"often there are alternative ways to qualify based on your overall financial profile, not just income. " +
			"I can help you determine the best approach for your situation."

	case strings.Contains(o, "documentation") || strings.Contains(o, "paperwork"):
		return "I understand paperwork can be overwhelming. The good news is that our application process is " +
			"largely digital, and I'll personally help you every step of the way to make it as smooth as possible. " +
			"We'll need just a few basic documents that you likely already have on hand."

	case strings.Contains(o, "approval") || strings.Contains(o, "rejection"):
		return "I understand your concern about approval. Before we apply, I'll help assess your eligibility to " +
			"maximize your chances. Even if you're not approved for this specific card, we have several " +
			"alternatives that might be a better fit for your current situation."

	case strings.Contains(o, "too many cards") || strings.Contains(o, "already have"):
		diff := topTwo
		if len(card.Benefits) == 0 {
			diff = "its unique benefits"
		}
		return fmt.Sprintf(
			"I understand you already have other cards. What makes this card different is %s. Many customers find it "+
				"valuable to have different cards for different purposes - this one could complement your "+
				"existing cards by giving you advantages in specific spending categories.",
			diff)

	case strings.Contains(o, "benefits") || strings.Contains(o, "rewards") || strings.Contains(o, "relevant"):
		topThree := "rewards"
		if len(card.Benefits) > 0 {
			set := card.Benefits
			if len(set) > 3 {
				set = set[:3]
			}
			topThree = strings.Join(set, ", ")
		}
		return fmt.Sprintf(
			"I understand you're looking for valuable benefits. This card offers %s "+
				"that are specifically designed to match your lifestyle and spending patterns. "+
				"Based on your typical monthly expenses, you could earn significant value from these rewards.",
			topThree)

	case strings.Contains(o, "better offer") || strings.Contains(o, "competing"):
		return "I appreciate that you're comparing options - that's smart. While other offers might seem attractive, " +
			"let's compare the total value proposition. When you consider the joining benefits, ongoing rewards, " +
			"and the service we provide, many customers find this card offers better overall value. " +
			"I'd be happy to do a side-by-side comparison with any other offer you're considering."

	default:
		return "I understand your concern. Let me address that specifically and show you how this card " +
			"might still be a great fit for your needs. Many of our customers had similar questions initially " +
			"but have been very satisfied with their decision."
	}
}
