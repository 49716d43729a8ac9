package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict sale success for a customer profile",
	Long: `Scores a customer profile against a card product and prints the
success probability, the expected commission when the commission model
is trained, and the qualitative key factors.

Examples:
  # Full profile
  predict --card CC100001 --age 34 --income 850000 --credit-score 760 --employment Salaried

  # Partial profile; missing fields use population defaults
  predict --card CC100001 --income 400000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cardID, _ := cmd.Flags().GetString("card")
		if cardID == "" {
			return eris.New("predict: --card is required")
		}

		var customer model.Customer
		if cmd.Flags().Changed("age") {
			v, _ := cmd.Flags().GetInt("age")
			customer.Age = &v
		}
		if cmd.Flags().Changed("income") {
			v, _ := cmd.Flags().GetFloat64("income")
			customer.Income = &v
		}
		if cmd.Flags().Changed("credit-score") {
			v, _ := cmd.Flags().GetInt("credit-score")
			customer.CreditScore = &v
		}
		if cmd.Flags().Changed("employment") {
			v, _ := cmd.Flags().GetString("employment")
			et := model.EmploymentType(v)
			customer.EmploymentType = &et
		}

		c, err := loadCoach(cmd.Context())
		if err != nil {
			return err
		}

		pred, err := c.PredictSuccess(customer, cardID)
		if err != nil {
			return err
		}

		fmt.Printf("Card:                %s\n", cardID)
		fmt.Printf("Success probability: %.1f%%\n", pred.SuccessProbability*100)
		if pred.ExpectedCommission != nil {
			fmt.Printf("Expected commission: Rs.%.0f\n", *pred.ExpectedCommission)
		} else {
			fmt.Println("Expected commission: n/a (commission model untrained)")
		}
		if len(pred.KeyFactors) > 0 {
			fmt.Println("\nKey factors:")
			for _, kf := range pred.KeyFactors {
				fmt.Printf("  [%s] %-20s %s\n", kf.Impact, kf.Factor, kf.Description)
			}
		}
		return nil
	},
}

func init() {
	f := predictCmd.Flags()
	f.String("card", "", "card product ID (required)")
	f.Int("age", 0, "customer age")
	f.Float64("income", 0, "customer annual income")
	f.Int("credit-score", 0, "customer credit score")
	f.String("employment", "", "employment type (Salaried, Self-Employed, Business, Student)")
	rootCmd.AddCommand(predictCmd)
}
