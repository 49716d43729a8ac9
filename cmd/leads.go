package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var leadsCmd = &cobra.Command{
	Use:   "leads <agent-id>",
	Short: "Generate ranked leads for an agent",
	Long: `Synthesizes prospect profiles around the agent's strongest cards,
scores each against the prediction models, and prints the leads most
likely to convert.

Examples:
  leads AG1007
  leads AG1007 --limit 20 --format xlsx --output leads.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agentID := args[0]
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = cfg.Leads.DefaultLimit
		}
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		c, err := loadCoach(cmd.Context())
		if err != nil {
			return err
		}

		candidates := c.RecommendLeads(agentID, limit)
		zap.L().Info("leads generated",
			zap.String("agent_id", agentID),
			zap.Int("results", len(candidates)),
		)

		header := []string{"name", "contact", "email", "age", "income", "card_id", "card_name", "success_probability", "expected_commission"}
		rows := make([][]string, 0, len(candidates))
		for _, cand := range candidates {
			commission := "n/a"
			if cand.ExpectedCommission != nil {
				commission = formatMoney(*cand.ExpectedCommission)
			}
			rows = append(rows, []string{
				cand.Name,
				cand.ContactNumber,
				cand.Email,
				fmt.Sprintf("%d", cand.Customer.AgeOrDefault()),
				formatMoney(cand.Customer.IncomeOrDefault()),
				cand.CardID,
				cand.CardName,
				fmt.Sprintf("%.1f%%", cand.SuccessProbability*100),
				commission,
			})
		}

		return outputRows(format, outputPath, "Leads", header, rows)
	},
}

func init() {
	f := leadsCmd.Flags()
	f.Int("limit", 0, "maximum leads to return (default from config)")
	f.String("format", "table", "output format (table, csv, xlsx)")
	f.String("output", "", "write output to file instead of stdout")
	rootCmd.AddCommand(leadsCmd)
}
