package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <agent-id>",
	Short: "Rank card products for an agent",
	Long: `Scores every card product for the given agent, blending network-wide
success rates with the agent's own track record, and prints the top
cards with an explanation per card.

Examples:
  recommend AG1007
  recommend AG1007 --limit 10 --format csv --output cards.csv
  recommend AG1007 --format xlsx --output cards.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agentID := args[0]
		limit, _ := cmd.Flags().GetInt("limit")
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		c, err := loadCoach(cmd.Context())
		if err != nil {
			return err
		}

		recs := c.RecommendCards(agentID, limit)
		zap.L().Info("cards ranked",
			zap.String("agent_id", agentID),
			zap.Int("results", len(recs)),
		)

		header := []string{"rank", "card_id", "name", "type", "score", "success_rate", "avg_commission", "agent_sales", "why"}
		rows := make([][]string, 0, len(recs))
		for i, r := range recs {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				r.CardID,
				r.Name,
				r.Type,
				fmt.Sprintf("%.1f", r.Score),
				fmt.Sprintf("%.1f%%", r.SuccessRate*100),
				formatMoney(r.AvgCommission),
				fmt.Sprintf("%d", r.AgentSales),
				r.Explanation,
			})
		}

		if err := outputRows(format, outputPath, "Recommendations", header, rows); err != nil {
			return err
		}

		if format == "table" && outputPath == "" && len(recs) > 0 {
			top := recs[0]
			fmt.Printf("\nTop pick: %s (%s)\n", top.Name, top.CardID)
			if len(top.Benefits) > 0 {
				fmt.Printf("Benefits: %s\n", strings.Join(top.Benefits, ", "))
			}
		}
		return nil
	},
}

func init() {
	f := recommendCmd.Flags()
	f.Int("limit", 5, "maximum cards to return")
	f.String("format", "table", "output format (table, csv, xlsx)")
	f.String("output", "", "write output to file instead of stdout")
	rootCmd.AddCommand(recommendCmd)
}
