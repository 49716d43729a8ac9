package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/coach"
)

var cardsCmd = &cobra.Command{
	Use:   "cards [card-id...]",
	Short: "Analyze card product performance",
	Long: `Summarizes applications, approvals, and commission per card product
across the whole network. With card IDs as arguments, restricts the
report to those cards for a side-by-side comparison.

Examples:
  cards
  cards CC100001 CC100004
  cards --format csv --output cards.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		c, err := loadCoach(cmd.Context())
		if err != nil {
			return err
		}

		var analyses []coach.CardAnalysis
		if len(args) > 0 {
			analyses, err = c.CompareCards(args)
			if err != nil {
				return err
			}
		} else {
			analyses = c.AnalyzeCards()
		}

		header := []string{"card_id", "name", "issuer", "type", "applications", "approvals", "success_rate", "total_commission", "avg_commission"}
		rows := make([][]string, 0, len(analyses))
		for _, a := range analyses {
			rows = append(rows, []string{
				a.Card.CardID,
				a.Card.Name,
				a.Card.Issuer,
				a.Card.Type,
				fmt.Sprintf("%d", a.Applications),
				fmt.Sprintf("%d", a.Approvals),
				fmt.Sprintf("%.1f%%", a.SuccessRate*100),
				formatMoney(a.TotalCommission),
				formatMoney(a.AvgCommission),
			})
		}

		return outputRows(format, outputPath, "Card Performance", header, rows)
	},
}

func init() {
	f := cardsCmd.Flags()
	f.String("format", "table", "output format (table, csv, xlsx)")
	f.String("output", "", "write output to file instead of stdout")
	rootCmd.AddCommand(cardsCmd)
}
