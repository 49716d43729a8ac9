package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/forecast"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast <agent-id>",
	Short: "Forecast an agent's commission",
	Long: `Projects the agent's monthly sales and commission forward from their
history. Agents with little or no history get a conservative new-agent
ramp instead of a trend projection.

Examples:
  forecast AG1007
  forecast AG1007 --months 6 --format xlsx --output forecast.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("forecast"); err != nil {
			return err
		}

		agentID := args[0]
		months, _ := cmd.Flags().GetInt("months")
		if months <= 0 {
			months = cfg.Forecast.Months
		}
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		c, err := loadCoach(cmd.Context())
		if err != nil {
			return err
		}

		result, err := c.Forecast(agentID, months)
		if err != nil {
			return err
		}
		zap.L().Info("forecast built",
			zap.String("agent_id", agentID),
			zap.Int("months", months),
			zap.Bool("new_agent", result.NewAgent),
		)

		header := []string{"month", "kind", "total_sales", "successful_sales", "success_rate", "commission", "cumulative_commission"}
		rows := make([][]string, 0, len(result.Historical)+len(result.Forecast))
		for _, m := range result.Historical {
			rows = append(rows, forecastRow(m, "actual"))
		}
		for _, m := range result.Forecast {
			rows = append(rows, forecastRow(m, "forecast"))
		}

		if err := outputRows(format, outputPath, "Forecast", header, rows); err != nil {
			return err
		}

		if format == "table" && outputPath == "" {
			printForecastSummary(result)
		}
		return nil
	},
}

func forecastRow(m forecast.Month, kind string) []string {
	return []string{
		m.Month,
		kind,
		fmt.Sprintf("%d", m.TotalSales),
		fmt.Sprintf("%d", m.SuccessfulSales),
		fmt.Sprintf("%.1f%%", m.SuccessRate*100),
		formatMoney(m.Commission),
		formatMoney(m.CumulativeCommission),
	}
}

func printForecastSummary(result *forecast.Result) {
	s := result.Summary
	fmt.Printf("\n--- Summary ---\n")
	if result.NewAgent {
		fmt.Println("Profile:              new agent ramp")
	}
	fmt.Printf("Forecast months:      %d\n", s.ForecastMonths)
	fmt.Printf("Forecast sales:       %d\n", s.TotalForecastSales)
	fmt.Printf("Forecast commission:  %s\n", formatMoney(s.TotalForecastCommission))
	fmt.Printf("Avg monthly:          %s\n", formatMoney(s.AvgMonthlyCommission))
	fmt.Printf("Projected growth:     %.1f%%\n", s.ProjectedGrowth*100)

	if len(result.Optimization) > 0 {
		fmt.Println("\nOptimization:")
		for _, sug := range result.Optimization {
			fmt.Printf("  [%s] %s (%s)\n", sug.Category, sug.Description, sug.Impact)
			for _, item := range sug.ActionItems {
				fmt.Printf("      - %s\n", item)
			}
		}
	}
}

func init() {
	f := forecastCmd.Flags()
	f.Int("months", 0, "months to forecast (default from config)")
	f.String("format", "table", "output format (table, csv, xlsx)")
	f.String("output", "", "write output to file instead of stdout")
	rootCmd.AddCommand(forecastCmd)
}
