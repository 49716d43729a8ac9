package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/insights"
)

var agentCmd = &cobra.Command{
	Use:   "agent <agent-id>",
	Short: "Report an agent's performance and coaching insights",
	Long: `Prints the agent's overall numbers, their per-card, monthly, and
income-segment breakdowns, and the derived strengths, improvement
areas, and recommendations.

Examples:
  agent AG1007
  agent AG1007 --no-insights`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agentID := args[0]
		noInsights, _ := cmd.Flags().GetBool("no-insights")

		c, err := loadCoach(cmd.Context())
		if err != nil {
			return err
		}

		p, err := c.Performance(agentID)
		if err != nil {
			return err
		}
		printPerformance(agentID, p)

		if noInsights {
			return nil
		}

		ins, err := c.Insights(agentID)
		if err != nil {
			return err
		}
		printInsights(ins)
		return nil
	},
}

func printPerformance(agentID string, p *insights.Performance) {
	if p.Agent != nil {
		fmt.Printf("Agent:       %s (%s)\n", p.Agent.Name, agentID)
		fmt.Printf("Rating:      %.1f\n", p.Agent.Rating)
	} else {
		fmt.Printf("Agent:       %s\n", agentID)
	}
	fmt.Printf("Sales:       %d total, %d successful (%.1f%%)\n",
		p.Overall.TotalSales, p.Overall.SuccessfulSales, p.Overall.SuccessRate*100)
	fmt.Printf("Commission:  %s total, %s per approval\n",
		formatMoney(p.Overall.TotalCommission), formatMoney(p.Overall.AvgCommission))

	printGroups("By card", p.Cards)
	printGroups("By month", p.Monthly)
	printGroups("By income segment", p.Segments)
}

func printGroups(title string, groups []insights.GroupPerformance) {
	if len(groups) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for _, g := range groups {
		label := g.Key
		if g.Name != "" {
			label = g.Name
		}
		fmt.Printf("  %-25s %3d sales  %5.1f%%  %s\n",
			label, g.TotalSales, g.SuccessRate*100, formatMoney(g.Commission))
	}
}

func printInsights(ins *insights.Insights) {
	printList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Printf("\n%s:\n", title)
		for _, item := range items {
			fmt.Printf("  - %s\n", item)
		}
	}
	printList("Strengths", ins.Strengths)
	printList("Areas for improvement", ins.AreasForImprovement)
	printList("Recommendations", ins.Recommendations)
}

func init() {
	agentCmd.Flags().Bool("no-insights", false, "skip the coaching insights section")
	rootCmd.AddCommand(agentCmd)
}
