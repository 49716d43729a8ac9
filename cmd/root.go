package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "sales-coach",
	Short: "Recommendation and forecasting engine for credit card sales agents",
	Long:  "Trains predictive models on historical sales, ranks card products per agent, synthesizes leads, forecasts commissions, and generates sales scripts.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
