package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the prediction models and persist them",
	Long: `Fits the success and commission models on the stored sales history
and writes the fitted parameters to the model directory. Models that
lack enough training rows are skipped with a warning; predictions then
fall back to the profile heuristic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCoach(cmd.Context())
		if err != nil {
			return err
		}

		log := zap.L().With(zap.String("command", "train"))
		log.Info("training models",
			zap.Int("sales", len(c.Sales())),
			zap.String("model_dir", cfg.Models.Dir),
		)

		if err := c.Train(cfg.Models.Dir); err != nil {
			return err
		}

		fmt.Printf("Trained on %d sale records; models saved to %s\n",
			len(c.Sales()), cfg.Models.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
}
