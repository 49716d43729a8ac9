package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a synthetic dataset and write it to the store",
	Long: `Generates a realistic dataset of agents, card products, and sale
records and replaces the contents of the configured store with it.
Use --rand-seed for a reproducible dataset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("seed"); err != nil {
			return err
		}

		opts := seed.Options{
			Agents: cfg.Seed.Agents,
			Cards:  cfg.Seed.Cards,
			Sales:  cfg.Seed.Sales,
		}
		if v, _ := cmd.Flags().GetInt("agents"); v > 0 {
			opts.Agents = v
		}
		if v, _ := cmd.Flags().GetInt("cards"); v > 0 {
			opts.Cards = v
		}
		if v, _ := cmd.Flags().GetInt("sales"); v > 0 {
			opts.Sales = v
		}

		randSeed, _ := cmd.Flags().GetInt64("rand-seed")
		if randSeed == 0 {
			randSeed = time.Now().UnixNano()
		}

		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		gen := seed.NewGenerator(rand.New(rand.NewSource(randSeed)), time.Time{})
		agents, cards, sales := gen.Generate(opts)

		if err := st.SaveAgents(ctx, agents); err != nil {
			return eris.Wrap(err, "seed: save agents")
		}
		if err := st.SaveCards(ctx, cards); err != nil {
			return eris.Wrap(err, "seed: save cards")
		}
		if err := st.SaveSales(ctx, sales); err != nil {
			return eris.Wrap(err, "seed: save sales")
		}

		zap.L().Info("dataset seeded",
			zap.Int("agents", len(agents)),
			zap.Int("cards", len(cards)),
			zap.Int("sales", len(sales)),
			zap.Int64("rand_seed", randSeed),
		)

		fmt.Printf("Seeded %d agents, %d cards, %d sales (driver %q)\n",
			len(agents), len(cards), len(sales), cfg.Store.Driver)
		return nil
	},
}

func init() {
	f := seedCmd.Flags()
	f.Int("agents", 0, "number of agents (overrides config)")
	f.Int("cards", 0, "number of card products (overrides config)")
	f.Int("sales", 0, "number of sale records (overrides config)")
	f.Int64("rand-seed", 0, "random seed (0 = time-based)")
	rootCmd.AddCommand(seedCmd)
}
