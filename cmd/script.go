package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var scriptCmd = &cobra.Command{
	Use:   "script <card-id>",
	Short: "Generate a sales script for a card product",
	Long: `Builds a complete pitch for the card from its benefits, fees, and the
rejection reasons observed in its sales history. With --objections the
command prints only the objection-handling guide, sorted by how often
each objection has come up.

Examples:
  script CC100001
  script CC100001 --objections
  script CC100001 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardID := args[0]
		objectionsOnly, _ := cmd.Flags().GetBool("objections")
		asJSON, _ := cmd.Flags().GetBool("json")

		c, err := loadCoach(cmd.Context())
		if err != nil {
			return err
		}

		if objectionsOnly {
			set, err := c.Objections(cardID)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(set)
			}
			fmt.Printf("Objection handling: %s\n\n", set.CardName)
			for _, o := range set.Objections {
				if o.Frequency > 0 {
					fmt.Printf("%q (seen %d times)\n", o.Objection, o.Frequency)
				} else {
					fmt.Printf("%q\n", o.Objection)
				}
				fmt.Printf("  %s\n\n", o.Response)
			}
			return nil
		}

		s, err := c.Script(cardID)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(s)
		}

		fmt.Printf("Sales script: %s\n", s.CardName)
		fmt.Printf("\n[Introduction]\n%s\n%s\n%s\n",
			s.Introduction.Greeting, s.Introduction.Opening, s.Introduction.Transition)
		fmt.Printf("\n[Qualification]\n- %s\n- %s\n- %s\n",
			s.Qualification.Income, s.Qualification.Employment, s.Qualification.Spending)

		fmt.Println("\n[Benefits]")
		for _, b := range s.Benefits.Primary {
			fmt.Printf("- %s: %s\n", b.Benefit, b.Script)
		}
		for _, b := range s.Benefits.Additional {
			fmt.Printf("- %s: %s\n", b.Benefit, b.Description)
		}
		fmt.Printf("\n[Fees]\n%s\n", s.Benefits.FeesAndCharges)

		fmt.Println("\n[Objection handling]")
		for _, o := range s.ObjectionHandling {
			fmt.Printf("- %q\n  %s\n", o.Objection, o.Response)
		}

		fmt.Printf("\n[Closing]\n%s\n", s.Closing.TrialClose)
		for _, opt := range s.Closing.Options {
			fmt.Printf("- %s: %s\n", opt.Strategy, opt.Script)
		}

		fmt.Printf("\n[Application]\n%s\n%s\n%s\n",
			s.ApplicationProcess.Documents, s.ApplicationProcess.Timeline, s.ApplicationProcess.Support)
		return nil
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "script: encode JSON")
	}
	return nil
}

func init() {
	f := scriptCmd.Flags()
	f.Bool("objections", false, "print only the objection-handling guide")
	f.Bool("json", false, "print the raw JSON instead of formatted text")
	rootCmd.AddCommand(scriptCmd)
}
