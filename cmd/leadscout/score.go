package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harshit/leadscout/internal/observability"
	"github.com/harshit/leadscout/internal/pipeline"
	"github.com/harshit/leadscout/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score and rank qualified leads",
	Long:  "Scores every row of companies_with_outreach.csv across seven dimensions and writes qualified_leads_scored.csv sorted best-first.",
	RunE:  runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	withOutreach, err := loadStageInput(cfg.OutreachPath(), types.ColCompanyName)
	if err != nil {
		return err
	}

	scored := pipeline.ScoreTable(withOutreach)
	if err := scored.Save(cfg.ScoredLeadsPath()); err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintTopLeads(scored)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Scored %d leads\n", scored.Len())
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", cfg.ScoredLeadsPath())
	return nil
}
