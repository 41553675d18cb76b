package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harshit/leadscout/internal/stakeholders"
	"github.com/harshit/leadscout/internal/types"
)

var stakeholdersCmd = &cobra.Command{
	Use:   "stakeholders",
	Short: "Synthesize decision-maker contacts per company",
	Long:  "Fans out enriched_companies.csv into one row per synthesized stakeholder and writes companies_with_stakeholders.csv.",
	RunE:  runStakeholders,
}

var stakeholdersMax int

func init() {
	stakeholdersCmd.Flags().IntVar(&stakeholdersMax, "max-stakeholders", 0, "Maximum stakeholders synthesized per company")

	rootCmd.AddCommand(stakeholdersCmd)
}

func runStakeholders(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-stakeholders") {
		cfg.MaxStakeholders = stakeholdersMax
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	enriched, err := loadStageInput(cfg.EnrichedCompaniesPath(), types.ColCompanyName)
	if err != nil {
		return err
	}

	finder := stakeholders.NewFinder(rand.New(rand.NewSource(time.Now().UnixNano())))
	if cfg.MaxStakeholders > 0 {
		finder.MaxStakeholders = cfg.MaxStakeholders
	}

	withStakeholders, err := finder.Run(enriched)
	if err != nil {
		return fmt.Errorf("stakeholder synthesis failed: %w", err)
	}
	if err := withStakeholders.Save(cfg.StakeholdersPath()); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Expanded to %d stakeholder rows\n", withStakeholders.Len())
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", cfg.StakeholdersPath())
	return nil
}
