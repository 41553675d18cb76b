package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harshit/leadscout/internal/cleaning"
	"github.com/harshit/leadscout/internal/observability"
	"github.com/harshit/leadscout/internal/types"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean and dedupe discovered companies",
	Long:  "Normalizes names, drops navigation noise, dedupes discovered_companies.csv, and writes cleaned_companies.csv.",
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	discovered, err := loadStageInput(cfg.DiscoveredCompaniesPath(), types.ColCompanyName)
	if err != nil {
		return err
	}

	denylist := cleaning.DefaultDenylist()
	if len(cfg.DenylistTerms) > 0 {
		denylist = cfg.DenylistTerms
	}
	cleaner := cleaning.NewCleaner(denylist)
	cleaned, err := cleaner.CleanTable(discovered)
	if err != nil {
		return fmt.Errorf("cleaning failed: %w", err)
	}
	summary := cleaning.Summary{Input: discovered.Len(), Output: cleaned.Len()}
	_, _ = fmt.Fprintf(os.Stdout, "Cleaning: %s\n", summary)
	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintCleaningSummary(summary)
	}
	if cleaned.Len() == 0 {
		return fmt.Errorf("cleaning removed every discovered company; nothing to enrich")
	}
	if err := cleaned.Save(cfg.CleanedCompaniesPath()); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", cfg.CleanedCompaniesPath())
	return nil
}
