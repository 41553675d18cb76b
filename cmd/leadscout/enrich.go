package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harshit/leadscout/internal/enrichment"
	"github.com/harshit/leadscout/internal/types"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich cleaned companies with firmographics and qualification",
	Long:  "Runs company intelligence and qualification over cleaned_companies.csv and writes enriched_companies.csv.",
	RunE:  runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	cleaned, err := loadStageInput(cfg.CleanedCompaniesPath(),
		types.ColCompanyName, types.ColEventName, types.ColEventRelevanceScore)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	enricher := enrichment.NewEnricher(client)
	enricher.ShowProgress = true
	if cfg.EnrichDelayMS > 0 {
		enricher.BaseDelay = time.Duration(cfg.EnrichDelayMS) * time.Millisecond
		enricher.HighPriorityDelay = 2 * enricher.BaseDelay
	}

	enriched, err := enricher.EnrichTable(ctx, cleaned)
	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}
	if err := enriched.Save(cfg.EnrichedCompaniesPath()); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Enriched %d companies\n", enriched.Len())
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", cfg.EnrichedCompaniesPath())
	return nil
}
