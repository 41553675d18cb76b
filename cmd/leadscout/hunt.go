package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harshit/leadscout/internal/fetch"
	"github.com/harshit/leadscout/internal/hunting"
	"github.com/harshit/leadscout/internal/observability"
	"github.com/harshit/leadscout/internal/research"
	"github.com/harshit/leadscout/internal/types"
)

var huntCmd = &cobra.Command{
	Use:   "hunt",
	Short: "Hunt exhibiting companies from scouted events",
	Long:  "Scrapes each event's exhibitor directory from latest_leads.csv and writes discovered_companies.csv.",
	RunE:  runHunt,
}

var huntUseBrowser bool

func init() {
	huntCmd.Flags().BoolVar(&huntUseBrowser, "use-browser", false, "Use headless browser for script-rendered exhibitor directories (requires Chrome)")

	rootCmd.AddCommand(huntCmd)
}

func runHunt(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = huntUseBrowser
	}

	leads, err := loadStageInput(cfg.LatestLeadsPath(), types.ColEventTableName, types.ColEventTableURL)
	if err != nil {
		return err
	}

	hunter := hunting.NewHunter(fetch.NewCachedFetcher(fetch.NewCache(), nil))
	if cfg.UseBrowser {
		hunter.Browser = func(ctx context.Context, url string) (string, error) {
			return fetch.WithBrowser(ctx, url, 45*time.Second, cfg.Verbose)
		}
	}
	if cfg.SearchAPIKey != "" && cfg.SearchCX != "" {
		researcher, err := research.NewResearcher(ctx, cfg.SearchAPIKey, cfg.SearchCX)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize researcher: %v\n", err)
		} else {
			hunter.Finder = researcher
		}
	}

	discovered, err := hunter.Run(ctx, leads)
	if err != nil {
		return fmt.Errorf("exhibitor hunting failed: %w", err)
	}
	if err := discovered.Save(cfg.DiscoveredCompaniesPath()); err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintCompanies(discovered)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Discovered %d companies\n", discovered.Len())
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", cfg.DiscoveredCompaniesPath())
	return nil
}
