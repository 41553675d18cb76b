package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harshit/leadscout/internal/events"
	"github.com/harshit/leadscout/internal/observability"
)

var scoutCmd = &cobra.Command{
	Use:   "scout",
	Short: "Discover and score industry events",
	Long:  "Merges manually curated events with LLM-discovered ones, scores each for protective film relevance, and writes latest_leads.csv.",
	RunE:  runScout,
}

var scoutQuery string

func init() {
	scoutCmd.Flags().StringVarP(&scoutQuery, "query", "q", "", "Event discovery query (defaults to the built-in signage query)")

	rootCmd.AddCommand(scoutCmd)
}

func runScout(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("query") {
		cfg.DiscoveryQuery = scoutQuery
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	scout := events.NewScout(client)
	if cfg.DiscoveryQuery != "" {
		scout.Query = cfg.DiscoveryQuery
	}
	if cfg.ScoutPauseMS > 0 {
		scout.Pause = time.Duration(cfg.ScoutPauseMS) * time.Millisecond
	}

	evts, err := scout.Run(ctx, cfg.ManualEventsPath())
	if err != nil {
		return fmt.Errorf("event scouting failed: %w", err)
	}

	leads := events.ToTable(evts)
	if err := leads.Save(cfg.LatestLeadsPath()); err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintEvents(evts)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Scouted %d events\n", leads.Len())
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", cfg.LatestLeadsPath())
	return nil
}
