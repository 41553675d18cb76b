package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harshit/leadscout/internal/db"
	"github.com/harshit/leadscout/internal/pipeline/steps"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List or inspect persisted pipeline runs",
	Long:  "Lists recent pipeline runs from the database, or shows per-stage detail for one run when --run-id is given.",
	RunE:  runRuns,
}

var (
	runsRunID       string
	runsLimit       int
	runsDatabaseURL string
)

func init() {
	runsCmd.Flags().StringVar(&runsRunID, "run-id", "", "Show stage detail for a single run")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum runs to list")
	runsCmd.Flags().StringVar(&runsDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runsDatabaseURL
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if runsRunID != "" {
		runID, err := uuid.Parse(runsRunID)
		if err != nil {
			return fmt.Errorf("invalid run-id: %w", err)
		}
		return printRunDetail(ctx, database, runID)
	}

	runs, err := database.ListRuns(ctx, runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "No runs recorded\n")
		return nil
	}

	for _, run := range runs {
		_, _ = fmt.Fprintf(os.Stdout, "%s  %-9s  %s  %q\n",
			run.ID, run.Status, run.CreatedAt.Format("2006-01-02 15:04:05"), run.DiscoveryQuery)
	}
	return nil
}

func printRunDetail(ctx context.Context, database *db.DB, runID uuid.UUID) error {
	run, err := database.GetRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("run not found: %s", runID)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Run %s (%s)\n", run.ID, run.Status)
	_, _ = fmt.Fprintf(os.Stdout, "Query:    %s\n", run.DiscoveryQuery)
	_, _ = fmt.Fprintf(os.Stdout, "Data dir: %s\n", run.DataDir)

	stages, err := database.ListStages(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to list stages: %w", err)
	}
	for _, stage := range stages {
		line := fmt.Sprintf("  %-12s %-9s in=%d out=%d", stage.Stage, stage.Status, stage.RowsIn, stage.RowsOut)
		if stage.DurationMs != nil {
			line += fmt.Sprintf(" (%dms)", *stage.DurationMs)
		}
		if stage.ErrorMessage != nil {
			line += " error: " + *stage.ErrorMessage
		}
		_, _ = fmt.Fprintf(os.Stdout, "%s\n", line)
	}

	available, err := steps.GetAvailableStages(ctx, database, runID)
	if err != nil {
		return fmt.Errorf("failed to compute runnable stages: %w", err)
	}
	if len(available) > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "Runnable next: %s\n", strings.Join(available, ", "))
	}

	blocked, err := steps.GetBlockedStages(ctx, database, runID)
	if err != nil {
		return fmt.Errorf("failed to compute blocked stages: %w", err)
	}
	if len(blocked) > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "Blocked:       %s\n", strings.Join(blocked, ", "))
	}
	return nil
}
