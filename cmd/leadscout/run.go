package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harshit/leadscout/internal/db"
	"github.com/harshit/leadscout/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full lead generation pipeline end-to-end",
	Long: `Orchestrates the entire lead generation process: scout -> hunt -> clean -> enrich -> stakeholders -> message -> score.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runQuery           string
	runOnly            string
	runUseBrowser      bool
	runMaxStakeholders int
	runDatabaseURL     string
	runAPIKey          string
)

func init() {
	runCommand.Flags().StringVar(&runOnly, "only", "", "Run a single stage: scout, hunt, clean, enrich, stakeholders, message, or score (other run flags are ignored)")
	runCommand.Flags().StringVarP(&runQuery, "query", "q", "", "Event discovery query (defaults to the built-in signage query)")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for script-rendered exhibitor directories (requires Chrome)")
	runCommand.Flags().IntVar(&runMaxStakeholders, "max-stakeholders", 0, "Maximum stakeholders synthesized per company")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for run persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	if cmd.Flags().Changed("only") {
		return runSingleStage(runOnly)
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	// Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("query") {
		cfg.DiscoveryQuery = runQuery
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("max-stakeholders") {
		cfg.MaxStakeholders = runMaxStakeholders
	}
	if cmd.Flags().Changed("api-key") {
		cfg.GeminiAPIKey = runAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			fmt.Printf("Warning: failed to close LLM client: %v\n", cerr)
		}
	}()

	return pipeline.RunPipeline(ctx, pipeline.RunOptions{
		Config: cfg,
		Client: client,
	})
}

// runSingleStage dispatches --only to the matching stage command.
func runSingleStage(stage string) error {
	switch stage {
	case db.StageScout:
		return runScout(scoutCmd, nil)
	case db.StageHunt:
		return runHunt(huntCmd, nil)
	case db.StageClean:
		return runClean(cleanCmd, nil)
	case db.StageEnrich:
		return runEnrich(enrichCmd, nil)
	case db.StageStakeholders:
		return runStakeholders(stakeholdersCmd, nil)
	case db.StageMessage:
		return runMessage(messageCmd, nil)
	case db.StageScore:
		return runScore(scoreCmd, nil)
	default:
		return fmt.Errorf("unknown stage %q (valid: scout, hunt, clean, enrich, stakeholders, message, score)", stage)
	}
}
