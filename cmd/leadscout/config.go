package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/harshit/leadscout/internal/config"
	"github.com/harshit/leadscout/internal/llm"
	"github.com/harshit/leadscout/internal/schemas"
	"github.com/harshit/leadscout/internal/tables"
)

// resolveConfig builds the effective configuration for a command: config file
// (schema-validated), then environment, then the shared CLI flags, then
// built-in defaults for whatever is still unset.
func resolveConfig() (config.Config, error) {
	var cfg config.Config

	if flagConfigPath != "" {
		if schemaPath := schemas.ResolveSchemaPath(schemas.ConfigSchema); schemaPath != "" {
			if err := schemas.ValidateJSON(schemaPath, flagConfigPath); err != nil {
				var schemaErr *schemas.SchemaLoadError
				if errors.As(err, &schemaErr) {
					_, _ = fmt.Fprintf(os.Stderr, "Warning: could not validate config against schema: %v\n", err)
				} else {
					return cfg, fmt.Errorf("invalid config file: %w", err)
				}
			}
		}

		loaded, err := config.LoadConfig(flagConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if flagVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", flagConfigPath)
		}
	}

	cfg.FromEnv()

	if rootCmd.PersistentFlags().Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}
	if rootCmd.PersistentFlags().Changed("verbose") {
		cfg.Verbose = flagVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadStageInput loads a stage's input CSV, turning a missing file into a
// hint to run the preceding stage first.
func loadStageInput(path string, required ...string) (*tables.Table, error) {
	t, err := tables.Load(path, required...)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("input %s does not exist; run the preceding stage first", path)
		}
		return nil, err
	}
	return t, nil
}

// newLLMClient constructs the Gemini client used by the LLM-backed stages,
// applying any per-tier model overrides from the config.
func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable or gemini_api_key config value is required")
	}

	llmCfg := llm.DefaultConfig()
	if cfg.ModelStandard != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.ModelStandard)
	}
	if cfg.ModelAdvanced != "" {
		llmCfg = llmCfg.WithModel(llm.TierAdvanced, cfg.ModelAdvanced)
	}
	return llm.NewClient(ctx, llmCfg, cfg.GeminiAPIKey)
}
