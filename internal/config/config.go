// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Environment variable names read by FromEnv. Values from the environment
// override the config file, and CLI flags override both.
const (
	EnvGeminiAPIKey   = "GEMINI_API_KEY"
	EnvSearchAPIKey   = "GOOGLE_SEARCH_API_KEY"
	EnvSearchEngineCX = "GOOGLE_SEARCH_CX"
	EnvDatabaseURL    = "DATABASE_URL"
)

// Config represents the pipeline configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	DataDir string `json:"data_dir,omitempty"` // Directory for stage CSV artifacts

	// Credentials
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key
	SearchAPIKey string `json:"search_api_key,omitempty"` // Google Custom Search API key
	SearchCX     string `json:"search_cx,omitempty"`      // Custom Search engine ID
	DatabaseURL  string `json:"database_url,omitempty"`   // PostgreSQL connection URL

	// Discovery
	DiscoveryQuery  string `json:"discovery_query,omitempty"` // Override for the event discovery query
	MaxStakeholders int    `json:"max_stakeholders,omitempty" validate:"gte=0,lte=20"`

	// Models
	ModelStandard string `json:"model_standard,omitempty"` // Standard-tier model override
	ModelAdvanced string `json:"model_advanced,omitempty"` // Advanced-tier model override

	// Cleaning
	DenylistTerms []string `json:"denylist_terms,omitempty"` // Override for the cleaning denylist

	// Pacing, in milliseconds between LLM calls per stage
	ScoutPauseMS    int `json:"scout_pause_ms,omitempty" validate:"gte=0"`
	EnrichDelayMS   int `json:"enrich_delay_ms,omitempty" validate:"gte=0"`
	OutreachDelayMS int `json:"outreach_delay_ms,omitempty" validate:"gte=0"`

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for script-rendered directories
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed stage diagnostics
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv overlays credential fields from the environment. Environment values
// win over file values so deployments can keep secrets out of config files.
func (c *Config) FromEnv() {
	if v := os.Getenv(EnvGeminiAPIKey); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv(EnvSearchAPIKey); v != "" {
		c.SearchAPIKey = v
	}
	if v := os.Getenv(EnvSearchEngineCX); v != "" {
		c.SearchCX = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
}

// Validate checks that the configuration has valid values.
// Note: required credentials are checked per command, since not every stage
// needs every key.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("config validation: %w", err)
		}
		for _, fieldErr := range err.(validator.ValidationErrors) {
			return fmt.Errorf("config error: field %q fails constraint %q", fieldErr.Field(), fieldErr.Tag())
		}
	}

	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: data_dir is not a directory: %s", c.DataDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchCX == "" {
		result.SearchCX = defaults.SearchCX
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.DiscoveryQuery == "" {
		result.DiscoveryQuery = defaults.DiscoveryQuery
	}
	if result.ModelStandard == "" {
		result.ModelStandard = defaults.ModelStandard
	}
	if result.ModelAdvanced == "" {
		result.ModelAdvanced = defaults.ModelAdvanced
	}
	if result.DenylistTerms == nil {
		result.DenylistTerms = defaults.DenylistTerms
	}
	if result.MaxStakeholders == 0 {
		result.MaxStakeholders = defaults.MaxStakeholders
	}
	if result.ScoutPauseMS == 0 {
		result.ScoutPauseMS = defaults.ScoutPauseMS
	}
	if result.EnrichDelayMS == 0 {
		result.EnrichDelayMS = defaults.EnrichDelayMS
	}
	if result.OutreachDelayMS == 0 {
		result.OutreachDelayMS = defaults.OutreachDelayMS
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Defaults returns the built-in configuration the CLI starts from.
func Defaults() Config {
	return Config{
		DataDir:         "data",
		MaxStakeholders: 5,
		ScoutPauseMS:    1500,
		EnrichDelayMS:   1000,
		OutreachDelayMS: 250,
	}
}

// Artifact path helpers. Every stage reads and writes fixed filenames under
// the data directory.

func (c *Config) path(name string) string {
	dir := c.DataDir
	if dir == "" {
		dir = "data"
	}
	return filepath.Join(dir, name)
}

func (c *Config) ManualEventsPath() string        { return c.path("manual_events.csv") }
func (c *Config) LatestLeadsPath() string         { return c.path("latest_leads.csv") }
func (c *Config) DiscoveredCompaniesPath() string { return c.path("discovered_companies.csv") }
func (c *Config) CleanedCompaniesPath() string    { return c.path("cleaned_companies.csv") }
func (c *Config) EnrichedCompaniesPath() string   { return c.path("enriched_companies.csv") }
func (c *Config) StakeholdersPath() string        { return c.path("companies_with_stakeholders.csv") }
func (c *Config) OutreachPath() string            { return c.path("companies_with_outreach.csv") }
func (c *Config) ScoredLeadsPath() string         { return c.path("qualified_leads_scored.csv") }
