// Package pipeline provides the high-level orchestration for the lead
// generation process: event scouting, exhibitor hunting, cleaning,
// enrichment, stakeholder synthesis, outreach drafting, and scoring.
package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/harshit/leadscout/internal/cleaning"
	"github.com/harshit/leadscout/internal/config"
	"github.com/harshit/leadscout/internal/db"
	"github.com/harshit/leadscout/internal/enrichment"
	"github.com/harshit/leadscout/internal/events"
	"github.com/harshit/leadscout/internal/fetch"
	"github.com/harshit/leadscout/internal/hunting"
	"github.com/harshit/leadscout/internal/llm"
	"github.com/harshit/leadscout/internal/observability"
	"github.com/harshit/leadscout/internal/outreach"
	"github.com/harshit/leadscout/internal/research"
	"github.com/harshit/leadscout/internal/stakeholders"
	"github.com/harshit/leadscout/internal/tables"
	"github.com/harshit/leadscout/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Rows    int    `json:"rows"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Config     config.Config
	Client     llm.Client
	OnProgress ProgressCallback
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, stage, message string, rows int) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Stage:   stage,
			Message: message,
			Rows:    rows,
		})
	}
}

// recorder mirrors stage outcomes into the database when one is configured.
// Persistence failures are warnings; the CSV artifacts remain authoritative.
type recorder struct {
	db    *db.DB
	runID uuid.UUID
}

func (r *recorder) start(ctx context.Context, stage string, rowsIn int) {
	if r.db == nil {
		return
	}
	if _, err := r.db.StartStage(ctx, r.runID, stage, rowsIn); err != nil {
		fmt.Printf("Warning: failed to record stage start: %v\n", err)
	}
}

func (r *recorder) finish(ctx context.Context, stage string, rowsOut int, stageErr error) {
	if r.db == nil {
		return
	}
	status := db.StageStatusCompleted
	var errMsg *string
	if stageErr != nil {
		status = db.StageStatusFailed
		msg := stageErr.Error()
		errMsg = &msg
	}
	if err := r.db.FinishStage(ctx, r.runID, stage, status, rowsOut, errMsg); err != nil {
		fmt.Printf("Warning: failed to record stage finish: %v\n", err)
	}
}

func (r *recorder) artifact(ctx context.Context, stage, path string, t *tables.Table) {
	if r.db == nil {
		return
	}
	if err := r.db.SaveStageArtifact(ctx, r.runID, stage, path, t.Len(), t.Columns); err != nil {
		fmt.Printf("Warning: failed to record stage artifact: %v\n", err)
	}
}

// RunPipeline orchestrates the full lead generation pipeline
func RunPipeline(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config.MergeWithDefaults(config.Defaults())
	printer := observability.NewPrinter(os.Stdout)

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if cfg.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if cfg.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	discoveryQuery := cfg.DiscoveryQuery
	if discoveryQuery == "" {
		discoveryQuery = events.DefaultDiscoveryQuery
	}

	if database != nil {
		var err error
		runID, err = database.CreateRun(ctx, discoveryQuery, cfg.DataDir)
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
			database = nil
		} else if cfg.Verbose {
			fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
		}
	}
	rec := &recorder{db: database, runID: runID}

	// Step 1: Scout events
	fmt.Printf("Step 1/7: Scouting industry events...\n")
	rec.start(ctx, db.StageScout, 0)
	scout := events.NewScout(opts.Client)
	scout.Query = discoveryQuery
	if cfg.ScoutPauseMS > 0 {
		scout.Pause = time.Duration(cfg.ScoutPauseMS) * time.Millisecond
	}
	evts, err := scout.Run(ctx, cfg.ManualEventsPath())
	if err != nil {
		rec.finish(ctx, db.StageScout, 0, err)
		return failRun(ctx, database, runID, fmt.Errorf("event scouting failed: %w", err))
	}
	leads := events.ToTable(evts)
	if err := leads.Save(cfg.LatestLeadsPath()); err != nil {
		rec.finish(ctx, db.StageScout, 0, err)
		return failRun(ctx, database, runID, err)
	}
	if cfg.Verbose {
		printer.PrintEvents(evts)
	}
	rec.finish(ctx, db.StageScout, leads.Len(), nil)
	rec.artifact(ctx, db.StageScout, cfg.LatestLeadsPath(), leads)
	emitProgress(&opts, db.StageScout, fmt.Sprintf("Scouted %d events", leads.Len()), leads.Len())

	// Step 2: Hunt exhibitors
	fmt.Printf("Step 2/7: Hunting exhibiting companies...\n")
	rec.start(ctx, db.StageHunt, leads.Len())
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
		rec.finish(ctx, db.StageHunt, 0, err)
		return failRun(ctx, database, runID, fmt.Errorf("exhibitor hunting failed: %w", err))
	}
	if err := discovered.Save(cfg.DiscoveredCompaniesPath()); err != nil {
		rec.finish(ctx, db.StageHunt, 0, err)
		return failRun(ctx, database, runID, err)
	}
	if cfg.Verbose {
		printer.PrintCompanies(discovered)
	}
	rec.finish(ctx, db.StageHunt, discovered.Len(), nil)
	rec.artifact(ctx, db.StageHunt, cfg.DiscoveredCompaniesPath(), discovered)
	emitProgress(&opts, db.StageHunt, fmt.Sprintf("Discovered %d companies", discovered.Len()), discovered.Len())

	// Step 3: Clean discovered companies
	fmt.Printf("Step 3/7: Cleaning discovered companies...\n")
	rec.start(ctx, db.StageClean, discovered.Len())
	denylist := cleaning.DefaultDenylist()
	if len(cfg.DenylistTerms) > 0 {
		denylist = cfg.DenylistTerms
	}
	cleaner := cleaning.NewCleaner(denylist)
	cleaned, err := cleaner.CleanTable(discovered)
	if err != nil {
		rec.finish(ctx, db.StageClean, 0, err)
		return failRun(ctx, database, runID, fmt.Errorf("cleaning failed: %w", err))
	}
	summary := cleaning.Summary{Input: discovered.Len(), Output: cleaned.Len()}
	fmt.Printf("Cleaning: %s\n", summary)
	if cfg.Verbose {
		printer.PrintCleaningSummary(summary)
	}
	if cleaned.Len() == 0 {
		err := fmt.Errorf("cleaning removed every discovered company; nothing to enrich")
		rec.finish(ctx, db.StageClean, 0, err)
		return failRun(ctx, database, runID, err)
	}
	if err := cleaned.Save(cfg.CleanedCompaniesPath()); err != nil {
		rec.finish(ctx, db.StageClean, 0, err)
		return failRun(ctx, database, runID, err)
	}
	rec.finish(ctx, db.StageClean, cleaned.Len(), nil)
	rec.artifact(ctx, db.StageClean, cfg.CleanedCompaniesPath(), cleaned)
	emitProgress(&opts, db.StageClean, summary.String(), cleaned.Len())

	// Step 4: Enrich companies
	fmt.Printf("Step 4/7: Enriching companies...\n")
	rec.start(ctx, db.StageEnrich, cleaned.Len())
	enricher := enrichment.NewEnricher(opts.Client)
	enricher.ShowProgress = true
	if cfg.EnrichDelayMS > 0 {
		enricher.BaseDelay = time.Duration(cfg.EnrichDelayMS) * time.Millisecond
		enricher.HighPriorityDelay = 2 * enricher.BaseDelay
	}
	enriched, err := enricher.EnrichTable(ctx, cleaned)
	if err != nil {
		rec.finish(ctx, db.StageEnrich, 0, err)
		return failRun(ctx, database, runID, fmt.Errorf("enrichment failed: %w", err))
	}
	if err := enriched.Save(cfg.EnrichedCompaniesPath()); err != nil {
		rec.finish(ctx, db.StageEnrich, 0, err)
		return failRun(ctx, database, runID, err)
	}
	rec.finish(ctx, db.StageEnrich, enriched.Len(), nil)
	rec.artifact(ctx, db.StageEnrich, cfg.EnrichedCompaniesPath(), enriched)
	emitProgress(&opts, db.StageEnrich, fmt.Sprintf("Enriched %d companies", enriched.Len()), enriched.Len())

	// Step 5: Synthesize stakeholders
	fmt.Printf("Step 5/7: Finding stakeholders...\n")
	rec.start(ctx, db.StageStakeholders, enriched.Len())
	finder := stakeholders.NewFinder(rand.New(rand.NewSource(time.Now().UnixNano())))
	if cfg.MaxStakeholders > 0 {
		finder.MaxStakeholders = cfg.MaxStakeholders
	}
	withStakeholders, err := finder.Run(enriched)
	if err != nil {
		rec.finish(ctx, db.StageStakeholders, 0, err)
		return failRun(ctx, database, runID, fmt.Errorf("stakeholder synthesis failed: %w", err))
	}
	if err := withStakeholders.Save(cfg.StakeholdersPath()); err != nil {
		rec.finish(ctx, db.StageStakeholders, 0, err)
		return failRun(ctx, database, runID, err)
	}
	rec.finish(ctx, db.StageStakeholders, withStakeholders.Len(), nil)
	rec.artifact(ctx, db.StageStakeholders, cfg.StakeholdersPath(), withStakeholders)
	emitProgress(&opts, db.StageStakeholders,
		fmt.Sprintf("Expanded to %d stakeholder rows", withStakeholders.Len()), withStakeholders.Len())

	// Step 6: Draft outreach messages
	fmt.Printf("Step 6/7: Drafting outreach messages...\n")
	rec.start(ctx, db.StageMessage, withStakeholders.Len())
	agent := outreach.NewAgent(opts.Client)
	agent.ShowProgress = true
	if cfg.OutreachDelayMS > 0 {
		agent.Delay = time.Duration(cfg.OutreachDelayMS) * time.Millisecond
	}
	withOutreach, err := agent.Run(ctx, withStakeholders)
	if err != nil {
		rec.finish(ctx, db.StageMessage, 0, err)
		return failRun(ctx, database, runID, fmt.Errorf("outreach drafting failed: %w", err))
	}
	if err := withOutreach.Save(cfg.OutreachPath()); err != nil {
		rec.finish(ctx, db.StageMessage, 0, err)
		return failRun(ctx, database, runID, err)
	}
	rec.finish(ctx, db.StageMessage, withOutreach.Len(), nil)
	rec.artifact(ctx, db.StageMessage, cfg.OutreachPath(), withOutreach)
	emitProgress(&opts, db.StageMessage,
		fmt.Sprintf("Drafted %d messages", withOutreach.Len()), withOutreach.Len())

	// Step 7: Score leads
	fmt.Printf("Step 7/7: Scoring qualified leads...\n")
	rec.start(ctx, db.StageScore, withOutreach.Len())
	scored := ScoreTable(withOutreach)
	if err := scored.Save(cfg.ScoredLeadsPath()); err != nil {
		rec.finish(ctx, db.StageScore, 0, err)
		return failRun(ctx, database, runID, err)
	}
	if cfg.Verbose {
		printer.PrintTopLeads(scored)
		if scored.Len() > 0 {
			top := scored.Rows[0]
			printer.PrintScoreBreakdown(top.Get(types.ColCompanyName), scoringBreakdown(top))
		}
	}
	rec.finish(ctx, db.StageScore, scored.Len(), nil)
	rec.artifact(ctx, db.StageScore, cfg.ScoredLeadsPath(), scored)
	emitProgress(&opts, db.StageScore, fmt.Sprintf("Scored %d leads", scored.Len()), scored.Len())

	if database != nil {
		_ = database.CompleteRun(ctx, runID, "completed")
	}

	fmt.Printf("Done! %d scored leads written to %s\n", scored.Len(), cfg.ScoredLeadsPath())
	return nil
}

func failRun(ctx context.Context, database *db.DB, runID uuid.UUID, err error) error {
	if database != nil {
		_ = database.CompleteRun(ctx, runID, "failed")
	}
	return err
}
