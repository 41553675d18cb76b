package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a pipeline run record
type Run struct {
	ID             uuid.UUID  `json:"id"`
	DiscoveryQuery string     `json:"discovery_query"`
	DataDir        string     `json:"data_dir"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// Stage constants for the pipeline stages a run records
const (
	StageScout        = "scout"
	StageHunt         = "hunt"
	StageClean        = "clean"
	StageEnrich       = "enrich"
	StageStakeholders = "stakeholders"
	StageMessage      = "message"
	StageScore        = "score"
)

// Stage status values
const (
	StageStatusRunning   = "running"
	StageStatusCompleted = "completed"
	StageStatusFailed    = "failed"
	StageStatusSkipped   = "skipped"
)

// StageRecord captures the outcome of one stage within a run
type StageRecord struct {
	ID           uuid.UUID  `json:"id"`
	RunID        uuid.UUID  `json:"run_id"`
	Stage        string     `json:"stage"`
	Status       string     `json:"status"`
	RowsIn       int        `json:"rows_in"`
	RowsOut      int        `json:"rows_out"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	DurationMs   *int       `json:"duration_ms,omitempty"`
}

// StageArtifact is the stored summary of a stage's CSV output
type StageArtifact struct {
	ID        uuid.UUID `json:"id"`
	RunID     uuid.UUID `json:"run_id"`
	Stage     string    `json:"stage"`
	Path      string    `json:"path"`
	RowCount  int       `json:"row_count"`
	Columns   []string  `json:"columns"`
	CreatedAt time.Time `json:"created_at"`
}
