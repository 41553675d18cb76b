package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StartStage records that a stage began executing for a run
func (db *DB) StartStage(ctx context.Context, runID uuid.UUID, stage string, rowsIn int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO run_stages (run_id, stage, status, rows_in, started_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (run_id, stage) DO UPDATE
		 SET status = $3, rows_in = $4, rows_out = 0, error_message = NULL,
		     started_at = NOW(), completed_at = NULL, duration_ms = NULL
		 RETURNING id`,
		runID, stage, StageStatusRunning, rowsIn,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to start stage %s: %w", stage, err)
	}
	return id, nil
}

// FinishStage marks a stage completed or failed, recording output size and
// how long it ran.
func (db *DB) FinishStage(ctx context.Context, runID uuid.UUID, stage, status string, rowsOut int, errorMsg *string) error {
	record, err := db.GetStage(ctx, runID, stage)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("stage not found: %s", stage)
	}

	now := time.Now()
	durationMs := int(now.Sub(record.StartedAt).Milliseconds())

	_, err = db.pool.Exec(ctx,
		`UPDATE run_stages
		 SET status = $1, rows_out = $2, error_message = $3,
		     completed_at = $4, duration_ms = $5
		 WHERE run_id = $6 AND stage = $7`,
		status, rowsOut, errorMsg, now, durationMs, runID, stage,
	)
	if err != nil {
		return fmt.Errorf("failed to finish stage %s: %w", stage, err)
	}
	return nil
}

// GetStage retrieves a stage record by run and stage name
func (db *DB) GetStage(ctx context.Context, runID uuid.UUID, stage string) (*StageRecord, error) {
	var record StageRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, run_id, stage, status, rows_in, rows_out, error_message,
		        started_at, completed_at, duration_ms
		 FROM run_stages WHERE run_id = $1 AND stage = $2`,
		runID, stage,
	).Scan(&record.ID, &record.RunID, &record.Stage, &record.Status,
		&record.RowsIn, &record.RowsOut, &record.ErrorMessage,
		&record.StartedAt, &record.CompletedAt, &record.DurationMs)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stage %s: %w", stage, err)
	}
	return &record, nil
}

// ListStages retrieves all stage records for a run in execution order
func (db *DB) ListStages(ctx context.Context, runID uuid.UUID) ([]StageRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, run_id, stage, status, rows_in, rows_out, error_message,
		        started_at, completed_at, duration_ms
		 FROM run_stages WHERE run_id = $1 ORDER BY started_at`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	defer rows.Close()

	var records []StageRecord
	for rows.Next() {
		var record StageRecord
		if err := rows.Scan(&record.ID, &record.RunID, &record.Stage, &record.Status,
			&record.RowsIn, &record.RowsOut, &record.ErrorMessage,
			&record.StartedAt, &record.CompletedAt, &record.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// SaveStageArtifact stores the summary of a stage's CSV output
func (db *DB) SaveStageArtifact(ctx context.Context, runID uuid.UUID, stage, path string, rowCount int, columns []string) error {
	columnsJSON, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO stage_artifacts (run_id, stage, path, row_count, columns)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (run_id, stage) DO UPDATE
		 SET path = $3, row_count = $4, columns = $5, created_at = NOW()`,
		runID, stage, path, rowCount, columnsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact for stage %s: %w", stage, err)
	}
	return nil
}

// GetStageArtifact retrieves the stored artifact summary for a stage
func (db *DB) GetStageArtifact(ctx context.Context, runID uuid.UUID, stage string) (*StageArtifact, error) {
	var artifact StageArtifact
	var columnsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, run_id, stage, path, row_count, columns, created_at
		 FROM stage_artifacts WHERE run_id = $1 AND stage = $2`,
		runID, stage,
	).Scan(&artifact.ID, &artifact.RunID, &artifact.Stage, &artifact.Path,
		&artifact.RowCount, &columnsJSON, &artifact.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact for stage %s: %w", stage, err)
	}

	if columnsJSON != nil {
		_ = json.Unmarshal(columnsJSON, &artifact.Columns)
	}

	return &artifact, nil
}
