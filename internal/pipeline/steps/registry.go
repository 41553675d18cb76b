// Package steps tracks stage ordering for the lead generation pipeline and
// answers which stages of a persisted run can execute next.
package steps

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	dbpkg "github.com/harshit/leadscout/internal/db"
)

// StageDefinition defines metadata for a pipeline stage
type StageDefinition struct {
	Name         string
	Dependencies []string
}

// StageRegistry holds all stage definitions. The pipeline is a linear chain:
// each stage consumes the CSV artifact of the one before it.
var StageRegistry = map[string]StageDefinition{
	dbpkg.StageScout: {
		Name:         dbpkg.StageScout,
		Dependencies: []string{},
	},
	dbpkg.StageHunt: {
		Name:         dbpkg.StageHunt,
		Dependencies: []string{dbpkg.StageScout},
	},
	dbpkg.StageClean: {
		Name:         dbpkg.StageClean,
		Dependencies: []string{dbpkg.StageHunt},
	},
	dbpkg.StageEnrich: {
		Name:         dbpkg.StageEnrich,
		Dependencies: []string{dbpkg.StageClean},
	},
	dbpkg.StageStakeholders: {
		Name:         dbpkg.StageStakeholders,
		Dependencies: []string{dbpkg.StageEnrich},
	},
	dbpkg.StageMessage: {
		Name:         dbpkg.StageMessage,
		Dependencies: []string{dbpkg.StageStakeholders},
	},
	dbpkg.StageScore: {
		Name:         dbpkg.StageScore,
		Dependencies: []string{dbpkg.StageMessage},
	},
}

// StageStore is the read side of stage persistence that dependency checks
// need. *db.DB satisfies it.
type StageStore interface {
	GetStage(ctx context.Context, runID uuid.UUID, stage string) (*dbpkg.StageRecord, error)
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Stage               string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing dependencies: %v", e.MissingDependencies)
}

// ValidateDependencies checks if all required dependencies for a stage are completed
func ValidateDependencies(ctx context.Context, db StageStore, runID uuid.UUID, stageName string) error {
	def, ok := StageRegistry[stageName]
	if !ok {
		return fmt.Errorf("unknown stage: %s", stageName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		record, err := db.GetStage(ctx, runID, dep)
		if err != nil {
			return fmt.Errorf("failed to check dependency %s: %w", dep, err)
		}
		if record == nil || record.Status != dbpkg.StageStatusCompleted {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Stage:               stageName,
			MissingDependencies: missing,
		}
	}

	return nil
}

// GetAvailableStages returns stages that can be executed (dependencies met),
// sorted by name for stable output.
func GetAvailableStages(ctx context.Context, db StageStore, runID uuid.UUID) ([]string, error) {
	var available []string

	for stageName := range StageRegistry {
		existing, err := db.GetStage(ctx, runID, stageName)
		if err != nil {
			return nil, fmt.Errorf("failed to check stage %s: %w", stageName, err)
		}
		if existing != nil && existing.Status == dbpkg.StageStatusCompleted {
			continue // Already completed
		}
		if existing != nil && existing.Status == dbpkg.StageStatusRunning {
			continue // Currently in progress
		}

		if err := ValidateDependencies(ctx, db, runID, stageName); err != nil {
			continue // Dependencies not met
		}

		available = append(available, stageName)
	}

	sort.Strings(available)
	return available, nil
}

// GetBlockedStages returns stages whose dependencies are not met, sorted by
// name for stable output.
func GetBlockedStages(ctx context.Context, db StageStore, runID uuid.UUID) ([]string, error) {
	var blocked []string

	for stageName := range StageRegistry {
		existing, err := db.GetStage(ctx, runID, stageName)
		if err != nil {
			return nil, fmt.Errorf("failed to check stage %s: %w", stageName, err)
		}
		if existing != nil && (existing.Status == dbpkg.StageStatusCompleted || existing.Status == dbpkg.StageStatusRunning) {
			continue
		}

		if err := ValidateDependencies(ctx, db, runID, stageName); err != nil {
			blocked = append(blocked, stageName)
		}
	}

	sort.Strings(blocked)
	return blocked, nil
}
