package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageConstants(t *testing.T) {
	stages := []string{
		StageScout,
		StageHunt,
		StageClean,
		StageEnrich,
		StageStakeholders,
		StageMessage,
		StageScore,
	}

	seen := map[string]bool{}
	for _, stage := range stages {
		assert.NotEmpty(t, stage, "stage constant should not be empty")
		assert.False(t, seen[stage], "stage constant should be unique: %s", stage)
		seen[stage] = true
	}
}

func TestRunType(t *testing.T) {
	run := Run{
		DiscoveryQuery: "2025 signage and print expos in the US",
		DataDir:        "data",
		Status:         "running",
	}

	assert.Equal(t, "2025 signage and print expos in the US", run.DiscoveryQuery)
	assert.Equal(t, "data", run.DataDir)
	assert.Equal(t, "running", run.Status)
	assert.Nil(t, run.CompletedAt)
}

func TestStageRecordType(t *testing.T) {
	record := StageRecord{
		Stage:   StageEnrich,
		Status:  StageStatusCompleted,
		RowsIn:  42,
		RowsOut: 40,
	}

	assert.Equal(t, "enrich", record.Stage)
	assert.Equal(t, "completed", record.Status)
	assert.Nil(t, record.ErrorMessage)
	assert.Nil(t, record.DurationMs)
}
