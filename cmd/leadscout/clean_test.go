package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCleanFixture(t *testing.T, discovered string) string {
	t.Helper()
	tmpDir := t.TempDir()

	discoveredPath := filepath.Join(tmpDir, "discovered_companies.csv")
	require.NoError(t, os.WriteFile(discoveredPath, []byte(discovered), 0644))

	configPath := filepath.Join(tmpDir, "config.json")
	content := `{"data_dir": "` + tmpDir + `"}`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	flagConfigPath = configPath
	t.Cleanup(func() { flagConfigPath = "" })
	return tmpDir
}

func TestRunClean_WritesCleanedCompanies(t *testing.T) {
	clearCredentialEnv(t)
	tmpDir := writeCleanFixture(t,
		"company_name,event_name,event_relevance_score\nAcme Corp,ISA Sign Expo 2025,9\n")

	err := runClean(cleanCmd, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(tmpDir, "cleaned_companies.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Acme Corp")
}

func TestRunClean_FailsWhenEverythingFiltered(t *testing.T) {
	clearCredentialEnv(t)
	// "Login" is denylist noise and normalizes to empty, so nothing survives.
	tmpDir := writeCleanFixture(t,
		"company_name,event_name,event_relevance_score\nLogin,ISA Sign Expo 2025,9\n")

	err := runClean(cleanCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "removed every discovered company")

	_, statErr := os.Stat(filepath.Join(tmpDir, "cleaned_companies.csv"))
	assert.True(t, os.IsNotExist(statErr), "empty result must not be written")
}
