package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshit/leadscout/internal/config"
	"github.com/harshit/leadscout/internal/db"
	"github.com/harshit/leadscout/internal/llm"
	"github.com/harshit/leadscout/internal/tables"
	"github.com/harshit/leadscout/internal/types"
)

// stageClient answers every pipeline prompt offline, routed by prompt shape.
type stageClient struct{}

func (c *stageClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	switch {
	case strings.Contains(prompt, "structured CSV format"):
		return "name,url,relevance_score,reasoning\nOnline Only Expo,not available,8,Virtual event", nil
	case strings.Contains(prompt, "rate how relevant"):
		return "Score: 7\nReason: Adjacent industry event.", nil
	case strings.Contains(prompt, "Provide concise company info"):
		return "- revenue: $2.1B\n- employee count: 9000\n- industry: signage\n- products: wrap media, laminates", nil
	case strings.Contains(prompt, "Respond EXACTLY in this format"):
		return "INDUSTRY FIT: Yes\nREVENUE: $2.1B\nQUALIFICATION SUMMARY:\n" +
			"- Strategic Relevance: Major player in signage films.\n" +
			"- Market Activity: Recently launched durable laminate line.", nil
	case strings.Contains(prompt, "Recipient:"):
		return "Hi there,\n\nGreat connecting at the expo.\nBest,\nHarshit\nDuPont Tedlar", nil
	default:
		return "", errors.New("unexpected prompt")
	}
}

func (c *stageClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateContent(ctx, prompt, tier)
}

func (c *stageClient) GetModel(_ llm.ModelTier) string { return "stage-client" }
func (c *stageClient) Close() error                    { return nil }

func exhibitorSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><a href="/exhibitor-list">See our exhibitors</a></body></html>`))
	})
	mux.HandleFunc("/exhibitor-list", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><ul>
			<li>Avery Dennison Graphics Solutions</li>
			<li>3M Commercial Solutions</li>
		</ul></body></html>`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRunPipeline_EndToEnd(t *testing.T) {
	server := exhibitorSite(t)
	dataDir := t.TempDir()

	manual := "name,url,relevance_score,reasoning\n" +
		"Test Sign Expo,\"" + server.URL + "\",9.5,Curated flagship event\n"
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "manual_events.csv"), []byte(manual), 0644))

	var stages []string
	opts := RunOptions{
		Config: config.Config{
			DataDir:         dataDir,
			ScoutPauseMS:    1,
			EnrichDelayMS:   1,
			OutreachDelayMS: 1,
		},
		Client: &stageClient{},
		OnProgress: func(event ProgressEvent) {
			stages = append(stages, event.Stage)
		},
	}

	require.NoError(t, RunPipeline(context.Background(), opts))

	assert.Equal(t, []string{
		db.StageScout, db.StageHunt, db.StageClean, db.StageEnrich,
		db.StageStakeholders, db.StageMessage, db.StageScore,
	}, stages)

	// Every stage artifact lands in the data directory.
	for _, name := range []string{
		"latest_leads.csv", "discovered_companies.csv", "cleaned_companies.csv",
		"enriched_companies.csv", "companies_with_stakeholders.csv",
		"companies_with_outreach.csv", "qualified_leads_scored.csv",
	} {
		_, err := os.Stat(filepath.Join(dataDir, name))
		assert.NoError(t, err, "missing artifact %s", name)
	}

	scored, err := tables.Load(filepath.Join(dataDir, "qualified_leads_scored.csv"),
		types.ColCompanyName, types.ColLeadScore, types.ColOutreachMessage)
	require.NoError(t, err)
	require.Greater(t, scored.Len(), 0)

	companies := map[string]bool{}
	for _, row := range scored.Rows {
		companies[row.Get(types.ColCompanyName)] = true

		_, ok := row.Float(types.ColLeadScore)
		assert.True(t, ok, "lead_score should be numeric")

		msg := row.Get(types.ColOutreachMessage)
		assert.True(t, strings.HasSuffix(msg, "DuPont Tedlar"), "unexpected message: %q", msg)
	}
	assert.True(t, companies["Avery Dennison Graphics Solutions"])
	assert.True(t, companies["3M Commercial Solutions"])

	// Scores are written highest first.
	prev := 1000.0
	for _, row := range scored.Rows {
		score, _ := row.Float(types.ColLeadScore)
		assert.LessOrEqual(t, score, prev)
		prev = score
	}
}

func TestRunPipeline_ScoutFailureStopsRun(t *testing.T) {
	dataDir := t.TempDir()

	// Unreadable manual events file: a directory where the CSV should be.
	require.NoError(t, os.Mkdir(filepath.Join(dataDir, "manual_events.csv"), 0755))

	opts := RunOptions{
		Config: config.Config{DataDir: dataDir, ScoutPauseMS: 1, EnrichDelayMS: 1, OutreachDelayMS: 1},
		Client: &stageClient{},
	}

	err := RunPipeline(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event scouting failed")
}
