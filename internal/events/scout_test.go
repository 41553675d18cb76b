package events

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshit/leadscout/internal/llm"
)

// scriptedClient returns canned responses keyed by model tier.
type scriptedClient struct {
	responses map[llm.ModelTier]string
	errs      map[llm.ModelTier]error
	calls     []llm.ModelTier
}

func (c *scriptedClient) GenerateContent(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
	c.calls = append(c.calls, tier)
	if err := c.errs[tier]; err != nil {
		return "", err
	}
	return c.responses[tier], nil
}

func (c *scriptedClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateContent(ctx, prompt, tier)
}

func (c *scriptedClient) GetModel(_ llm.ModelTier) string { return "scripted" }
func (c *scriptedClient) Close() error                    { return nil }

func testScout(client llm.Client) *Scout {
	s := NewScout(client)
	s.Pause = 0
	s.Retry = llm.RetryPolicy{MaxAttempts: 1, BaseDelay: 0, MaxDelay: 0}
	return s
}

func TestClassifyPriority_Buckets(t *testing.T) {
	assert.Equal(t, PriorityHigh, ClassifyPriority("9.5"))
	assert.Equal(t, PriorityHigh, ClassifyPriority("9"))
	assert.Equal(t, PriorityMedium, ClassifyPriority("7"))
	assert.Equal(t, PriorityLow, ClassifyPriority("3"))
	assert.Equal(t, PriorityUnknown, ClassifyPriority("n/a"))
	assert.Equal(t, PriorityUnknown, ClassifyPriority(""))
}

func TestClassifyPriority_NaNIsLow(t *testing.T) {
	// "nan" parses as a float, so coercion succeeds and both threshold
	// comparisons are false.
	assert.Equal(t, PriorityLow, ClassifyPriority("nan"))
}

func TestParseDiscoveryResponse_SkipsHeaderAndBadRows(t *testing.T) {
	content := strings.Join([]string{
		"name,url,relevance_score,reasoning",
		"",
		"ISA Sign Expo 2025,https://isasignexpo2025.mapyourshow.com/,9.5,Major signage event",
		"Mystery Expo,not available,8,No link published",
		"Broken Expo,ftp://example.com,8,Wrong scheme",
		"Short Expo,https://short.example.com,7",
		`"Wrap Summit","https://wrapsummit.example.com",bad-score,Strong vehicle wrap focus`,
	}, "\n")

	found := ParseDiscoveryResponse(content)

	require.Len(t, found, 2)
	assert.Equal(t, "ISA Sign Expo 2025", found[0].Name)
	assert.Equal(t, "9.5", found[0].RelevanceScore)
	assert.Equal(t, SourceLLMSearch, found[0].Source)
	assert.Equal(t, "Wrap Summit", found[1].Name)
	assert.Equal(t, "0", found[1].RelevanceScore)
	assert.Equal(t, "Strong vehicle wrap focus", found[1].Reasoning)
}

func TestParseScoreResponse_WellFormed(t *testing.T) {
	score, reason, err := ParseScoreResponse("Score: 8.5\nReason: Strong overlap with wraps")

	require.NoError(t, err)
	assert.Equal(t, 8.5, score)
	assert.Equal(t, "Strong overlap with wraps", reason)
}

func TestParseScoreResponse_ToleratesExtraLines(t *testing.T) {
	score, reason, err := ParseScoreResponse("Here is my assessment.\n\nScore: 6\nReason: Adjacent market\nThanks!")

	require.NoError(t, err)
	assert.Equal(t, 6.0, score)
	assert.Equal(t, "Adjacent market", reason)
}

func TestParseScoreResponse_MissingScore(t *testing.T) {
	_, _, err := ParseScoreResponse("Reason: no score given")

	require.Error(t, err)
}

func TestParseScoreResponse_UnparseableScore(t *testing.T) {
	_, _, err := ParseScoreResponse("Score: very high\nReason: enthusiasm")

	require.Error(t, err)
}

func TestScoreEvents_SkipsAlreadyScored(t *testing.T) {
	client := &scriptedClient{responses: map[llm.ModelTier]string{
		llm.TierAdvanced: "Score: 8\nReason: relevant",
	}}
	scout := testScout(client)
	events := []Event{
		{Name: "Scored", RelevanceScore: "9.5", Reasoning: "curated"},
		{Name: "Unscored"},
	}

	require.NoError(t, scout.ScoreEvents(context.Background(), events))

	assert.Equal(t, "9.5", events[0].RelevanceScore)
	assert.Equal(t, "curated", events[0].Reasoning)
	assert.Equal(t, "8", events[1].RelevanceScore)
	assert.Equal(t, "relevant", events[1].Reasoning)
	assert.Equal(t, []llm.ModelTier{llm.TierAdvanced}, client.calls)
}

func TestRelevanceScore_FallsBackToStandardTier(t *testing.T) {
	client := &scriptedClient{
		errs:      map[llm.ModelTier]error{llm.TierAdvanced: errors.New("quota exceeded")},
		responses: map[llm.ModelTier]string{llm.TierStandard: "Score: 7\nReason: fallback model"},
	}
	scout := testScout(client)

	score, reason := scout.relevanceScore(context.Background(), "Expo", "https://expo.example.com")

	assert.Equal(t, 7.0, score)
	assert.Equal(t, "fallback model", reason)
	assert.Equal(t, []llm.ModelTier{llm.TierAdvanced, llm.TierStandard}, client.calls)
}

func TestRelevanceScore_BothTiersFail(t *testing.T) {
	client := &scriptedClient{errs: map[llm.ModelTier]error{
		llm.TierAdvanced: errors.New("down"),
		llm.TierStandard: errors.New("down"),
	}}
	scout := testScout(client)

	score, reason := scout.relevanceScore(context.Background(), "Expo", "https://expo.example.com")

	assert.Equal(t, 0.0, score)
	assert.Equal(t, fallbackReason, reason)
}

func TestDiscover_ReturnsParsedEvents(t *testing.T) {
	client := &scriptedClient{responses: map[llm.ModelTier]string{
		llm.TierStandard: "name,url,relevance_score,reasoning\nPRINTING United 2025,https://printingunited.com,9,Large format printing",
	}}
	scout := testScout(client)

	found, err := scout.Discover(context.Background())

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "PRINTING United 2025", found[0].Name)
}

func TestRun_MergesScoresAndClassifies(t *testing.T) {
	client := &scriptedClient{responses: map[llm.ModelTier]string{
		llm.TierStandard: "Expo Alpha,https://alpha.example.com,9.5,Core market",
		llm.TierAdvanced: "Score: 4\nReason: tangential",
	}}
	scout := testScout(client)

	events, err := scout.Run(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Expo Alpha", events[0].Name)
	assert.Equal(t, "9.5", events[0].RelevanceScore)
	assert.Equal(t, PriorityHigh, events[0].Priority)
}
