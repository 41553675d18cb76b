package enrichment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshit/leadscout/internal/llm"
	"github.com/harshit/leadscout/internal/tables"
	"github.com/harshit/leadscout/internal/types"
)

// promptClient routes canned answers by prompt content.
type promptClient struct {
	intelResponse string
	qualResponse  string
	intelErr      error
	qualErr       error
	qualTiers     []llm.ModelTier
}

func (c *promptClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if strings.Contains(prompt, "Provide concise company info") {
		return c.intelResponse, c.intelErr
	}
	c.qualTiers = append(c.qualTiers, tier)
	return c.qualResponse, c.qualErr
}

func (c *promptClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateContent(ctx, prompt, tier)
}

func (c *promptClient) GetModel(_ llm.ModelTier) string { return "prompt-client" }
func (c *promptClient) Close() error                    { return nil }

func newTestEnricher(client llm.Client) *Enricher {
	e := NewEnricher(client)
	e.BaseDelay = 0
	e.HighPriorityDelay = 0
	e.Retry = llm.RetryPolicy{MaxAttempts: 1, BaseDelay: 0, MaxDelay: 0}
	e.Now = func() time.Time { return time.Date(2025, 4, 23, 12, 0, 0, 0, time.UTC) }
	return e
}

func inputTable(rows ...tables.Row) *tables.Table {
	t := tables.New(types.ColCompanyName, types.ColEventName, types.ColEventRelevanceScore)
	for _, row := range rows {
		t.Append(row)
	}
	return t
}

func TestEnrichTable_FullRow(t *testing.T) {
	client := &promptClient{
		intelResponse: "- revenue: $8.4B\n- employee count: 36000\n- industry: signage\n- products: protective films, wrap media",
		qualResponse: "INDUSTRY FIT: Yes\nREVENUE: $8.4B\nQUALIFICATION SUMMARY:\n" +
			"- Strategic Relevance: Major player in protective films.\n" +
			"- Market Activity: Launched durable wrap line.",
	}
	enricher := newTestEnricher(client)
	in := inputTable(tables.Row{
		types.ColCompanyName:         "Avery Dennison",
		types.ColEventName:           "ISA Sign Expo 2025",
		types.ColEventRelevanceScore: "9.5",
	})

	out, err := enricher.EnrichTable(context.Background(), in)

	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	row := out.Rows[0]
	assert.Equal(t, "8400000000", row.Get(types.ColRevenueUSD))
	assert.Equal(t, "36000", row.Get(types.ColEmployees))
	assert.Equal(t, "Signage", row.Get(types.ColIndustry))
	assert.Equal(t, "protective films, wrap media", row.Get(types.ColProducts))
	assert.Equal(t, "Yes", row.Get(types.ColIndustryFit))
	assert.Equal(t, "$8.4B", row.Get(types.ColRevenueDisplay))
	assert.Equal(t, "Major player in protective films.", row.Get(types.ColStrategicRelevance))
	assert.Equal(t, "Launched durable wrap line.", row.Get(types.ColMarketActivity))
	assert.Contains(t, row.Get(types.ColQualifiedLeadReasons), "Industry Fit: Signage")
	assert.Equal(t, "2025-04-23T12:00:00Z", row.Get(types.ColEnrichmentTimestamp))
}

func TestEnrichTable_HighRelevanceUsesAdvancedTier(t *testing.T) {
	client := &promptClient{qualResponse: "INDUSTRY FIT: Maybe"}
	enricher := newTestEnricher(client)

	in := inputTable(
		tables.Row{
			types.ColCompanyName:         "Arlon Graphics",
			types.ColEventName:           "ISA Sign Expo 2025",
			types.ColEventRelevanceScore: "9.5",
		},
		tables.Row{
			types.ColCompanyName:         "Aludecor",
			types.ColEventName:           "FABTECH",
			types.ColEventRelevanceScore: "5",
		},
	)

	_, err := enricher.EnrichTable(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, []llm.ModelTier{llm.TierAdvanced, llm.TierStandard}, client.qualTiers)
}

func TestEnrichTable_CacheSkipsRepeatCompanies(t *testing.T) {
	client := &promptClient{qualResponse: "INDUSTRY FIT: Yes"}
	enricher := newTestEnricher(client)

	in := inputTable(
		tables.Row{
			types.ColCompanyName:         "Arlon Graphics",
			types.ColEventName:           "ISA Sign Expo 2025",
			types.ColEventRelevanceScore: "9",
		},
		tables.Row{
			types.ColCompanyName:         "Arlon Graphics",
			types.ColEventName:           "PRINTING United",
			types.ColEventRelevanceScore: "8",
		},
	)

	out, err := enricher.EnrichTable(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
	assert.Len(t, enricher.Cache, 1)
}

func TestEnrichTable_SharedCacheAcrossRuns(t *testing.T) {
	client := &promptClient{qualResponse: "INDUSTRY FIT: Yes"}
	enricher := newTestEnricher(client)
	in := inputTable(tables.Row{
		types.ColCompanyName:         "Arlon Graphics",
		types.ColEventName:           "ISA Sign Expo 2025",
		types.ColEventRelevanceScore: "9",
	})

	first, err := enricher.EnrichTable(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, 1, first.Len())

	second, err := enricher.EnrichTable(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Len())
}

func TestEnrichTable_IntelFailureDegrades(t *testing.T) {
	client := &promptClient{
		intelErr:     errors.New("search unavailable"),
		qualResponse: "INDUSTRY FIT: Maybe\nREVENUE: unknown",
	}
	enricher := newTestEnricher(client)
	in := inputTable(tables.Row{
		types.ColCompanyName:         "Aludecor",
		types.ColEventName:           "FABTECH",
		types.ColEventRelevanceScore: "5",
	})

	out, err := enricher.EnrichTable(context.Background(), in)

	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	row := out.Rows[0]
	assert.Equal(t, "0", row.Get(types.ColRevenueUSD))
	assert.Equal(t, "Maybe", row.Get(types.ColIndustryFit))
	assert.Empty(t, row.Get(types.ColStrategicRelevance))
}

func TestEnrichTable_QualificationFailureFallsBackToIndustryFit(t *testing.T) {
	client := &promptClient{
		intelResponse: "- industry: signage\n- revenue: $40M",
		qualErr:       errors.New("model down"),
	}
	enricher := newTestEnricher(client)
	in := inputTable(tables.Row{
		types.ColCompanyName:         "Signage Details",
		types.ColEventName:           "ISA Sign Expo 2025",
		types.ColEventRelevanceScore: "9",
	})

	out, err := enricher.EnrichTable(context.Background(), in)

	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "Yes", out.Rows[0].Get(types.ColIndustryFit))
}

func TestEnrichTable_SkipsBlankCompanies(t *testing.T) {
	client := &promptClient{qualResponse: "INDUSTRY FIT: No"}
	enricher := newTestEnricher(client)
	in := inputTable(tables.Row{
		types.ColCompanyName:         "   ",
		types.ColEventName:           "ISA Sign Expo 2025",
		types.ColEventRelevanceScore: "9",
	})

	out, err := enricher.EnrichTable(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestEnrichTable_MissingColumn(t *testing.T) {
	enricher := newTestEnricher(&promptClient{})
	in := tables.New(types.ColCompanyName, types.ColEventName)

	_, err := enricher.EnrichTable(context.Background(), in)

	require.Error(t, err)
	var missing *tables.MissingColumnError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, types.ColEventRelevanceScore, missing.Column)
}
