package enrichment

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/harshit/leadscout/internal/llm"
	"github.com/harshit/leadscout/internal/tables"
	"github.com/harshit/leadscout/internal/types"
)

// HighRelevanceThreshold is the event relevance score at or above which a
// company gets the advanced model and a longer post-call pause.
const HighRelevanceThreshold = 8

// Enricher runs company intelligence and qualification over a cleaned table.
type Enricher struct {
	Client llm.Client
	Retry  llm.RetryPolicy
	// Cache memoizes enriched rows by company name for the run; rows whose
	// company was already enriched are skipped. Caller-supplied so multiple
	// stages can share one cache.
	Cache map[string]tables.Row
	// BaseDelay paces calls; HighPriorityDelay applies after high-relevance
	// rows.
	BaseDelay         time.Duration
	HighPriorityDelay time.Duration
	Now               func() time.Time
	// ShowProgress renders a progress bar over the row loop.
	ShowProgress bool
}

// NewEnricher returns an Enricher with the pipeline's default pacing.
func NewEnricher(client llm.Client) *Enricher {
	return &Enricher{
		Client:            client,
		Retry:             llm.DefaultRetryPolicy(),
		Cache:             make(map[string]tables.Row),
		BaseDelay:         time.Second,
		HighPriorityDelay: 2 * time.Second,
		Now:               time.Now,
	}
}

// EnrichTable enriches every company row. Per-row failures degrade to
// zero-value intel and a "No" qualification rather than aborting the batch.
func (e *Enricher) EnrichTable(ctx context.Context, cleaned *tables.Table) (*tables.Table, error) {
	required := []string{types.ColCompanyName, types.ColEventName, types.ColEventRelevanceScore}
	for _, col := range required {
		if !cleaned.HasColumn(col) {
			return nil, &tables.MissingColumnError{Path: "cleaned_companies", Column: col}
		}
	}

	out := tables.New(cleaned.Columns...)
	out.EnsureColumns(
		types.ColRevenueUSD,
		types.ColEmployees,
		types.ColIndustry,
		types.ColProducts,
		types.ColIndustryFit,
		types.ColRevenueDisplay,
		types.ColQualificationSummary,
		types.ColStrategicRelevance,
		types.ColMarketActivity,
		types.ColQualifiedLeadReasons,
		types.ColEnrichmentTimestamp,
	)

	var bar *progressbar.ProgressBar
	if e.ShowProgress {
		bar = progressbar.Default(int64(cleaned.Len()), "enriching")
	}

	for _, row := range cleaned.Rows {
		if bar != nil {
			_ = bar.Add(1)
		}

		company := strings.TrimSpace(row.Get(types.ColCompanyName))
		if company == "" {
			continue
		}
		if _, done := e.Cache[company]; done {
			continue
		}

		enriched, err := e.enrichRow(ctx, row, company)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Printf("Failed processing %s: %v\n", company, err)
			continue
		}

		out.Append(enriched)
		e.Cache[company] = enriched
	}

	return out, nil
}

func (e *Enricher) enrichRow(ctx context.Context, row tables.Row, company string) (tables.Row, error) {
	relevance, _ := row.Float(types.ColEventRelevanceScore)

	intel := e.companyIntel(ctx, company)
	if err := pause(ctx, e.BaseDelay); err != nil {
		return nil, err
	}

	qual := e.qualify(ctx, row, company, intel, relevance >= HighRelevanceThreshold)

	enriched := row.Clone()
	enriched[types.ColRevenueUSD] = strconv.FormatFloat(intel.RevenueUSD, 'f', -1, 64)
	enriched[types.ColEmployees] = strconv.Itoa(intel.Employees)
	enriched[types.ColIndustry] = intel.Industry
	enriched[types.ColProducts] = strings.Join(intel.Products, ", ")
	enriched[types.ColIndustryFit] = qual.IndustryFit
	enriched[types.ColRevenueDisplay] = qual.RevenueDisplay
	enriched[types.ColQualificationSummary] = qual.QualificationSummary
	enriched[types.ColStrategicRelevance] = qual.StrategicRelevance
	enriched[types.ColMarketActivity] = qual.MarketActivity
	enriched[types.ColQualifiedLeadReasons] = LeadReasons(intel, qual)
	enriched[types.ColEnrichmentTimestamp] = e.Now().UTC().Format(time.RFC3339)

	delay := e.BaseDelay
	if relevance >= HighRelevanceThreshold {
		delay = e.HighPriorityDelay
	}
	if err := pause(ctx, delay); err != nil {
		return nil, err
	}
	return enriched, nil
}

// companyIntel asks the model for firmographics. Failure degrades to
// zero-value intel so the row still gets qualified.
func (e *Enricher) companyIntel(ctx context.Context, company string) types.CompanyIntel {
	content, err := llm.GenerateWithRetry(ctx, e.Client, intelPrompt(company), llm.TierStandard, e.Retry)
	if err != nil {
		fmt.Printf("Intel lookup failed for %s: %v\n", company, err)
		return types.CompanyIntel{}
	}
	return ParseIntelResponse(content)
}

// qualify asks the model for the structured qualification. High-relevance
// rows get the advanced tier. Failure degrades to a fit computed from the
// intel industry alone.
func (e *Enricher) qualify(ctx context.Context, row tables.Row, company string, intel types.CompanyIntel, highRelevance bool) types.Qualification {
	tier := llm.TierStandard
	if highRelevance {
		tier = llm.TierAdvanced
	}

	prompt := qualificationPrompt(company, row.Get(types.ColEventName), row.Get(types.ColEventRelevanceScore), intel)
	content, err := llm.GenerateWithRetry(ctx, e.Client, prompt, tier, e.Retry)
	if err != nil {
		fmt.Printf("Qualification failed for %s: %v\n", company, err)
		return types.Qualification{IndustryFit: IndustryFitFor(intel.Industry)}
	}
	return ParseQualificationResponse(content)
}

func intelPrompt(company string) string {
	return fmt.Sprintf(
		"Provide concise company info for %s:\n"+
			"- Estimated annual revenue in USD\n"+
			"- Employee count\n"+
			"- Primary industry focus\n"+
			"- Key products/services\n"+
			"- Recent business developments",
		company,
	)
}

func qualificationPrompt(company, eventName, relevance string, intel types.CompanyIntel) string {
	return fmt.Sprintf(
		"Respond EXACTLY in this format:\n\n"+
			"INDUSTRY FIT: [Yes/No/Maybe]\n"+
			"REVENUE: [$X.XX (B/M)]\n"+
			"QUALIFICATION SUMMARY:\n"+
			"- Industry Fit: [1-2 sentences]\n"+
			"- Size & Revenue: [1-2 sentences]\n"+
			"- Strategic Relevance: [1-2 sentences]\n"+
			"- Market Activity: [1-2 sentences]\n\n"+
			"Analyze %s for protective film sales potential:\n"+
			"- Event: %s (Relevance: %s/10)\n"+
			"- Industry: %s\n"+
			"- Revenue: %s\n"+
			"- Products: %s\n"+
			"Focus on applications in signage, vehicle wraps, and architectural protection.",
		company, eventName, relevance, orUnknown(intel.Industry),
		FormatRevenue(intel.RevenueUSD), strings.Join(intel.Products, ", "),
	)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
