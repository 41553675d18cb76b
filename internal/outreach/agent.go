// Package outreach drafts personalized first-touch messages for stakeholder
// rows, grounded in the company's enrichment context.
package outreach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/harshit/leadscout/internal/llm"
	"github.com/harshit/leadscout/internal/tables"
	"github.com/harshit/leadscout/internal/types"
)

// RequiredSignoff terminates every message; cleanup enforces it when the
// model forgets or reformats it.
const RequiredSignoff = "\nBest,\nHarshit\nDuPont Tedlar"

// ErrorMessage is written into rows whose generation failed so the batch
// keeps moving.
const ErrorMessage = "ERROR: Could not generate message"

// MaxMessageLength bounds a drafted message; longer drafts are trimmed with
// the signoff re-applied.
const MaxMessageLength = 1500

const systemPrompt = "You are DuPont Tedlar's sales outreach assistant. Generate personalized outreach messages that:\n" +
	"1. Highlight how our solutions address the specific needs of the stakeholder's company\n" +
	"2. Reference concrete details from their profile: industry, products, and event context\n" +
	"3. Emphasize strategic synergies from the qualified lead reasons\n" +
	"4. Maintain professional tone while being concise (150-200 words)\n" +
	"5. Always conclude with:\n" +
	"Best,\n" +
	"Harshit\n" +
	"DuPont Tedlar\n\n" +
	"Handle missing data gracefully while maximizing relevance to available information."

// Agent drafts outreach messages over a stakeholder table.
type Agent struct {
	Client llm.Client
	Retry  llm.RetryPolicy
	// Delay paces generation calls.
	Delay        time.Duration
	ShowProgress bool
}

// NewAgent returns an Agent with the pipeline's default pacing.
func NewAgent(client llm.Client) *Agent {
	return &Agent{
		Client: client,
		Retry:  llm.DefaultRetryPolicy(),
		Delay:  250 * time.Millisecond,
	}
}

// Run appends an outreach_message column. Generation failure for a row
// records an error marker in that row instead of failing the batch.
func (a *Agent) Run(ctx context.Context, stakeholderRows *tables.Table) (*tables.Table, error) {
	if !stakeholderRows.HasColumn(types.ColCompanyName) {
		return nil, &tables.MissingColumnError{Path: "companies_with_stakeholders", Column: types.ColCompanyName}
	}

	out := tables.New(stakeholderRows.Columns...)
	out.EnsureColumns(types.ColOutreachMessage)

	var bar *progressbar.ProgressBar
	if a.ShowProgress {
		bar = progressbar.Default(int64(stakeholderRows.Len()), "drafting")
	}

	for _, row := range stakeholderRows.Rows {
		if bar != nil {
			_ = bar.Add(1)
		}

		record := row.Clone()
		record[types.ColOutreachMessage] = a.generate(ctx, row)
		out.Append(record)

		if err := pause(ctx, a.Delay); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (a *Agent) generate(ctx context.Context, row tables.Row) string {
	prompt := systemPrompt + "\n\n" + BuildPrompt(row)
	content, err := llm.GenerateWithRetry(ctx, a.Client, prompt, llm.TierStandard, a.Retry)
	if err != nil {
		fmt.Printf("Message generation failed for %s: %v\n", row.Get(types.ColCompanyName), err)
		return ErrorMessage
	}
	return CleanMessage(content)
}

// BuildPrompt assembles the per-stakeholder user prompt. Missing fields fall
// back to generic phrasing rather than leaving holes in the message.
func BuildPrompt(row tables.Row) string {
	name := orDefault(row.Get(types.ColDecisionMaker), "Decision Maker")
	title := orDefault(row.Get(types.ColTitle), "leadership position")
	company := orDefault(row.Get(types.ColCompanyName), "their organization")
	event := orDefault(row.Get(types.ColEventName), "industry event")
	industry := orDefault(row.Get(types.ColIndustry), "their industry")
	products := orDefault(row.Get(types.ColProducts), "their products")
	synergy := orDefault(row.Get(types.ColQualifiedLeadReasons), "shared strategic priorities")
	strategy := orDefault(row.Get(types.ColStrategicRelevance), "alignment with innovation goals")

	contextSections := []string{
		"Company Context:",
		"- Name: " + company,
		"- Industry: " + industry,
		"- Key Offerings: " + truncateRunes(products, 200),
		"",
		"Engagement Context:",
		"- Met at: " + event,
		"- Strategic Fit: " + strategy,
		"- Synergy Points: " + truncateRunes(synergy, 300),
		"",
		"Message Requirements:",
		"- Open with personalized greeting acknowledging their role",
		"- Connect Tedlar solutions to their specific operational context",
		"- Reference 1-2 specific synergy points from above",
		"- Propose clear next steps for collaboration",
		"- Maintain professional yet approachable tone",
	}

	firstProduct := strings.TrimSpace(strings.SplitN(products, ",", 2)[0])

	return fmt.Sprintf(
		"Recipient: %s (%s)\n\n"+
			"Company Profile:\n%s\n\n"+
			"Generate outreach that positions Tedlar as the optimal solution partner "+
			"for %s's %s needs, specifically addressing:\n"+
			"- How our films enhance %s if relevant\n"+
			"- Strategic alignment with %s\n",
		name, title, strings.Join(contextSections, "\n"),
		company, industry, firstProduct, strategy,
	)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
