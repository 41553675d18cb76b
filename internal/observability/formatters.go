// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/harshit/leadscout/internal/cleaning"
	"github.com/harshit/leadscout/internal/events"
	"github.com/harshit/leadscout/internal/scoring"
	"github.com/harshit/leadscout/internal/tables"
	"github.com/harshit/leadscout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintEvents outputs a summary of the scouted event list.
func (p *Printer) PrintEvents(evts []events.Event) {
	if len(evts) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total events: %d\n\n", len(evts)))

	count := min(len(evts), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := evts[i]
		name := e.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, name))
		score := e.RelevanceScore
		if score == "" {
			score = "unscored"
		}
		sb.WriteString(fmt.Sprintf("    Score: %s  Priority: %s  Source: %s\n", score, e.Priority, e.Source))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(evts) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more events", len(evts)-maxItemsToShow))
	}

	p.printBox("SCOUTED EVENTS", sb.String())
}

// PrintCompanies outputs a sample of the discovered company table.
func (p *Printer) PrintCompanies(table *tables.Table) {
	if table == nil || table.Len() == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total companies: %d\n\n", table.Len()))

	count := min(table.Len(), maxItemsToShow)
	for i := 0; i < count; i++ {
		row := table.Rows[i]
		name := row.Get(types.ColCompanyName)
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", name))
		if event := row.Get(types.ColEventName); event != "" {
			if len(event) > 45 {
				event = event[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  via %s\n", event))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if table.Len() > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more companies", table.Len()-maxItemsToShow))
	}

	p.printBox("DISCOVERED COMPANIES", sb.String())
}

// PrintCleaningSummary outputs the row counts before and after cleaning.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCleaningSummary(summary cleaning.Summary) {
	removed := summary.Input - summary.Output
	if removed == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO ROWS REMOVED BY CLEANING")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rows in:      %d\n", summary.Input))
	sb.WriteString(fmt.Sprintf("Rows kept:    %d\n", summary.Output))
	sb.WriteString(fmt.Sprintf("Rows removed: %d", removed))

	p.printBox("CLEANING SUMMARY", sb.String())
}

// PrintScoreBreakdown outputs the per-dimension contributions for one lead.
func (p *Printer) PrintScoreBreakdown(company string, result scoring.Result) {
	var sb strings.Builder

	// Fixed order keeps output stable across runs.
	dims := []struct {
		key   string
		label string
	}{
		{scoring.DimIndustryFit, "Industry fit"},
		{scoring.DimRevenue, "Revenue"},
		{scoring.DimEmployees, "Employees"},
		{scoring.DimStrategicRelevance, "Strategic relevance"},
		{scoring.DimIndustryEngagement, "Industry engagement"},
		{scoring.DimMarketActivity, "Market activity"},
		{scoring.DimDecisionMaker, "Decision maker"},
	}

	for _, d := range dims {
		sb.WriteString(fmt.Sprintf("%-20s %3d\n", d.label, result.Breakdown[d.key]))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-20s %3d / %d", "Total", result.Total, scoring.MaxLeadScore))

	title := "LEAD SCORE"
	if company != "" {
		title = fmt.Sprintf("LEAD SCORE: %s", company)
		if len(title) > boxWidth-4 {
			title = title[:boxWidth-7] + "..."
		}
	}
	p.printBox(title, sb.String())
}

// PrintTopLeads outputs the highest-scored leads from the final table.
// The table is expected to already be sorted by lead score.
func (p *Printer) PrintTopLeads(table *tables.Table) {
	if table == nil || table.Len() == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total leads scored: %d\n\n", table.Len()))

	count := min(table.Len(), maxItemsToShow)
	for i := 0; i < count; i++ {
		row := table.Rows[i]
		name := row.Get(types.ColCompanyName)
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, name))
		sb.WriteString(fmt.Sprintf("    Score: %s", row.Get(types.ColLeadScore)))
		if contact := row.Get(types.ColDecisionMaker); contact != "" && contact != types.NoRelevantPersonFound {
			title := row.Get(types.ColTitle)
			if title != "" {
				contact = fmt.Sprintf("%s (%s)", contact, title)
			}
			if len(contact) > 40 {
				contact = contact[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("  Contact: %s", contact))
		}
		sb.WriteString("\n")
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if table.Len() > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more leads", table.Len()-maxItemsToShow))
	}

	p.printBox("TOP QUALIFIED LEADS", sb.String())
}
