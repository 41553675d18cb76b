// Package events discovers and ranks trade shows worth staffing. It merges a
// manually curated event list with LLM-discovered events, scores each event's
// relevance to the protective-films business, and classifies outreach
// priority.
package events

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/harshit/leadscout/internal/tables"
	"github.com/harshit/leadscout/internal/types"
)

// Event sources recorded in the output table.
const (
	SourceManual    = "manual"
	SourceLLMSearch = "llm_search"
)

// Event is one trade show or expo tracked by the pipeline.
type Event struct {
	Name           string
	URL            string
	Source         string
	ID             string
	RelevanceScore string // blank until scored; formatted float once scored
	Reasoning      string
	Priority       string
}

// Scored reports whether the event already carries a relevance score.
func (e *Event) Scored() bool {
	return strings.TrimSpace(e.RelevanceScore) != ""
}

// EventID derives the stable identity of an event from its name and URL.
// Case, surrounding whitespace, and stray quotes do not change the ID, so the
// same event reported by different sources deduplicates.
func EventID(name, url string) string {
	sum := md5.Sum([]byte(normalizeKey(name) + normalizeKey(url)))
	return hex.EncodeToString(sum[:])
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), `"`, ""))
}

// LoadManualEvents reads the curated event table. Only name and url are
// required; pre-existing scores and reasoning carry through so the scout does
// not re-score curated rows.
func LoadManualEvents(path string) ([]Event, error) {
	t, err := tables.Load(path, types.ColEventTableName, types.ColEventTableURL)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, t.Len())
	for _, row := range t.Rows {
		name := strings.TrimSpace(row.Get(types.ColEventTableName))
		url := strings.TrimSpace(row.Get(types.ColEventTableURL))
		events = append(events, Event{
			Name:           name,
			URL:            url,
			Source:         SourceManual,
			ID:             EventID(name, url),
			RelevanceScore: row.Get(types.ColRelevanceScore),
			Reasoning:      row.Get(types.ColReasoning),
		})
	}
	return events, nil
}

// Merge appends discovered events that are not already present, keyed by
// event ID. Existing events always win.
func Merge(existing, discovered []Event) []Event {
	seen := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		seen[e.ID] = struct{}{}
	}

	merged := existing
	for _, e := range discovered {
		if e.ID == "" {
			e.ID = EventID(e.Name, e.URL)
		}
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		e.Name = strings.TrimSpace(strings.ReplaceAll(e.Name, `"`, ""))
		e.URL = strings.TrimSpace(strings.ReplaceAll(e.URL, `"`, ""))
		merged = append(merged, e)
	}
	return merged
}

// ToTable converts events into the latest-leads table shape.
func ToTable(events []Event) *tables.Table {
	t := tables.New(
		types.ColEventTableName,
		types.ColEventTableURL,
		types.ColEventSource,
		types.ColEventID,
		types.ColRelevanceScore,
		types.ColReasoning,
		types.ColPriority,
	)
	for _, e := range events {
		t.Append(tables.Row{
			types.ColEventTableName: e.Name,
			types.ColEventTableURL:  e.URL,
			types.ColEventSource:    e.Source,
			types.ColEventID:        e.ID,
			types.ColRelevanceScore: e.RelevanceScore,
			types.ColReasoning:      e.Reasoning,
			types.ColPriority:       e.Priority,
		})
	}
	return t
}

// FormatScore renders a relevance score the way the output tables expect.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}
