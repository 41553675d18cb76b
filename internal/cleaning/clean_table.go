package cleaning

import (
	"fmt"
	"math"
	"strconv"

	"github.com/harshit/leadscout/internal/tables"
	"github.com/harshit/leadscout/internal/types"
)

// Relevance scores are clamped into this range; non-numeric cells become 0.
const (
	minRelevance = 0
	maxRelevance = 10
)

// CleanTable applies the full cleaning pass to a discovered-companies table:
// relevance coercion, name normalization, validity filtering, and last-wins
// deduplication on (company_name, event_name). On failure it returns an empty
// table along with the error; callers must treat an empty result as "no valid
// data, abort downstream processing" rather than continuing with zero rows.
func (c *Cleaner) CleanTable(t *tables.Table) (*tables.Table, error) {
	out := tables.New(t.Columns...)

	for _, col := range []string{types.ColCompanyName, types.ColEventName, types.ColEventRelevanceScore} {
		if !t.HasColumn(col) {
			return out, &tables.MissingColumnError{Path: "discovered companies", Column: col}
		}
	}

	kept := make([]tables.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		cleaned := row.Clone()

		score, ok := cleaned.Float(types.ColEventRelevanceScore)
		if !ok || math.IsNaN(score) {
			score = 0
		}
		cleaned[types.ColEventRelevanceScore] = formatScore(clamp(score, minRelevance, maxRelevance))

		name := c.Normalize(cleaned.Get(types.ColCompanyName))
		cleaned[types.ColCompanyName] = name

		if !c.IsValidCompanyName(name) {
			continue
		}
		if !c.IsValidEventName(cleaned.Get(types.ColEventName)) {
			continue
		}
		kept = append(kept, cleaned)
	}

	// Deduplicate on (company_name, event_name), keeping the last occurrence
	// in its original position.
	lastIndex := make(map[string]int, len(kept))
	for i, row := range kept {
		lastIndex[dedupKey(row)] = i
	}
	for i, row := range kept {
		if lastIndex[dedupKey(row)] == i {
			out.Rows = append(out.Rows, row)
		}
	}

	return out, nil
}

func dedupKey(row tables.Row) string {
	return row.Get(types.ColCompanyName) + "\x00" + row.Get(types.ColEventName)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Summary describes a cleaning pass for logging.
type Summary struct {
	Input  int
	Output int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d rows in, %d rows kept", s.Input, s.Output)
}
