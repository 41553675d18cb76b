package events

import (
	"strconv"
	"strings"
)

// Priority buckets for the 0-10 event relevance scale. Never applied to the
// 0-85 lead score, which lives on a different scale entirely.
const (
	PriorityHigh    = "High"
	PriorityMedium  = "Medium"
	PriorityLow     = "Low"
	PriorityUnknown = "Unknown"
)

// ClassifyPriority buckets a raw relevance score string. Anything that does
// not parse as a float is Unknown; NaN parses, compares false against both
// thresholds, and lands in Low.
func ClassifyPriority(raw string) string {
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return PriorityUnknown
	}
	switch {
	case score >= 9:
		return PriorityHigh
	case score >= 7:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
