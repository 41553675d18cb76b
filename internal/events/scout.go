package events

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/harshit/leadscout/internal/llm"
)

// DefaultDiscoveryQuery seeds the search prompt when no query is configured.
const DefaultDiscoveryQuery = "2025 signage and print expos in the US"

// fallbackReason is recorded when every model tier failed to score an event.
const fallbackReason = "LLM error fallback."

// Scout merges curated and discovered events and scores their relevance.
type Scout struct {
	Client llm.Client
	Retry  llm.RetryPolicy
	// Pause between scoring calls, keeping request rate polite.
	Pause time.Duration
	Query string
}

// NewScout returns a Scout with the pipeline's default pacing.
func NewScout(client llm.Client) *Scout {
	return &Scout{
		Client: client,
		Retry:  llm.DefaultRetryPolicy(),
		Pause:  1500 * time.Millisecond,
		Query:  DefaultDiscoveryQuery,
	}
}

// Run produces the full scored event list: curated events from manualPath
// (skipped when the file does not exist), newly discovered events, relevance
// scores for anything unscored, and a priority bucket per event.
func (s *Scout) Run(ctx context.Context, manualPath string) ([]Event, error) {
	var events []Event
	if manualPath != "" {
		loaded, err := LoadManualEvents(manualPath)
		switch {
		case err == nil:
			events = loaded
		case errors.Is(err, os.ErrNotExist):
			fmt.Printf("No manual events file at %s, starting from discovery only\n", manualPath)
		default:
			return nil, fmt.Errorf("failed to load manual events: %w", err)
		}
	}

	discovered, err := s.Discover(ctx)
	if err != nil {
		// Discovery is best-effort; curated events still flow through.
		fmt.Printf("Event discovery failed, continuing with %d known events: %v\n", len(events), err)
	}
	events = Merge(events, discovered)

	if err := s.ScoreEvents(ctx, events); err != nil {
		return nil, err
	}
	for i := range events {
		events[i].Priority = ClassifyPriority(events[i].RelevanceScore)
	}
	return events, nil
}

// Discover asks the model for new trade shows and parses its CSV-line answer.
func (s *Scout) Discover(ctx context.Context) ([]Event, error) {
	query := s.Query
	if query == "" {
		query = DefaultDiscoveryQuery
	}

	content, err := llm.GenerateWithRetry(ctx, s.Client, discoveryPrompt(query), llm.TierStandard, s.Retry)
	if err != nil {
		return nil, fmt.Errorf("event discovery call failed: %w", err)
	}
	return ParseDiscoveryResponse(content), nil
}

// ParseDiscoveryResponse extracts events from a CSV-lines model answer.
// Header echoes, blank lines, short lines, and rows without a usable http URL
// are dropped.
func ParseDiscoveryResponse(content string) []Event {
	var found []Event
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.ToLower(line), "name") || strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.SplitN(line, ",", 4)
		if len(parts) < 4 {
			continue
		}

		name := strings.TrimSpace(strings.ReplaceAll(parts[0], `"`, ""))
		url := strings.TrimSpace(strings.ReplaceAll(parts[1], `"`, ""))
		score, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			score = 0.0
		}
		reason := strings.TrimSpace(strings.ReplaceAll(parts[3], `"`, ""))

		if strings.EqualFold(url, "not available") || !strings.HasPrefix(url, "http") {
			continue
		}

		found = append(found, Event{
			Name:           name,
			URL:            url,
			Source:         SourceLLMSearch,
			ID:             EventID(name, url),
			RelevanceScore: FormatScore(score),
			Reasoning:      reason,
		})
	}
	return found
}

// ScoreEvents fills in relevance for every unscored event, pausing between
// model calls.
func (s *Scout) ScoreEvents(ctx context.Context, events []Event) error {
	for i := range events {
		if events[i].Scored() {
			continue
		}

		score, reason := s.relevanceScore(ctx, events[i].Name, events[i].URL)
		events[i].RelevanceScore = FormatScore(score)
		events[i].Reasoning = reason

		if s.Pause > 0 && i < len(events)-1 {
			if err := pause(ctx, s.Pause); err != nil {
				return err
			}
		}
	}
	return nil
}

// relevanceScore tries the advanced model first and falls back to the
// standard tier. Both failing scores the event 0.0 with a fallback reason so
// the batch keeps moving.
func (s *Scout) relevanceScore(ctx context.Context, name, url string) (float64, string) {
	prompt := relevancePrompt(name, url)
	for _, tier := range []llm.ModelTier{llm.TierAdvanced, llm.TierStandard} {
		content, err := llm.GenerateWithRetry(ctx, s.Client, prompt, tier, s.Retry)
		if err != nil {
			fmt.Printf("Relevance scoring (%s) failed for %q: %v\n", tier, name, err)
			continue
		}
		score, reason, err := ParseScoreResponse(content)
		if err != nil {
			fmt.Printf("Unparseable relevance response (%s) for %q: %v\n", tier, name, err)
			continue
		}
		return score, reason
	}
	return 0.0, fallbackReason
}

// ParseScoreResponse reads a "Score: <number>" / "Reason: <text>" answer.
func ParseScoreResponse(content string) (float64, string, error) {
	score := 0.0
	scoreFound := false
	reason := ""
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "Score:"); ok && !scoreFound {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
			if err != nil {
				return 0, "", fmt.Errorf("invalid score value %q: %w", strings.TrimSpace(rest), err)
			}
			score = parsed
			scoreFound = true
		} else if rest, ok := strings.CutPrefix(trimmed, "Reason:"); ok && reason == "" {
			reason = strings.TrimSpace(rest)
		}
	}
	if !scoreFound {
		return 0, "", fmt.Errorf("no score line in response")
	}
	return score, reason, nil
}

func discoveryPrompt(query string) string {
	return fmt.Sprintf(
		"Query: %s.\n\n"+
			"DuPont Tedlar manufactures protective films for signage, vehicle wraps, and architectural graphics. "+
			"Find upcoming 2025 expos or trade shows in the US that are relevant to these industries. "+
			"For each event, respond in this structured CSV format:\n\n"+
			"name,url,relevance_score,reasoning\n"+
			"ISA Sign Expo 2025,https://isasignexpo2025.mapyourshow.com/,9.5,Major event for large-format signage and wraps\n"+
			"Return only up to 10 new entries in this format. No explanation.",
		query,
	)
}

func relevancePrompt(name, url string) string {
	return fmt.Sprintf(
		"You are an expert in B2B marketing and event lead generation.\n\n"+
			"DuPont Tedlar manufactures protective films used in signage, architectural graphics, and vehicle wraps. "+
			"Given the event below, rate how relevant it is (0-10) for identifying B2B customers or industry partners. "+
			"Provide a numeric score and a short reason.\n\n"+
			"Event Name: %s\nURL: %s\n\n"+
			"Respond in the following format:\nScore: <number>\nReason: <short reason>",
		name, url,
	)
}

func pause(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
