// Package research provides web search discovery for events and companies.
package research

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Researcher handles external search for exhibitor pages and company sites.
type Researcher struct {
	svc *customsearch.Service
	cx  string
}

// NewResearcher creates a new Researcher instance
func NewResearcher(ctx context.Context, apiKey string, cx string) (*Researcher, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Researcher{
		svc: svc,
		cx:  cx,
	}, nil
}

// DiscoverCompanyWebsite attempts to find the company's main website URL.
func (r *Researcher) DiscoverCompanyWebsite(ctx context.Context, companyName string) (string, error) {
	query := fmt.Sprintf("%s official website", companyName)
	resp, err := r.svc.Cse.List().Context(ctx).Cx(r.cx).Q(query).Do()
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}

	if len(resp.Items) == 0 {
		return "", fmt.Errorf("no search results found for %s", companyName)
	}

	return resp.Items[0].Link, nil
}

// FindExhibitorPages discovers candidate exhibitor-directory pages for an
// event, used when the direct link scan of the event site comes up empty.
// Failed queries are skipped; results are deduped and ranked by path priority.
func (r *Researcher) FindExhibitorPages(ctx context.Context, eventName string, eventURL string) ([]string, error) {
	var candidates []string

	queries := []string{
		fmt.Sprintf("%q exhibitor list", eventName),
		fmt.Sprintf("%q exhibitors directory", eventName),
	}
	if domain := getDomain(eventURL); domain != "" {
		queries = append(queries, fmt.Sprintf("site:%s exhibitor", domain))
	}

	for _, q := range queries {
		resp, err := r.svc.Cse.List().Context(ctx).Cx(r.cx).Q(q).Num(3).Do()
		if err != nil {
			continue // Skip failed queries gracefully
		}

		for _, item := range resp.Items {
			if IsThirdParty(item.Link) {
				continue
			}
			candidates = append(candidates, item.Link)
		}
	}

	uniq := make([]string, 0, len(candidates))
	seen := make(map[string]bool)
	for _, c := range candidates {
		if !seen[c] {
			uniq = append(uniq, c)
			seen[c] = true
		}
	}

	return RankDirectoryLinks(uniq), nil
}

func getDomain(url string) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "www.")
	parts := strings.Split(url, "/")
	if len(parts) > 0 {
		return parts[0]
	}
	return url
}
