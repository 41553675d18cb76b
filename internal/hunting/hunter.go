// Package hunting discovers exhibiting companies from event websites. It
// scans an event page for directory-style sub-pages, parses candidate company
// names out of the listing markup, and merges in known exhibitor mappings.
package hunting

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/harshit/leadscout/internal/fetch"
	"github.com/harshit/leadscout/internal/tables"
	"github.com/harshit/leadscout/internal/types"
)

// Href keywords that suggest a page listing companies.
var companyLinkKeywords = []string{
	"exhibitor", "sponsor", "attendee",
	"member", "directory", "supplier", "partner", "company",
}

// Navigation labels that are never company names.
var pageBlacklist = map[string]struct{}{
	"home": {}, "faq": {}, "contact": {}, "register": {},
	"events": {}, "about": {}, "info": {}, "policy": {},
}

// Candidate name length bounds, exclusive of the boundaries the original
// heuristics used (len > 2 and len < 60).
const (
	minCandidateLength = 3
	maxCandidateLength = 59
)

// Finder resolves extra directory pages for an event when the direct link
// scan finds nothing. Satisfied by research.Researcher.
type Finder interface {
	FindExhibitorPages(ctx context.Context, eventName string, eventURL string) ([]string, error)
}

// BrowserFunc renders a URL in a headless browser and returns the HTML.
// Satisfied by a closure over fetch.WithBrowser.
type BrowserFunc func(ctx context.Context, url string) (string, error)

// Hunter scrapes event websites for exhibiting companies.
type Hunter struct {
	Fetcher *fetch.CachedFetcher
	// Browser renders JS-heavy directories; nil disables the fallback.
	Browser BrowserFunc
	// Finder searches for directory pages as a last resort; nil disables it.
	Finder Finder
	// Now stamps discovered rows; defaults to time.Now.
	Now func() time.Time
	// Static exhibitor lists merged in per event name.
	Mappings map[string][]string
}

// NewHunter returns a Hunter with default mappings and clock.
func NewHunter(fetcher *fetch.CachedFetcher) *Hunter {
	return &Hunter{
		Fetcher:  fetcher,
		Now:      time.Now,
		Mappings: KnownExhibitors(),
	}
}

// Run hunts every event in the leads table and returns the discovered
// companies, deduped on (company_name, event_name) keeping the first
// occurrence.
func (h *Hunter) Run(ctx context.Context, leads *tables.Table) (*tables.Table, error) {
	for _, col := range []string{types.ColEventTableName, types.ColEventTableURL} {
		if !leads.HasColumn(col) {
			return nil, &tables.MissingColumnError{Path: "latest_leads", Column: col}
		}
	}

	out := tables.New(
		types.ColCompanyName,
		types.ColEventName,
		types.ColEventRelevanceScore,
		types.ColDateUpdated,
	)

	for _, event := range leads.Rows {
		name := event.Get(types.ColEventTableName)
		score := event.Get(types.ColRelevanceScore)
		eventURL := event.Get(types.ColEventTableURL)

		fmt.Printf("Searching for companies on event: %s | Score: %s\n", name, score)

		found, err := h.HuntEvent(ctx, name, score, eventURL)
		if err != nil {
			fmt.Printf("Could not hunt %s: %v\n", eventURL, err)
			continue
		}
		for _, row := range found {
			out.Append(row)
		}
	}

	h.appendMappings(leads, out)

	return dedupeCompanies(out), nil
}

// HuntEvent scrapes a single event site. Sub-pages matched by link keywords
// are parsed for company names; when none exist the main page itself is
// parsed as a fallback.
func (h *Hunter) HuntEvent(ctx context.Context, eventName, eventScore, eventURL string) ([]tables.Row, error) {
	html, err := h.pageHTML(ctx, eventURL)
	if err != nil {
		return nil, err
	}

	links, err := CollectCompanyLinks(html, eventURL)
	if err != nil {
		return nil, err
	}

	if len(links) == 0 && h.Finder != nil {
		if extra, err := h.Finder.FindExhibitorPages(ctx, eventName, eventURL); err == nil {
			links = extra
		}
	}

	if len(links) == 0 {
		fmt.Printf("No sub-pages found for event: %s, parsing main page\n", eventName)
		return h.parsePage(html, eventName, eventScore)
	}

	var discovered []tables.Row
	for _, link := range links {
		subHTML, err := h.pageHTML(ctx, link)
		if err != nil {
			fmt.Printf("Could not load %s: %v\n", link, err)
			continue
		}
		found, err := h.parsePage(subHTML, eventName, eventScore)
		if err != nil {
			fmt.Printf("Could not parse %s: %v\n", link, err)
			continue
		}
		discovered = append(discovered, found...)
	}
	return discovered, nil
}

// pageHTML fetches a URL, falling back to headless rendering when the plain
// fetch comes back too thin to be a real directory.
func (h *Hunter) pageHTML(ctx context.Context, urlStr string) (string, error) {
	result, err := h.Fetcher.Fetch(ctx, urlStr)
	if err != nil {
		return "", err
	}

	html := result.HTML
	platform := fetch.DetectPlatform(urlStr)
	if h.Browser != nil && (fetch.PlatformsRequiringBrowser(platform) || fetch.ShouldUseBrowser(html)) {
		rendered, err := h.Browser(ctx, urlStr)
		if err == nil && len(rendered) > len(html) {
			html = rendered
		}
	}
	return html, nil
}

func (h *Hunter) parsePage(html, eventName, eventScore string) ([]tables.Row, error) {
	names, err := ParseCompanyCandidates(html)
	if err != nil {
		return nil, err
	}

	stamp := h.Now().UTC().Format("2006-01-02 15:04:05")
	rows := make([]tables.Row, 0, len(names))
	for _, name := range names {
		rows = append(rows, tables.Row{
			types.ColCompanyName:         name,
			types.ColEventName:           eventName,
			types.ColEventRelevanceScore: eventScore,
			types.ColDateUpdated:         stamp,
		})
	}
	fmt.Printf("   Found %d potential companies in page for %s\n", len(rows), eventName)
	return rows, nil
}

func (h *Hunter) appendMappings(leads, out *tables.Table) {
	stamp := h.Now().UTC().Format("2006-01-02 15:04:05")
	eventNames := make([]string, 0, len(h.Mappings))
	for eventName := range h.Mappings {
		eventNames = append(eventNames, eventName)
	}
	sort.Strings(eventNames)

	for _, eventName := range eventNames {
		companies := h.Mappings[eventName]
		var event tables.Row
		for _, row := range leads.Rows {
			if row.Get(types.ColEventTableName) == eventName {
				event = row
				break
			}
		}
		if event == nil {
			continue
		}
		for _, company := range companies {
			out.Append(tables.Row{
				types.ColCompanyName:         company,
				types.ColEventName:           eventName,
				types.ColEventRelevanceScore: event.Get(types.ColRelevanceScore),
				types.ColDateUpdated:         stamp,
			})
		}
	}
}

// CollectCompanyLinks returns absolute URLs of anchors whose href contains a
// company-listing keyword, deduped in first-seen order.
func CollectCompanyLinks(html, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %s: %w", baseURL, err)
	}

	var links []string
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		lower := strings.ToLower(href)
		matched := false
		for _, kw := range companyLinkKeywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if !matched {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		full := base.ResolveReference(ref).String()
		if _, ok := seen[full]; ok {
			return
		}
		seen[full] = struct{}{}
		links = append(links, full)
	})

	return links, nil
}

// ParseCompanyCandidates gathers text from li, div, span, and a elements and
// keeps strings that look like company names: bounded length, at least one
// letter, and no navigation-label substring.
func ParseCompanyCandidates(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var candidates []string
	doc.Find("li, div, span, a").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if !isCandidateName(text) {
			return
		}
		candidates = append(candidates, text)
	})
	return candidates, nil
}

func isCandidateName(text string) bool {
	if len(text) < minCandidateLength || len(text) > maxCandidateLength {
		return false
	}

	hasLetter := false
	for _, r := range text {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return false
	}

	lower := strings.ToLower(text)
	for blacklisted := range pageBlacklist {
		if strings.Contains(lower, blacklisted) {
			return false
		}
	}
	return true
}

// dedupeCompanies keeps the first occurrence per (company_name, event_name).
func dedupeCompanies(t *tables.Table) *tables.Table {
	out := tables.New(t.Columns...)
	seen := make(map[string]struct{}, t.Len())
	for _, row := range t.Rows {
		key := row.Get(types.ColCompanyName) + "\x00" + row.Get(types.ColEventName)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out.Append(row)
	}
	return out
}
