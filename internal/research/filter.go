// Package research - filter.go ranks and filters candidate directory links.
package research

import (
	"net/url"
	"sort"
	"strings"
)

// AssignPathPriority returns a priority score based on URL path patterns.
// Exhibitor listings rank highest; event logistics pages rank lowest.
func AssignPathPriority(urlStr string) float64 {
	urlLower := strings.ToLower(urlStr)

	highValuePatterns := []string{
		"exhibitor-list", "exhibitor-gallery", "exhibitors", "exhibitor",
		"directory", "sponsor",
	}
	for _, pattern := range highValuePatterns {
		if strings.Contains(urlLower, pattern) {
			return 0.95
		}
	}

	goodPatterns := []string{
		"floorplan", "floor-plan", "attendee", "member", "supplier", "partner",
	}
	for _, pattern := range goodPatterns {
		if strings.Contains(urlLower, pattern) {
			return 0.85
		}
	}

	mediumPatterns := []string{"press", "news", "announcements"}
	for _, pattern := range mediumPatterns {
		if strings.Contains(urlLower, pattern) {
			return 0.7
		}
	}

	skipPatterns := []string{
		"/register", "/tickets", "/hotel", "/travel", "/visa",
		"/privacy", "/terms", "/login",
	}
	for _, pattern := range skipPatterns {
		if strings.Contains(urlLower, pattern) {
			return 0.1
		}
	}

	return 0.5
}

// RankDirectoryLinks orders candidate links by descending path priority,
// dropping the ones that look like event logistics rather than listings.
// Ties keep their input order.
func RankDirectoryLinks(links []string) []string {
	type ranked struct {
		url      string
		priority float64
	}

	kept := make([]ranked, 0, len(links))
	for _, link := range links {
		p := AssignPathPriority(link)
		if p <= 0.1 {
			continue
		}
		kept = append(kept, ranked{url: link, priority: p})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].priority > kept[j].priority
	})

	out := make([]string, len(kept))
	for i, r := range kept {
		out[i] = r.url
	}
	return out
}

// IsThirdParty checks if a URL is from a platform that never hosts an
// event's own exhibitor directory.
func IsThirdParty(urlStr string) bool {
	thirdPartyDomains := []string{
		"linkedin.com",
		"facebook.com",
		"twitter.com",
		"x.com",
		"instagram.com",
		"youtube.com",
		"eventbrite.com",
		"wikipedia.org",
		"medium.com",
	}

	urlLower := strings.ToLower(urlStr)
	for _, domain := range thirdPartyDomains {
		if strings.Contains(urlLower, domain) {
			return true
		}
	}
	return false
}

// ExtractUniqueDomains extracts unique domain names from a list of URLs.
func ExtractUniqueDomains(urls []string) []string {
	seen := make(map[string]bool)
	var domains []string

	for _, urlStr := range urls {
		domain := extractDomainFromURL(urlStr)
		if domain != "" && !seen[domain] {
			seen[domain] = true
			domains = append(domains, domain)
		}
	}

	return domains
}

// extractDomainFromURL extracts the domain from a URL
func extractDomainFromURL(urlStr string) string {
	if urlStr == "" {
		return ""
	}

	// Prepend scheme if missing
	if !strings.Contains(urlStr, "://") {
		urlStr = "https://" + urlStr
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}

	host := parsed.Host
	host = strings.TrimPrefix(host, "www.")

	return host
}
