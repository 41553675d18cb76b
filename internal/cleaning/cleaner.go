// Package cleaning provides the company-name normalizer and record validator
// applied to scraped exhibitor tables before enrichment.
package cleaning

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Name length bounds after normalization. Rows outside the bounds are dropped.
const (
	MinNameLength = 3
	MaxNameLength = 35
)

// Event names must be longer than this to be considered real.
const minEventNameLength = 5

var (
	// domainPattern recognizes a company name that is actually a scraped URL:
	// optional scheme, optional www, a label, a 2-6 character TLD, optional path.
	domainPattern = regexp.MustCompile(`(?i)(https?://)?(www\.)?([a-zA-Z0-9-]+)\..{2,6}(/\S*)?$`)

	// trailingSuffix strips tokens like "-blog" from a domain label.
	trailingSuffix = regexp.MustCompile(`-\w+$`)

	// allowedChars keeps letters, digits, whitespace, and . & , -
	disallowedChars = regexp.MustCompile(`[^a-zA-Z0-9\s.&,-]`)

	whitespaceRuns = regexp.MustCompile(`\s+`)

	purelyNumeric = regexp.MustCompile(`^\d+$`)

	wordChar = regexp.MustCompile(`\w`)

	eventDenyTerms = []string{"test", "example", "invalid"}
)

// Cleaner normalizes raw scraped company names and validates records against
// the denylist and shape rules. It is stateless; one instance can clean any
// number of tables.
type Cleaner struct {
	denylist        []string
	denylistPattern *regexp.Regexp
}

// NewCleaner builds a Cleaner with the given denylist terms. A nil or empty
// slice uses DefaultDenylist.
func NewCleaner(denylist []string) *Cleaner {
	if len(denylist) == 0 {
		denylist = DefaultDenylist()
	}

	quoted := make([]string, len(denylist))
	for i, term := range denylist {
		quoted[i] = regexp.QuoteMeta(term)
	}
	pattern := regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)

	return &Cleaner{
		denylist:        append([]string(nil), denylist...),
		denylistPattern: pattern,
	}
}

// Normalize produces a canonical display name from a raw scraped string.
// It never fails; unusable input comes back as an empty string, which the
// validator rejects.
func (c *Cleaner) Normalize(raw string) string {
	// Scraped URLs mistaken for company names are the common case: extract
	// the domain label instead of mangling the whole URL.
	if m := domainPattern.FindStringSubmatch(raw); m != nil {
		base := trailingSuffix.ReplaceAllString(m[3], "")
		return capitalize(base)
	}

	cleaned := strings.TrimSpace(disallowedChars.ReplaceAllString(raw, ""))
	cleaned = c.denylistPattern.ReplaceAllString(cleaned, "")
	cleaned = whitespaceRuns.ReplaceAllString(cleaned, " ")
	cleaned = truncateRunes(cleaned, MaxNameLength)
	return strings.Trim(cleaned, " -_")
}

// IsValidCompanyName reports whether a normalized name should be kept:
// bounded length, no denylist term as a substring, not purely numeric, and
// at least one word character.
func (c *Cleaner) IsValidCompanyName(name string) bool {
	lower := strings.ToLower(name)
	length := utf8.RuneCountInString(lower)
	if length < MinNameLength || length > MaxNameLength {
		return false
	}
	for _, term := range c.denylist {
		if strings.Contains(lower, strings.ToLower(term)) {
			return false
		}
	}
	if purelyNumeric.MatchString(lower) {
		return false
	}
	return wordChar.MatchString(lower)
}

// IsValidEventName reports whether an event name looks real: longer than five
// characters and free of test markers.
func (c *Cleaner) IsValidEventName(event string) bool {
	if utf8.RuneCountInString(event) <= minEventNameLength {
		return false
	}
	lower := strings.ToLower(event)
	for _, term := range eventDenyTerms {
		if strings.Contains(lower, term) {
			return false
		}
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
