// Package enrichment turns discovered company names into qualified lead
// records: firmographic intel, target-industry fit, and a qualification
// summary suitable for scoring.
package enrichment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/harshit/leadscout/internal/types"
)

var (
	revenuePattern = regexp.MustCompile(`(?i)\$([\d.]+)([BMK])`)
	digitsPattern  = regexp.MustCompile(`\d+`)
)

// revenueMultipliers maps the revenue magnitude suffix to USD.
var revenueMultipliers = map[string]float64{
	"b": 1e9,
	"m": 1e6,
	"k": 1e3,
}

// ParseIntelResponse extracts firmographics from a free-text intelligence
// answer. Extraction is best-effort per field; anything unparseable just
// stays at its zero value.
func ParseIntelResponse(content string) types.CompanyIntel {
	var intel types.CompanyIntel

	if m := revenuePattern.FindStringSubmatch(content); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			multiplier, ok := revenueMultipliers[strings.ToLower(m[2])]
			if !ok {
				multiplier = 1
			}
			intel.RevenueUSD = value * multiplier
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		switch {
		case strings.Contains(line, "employee") && strings.Contains(line, "count"):
			if m := digitsPattern.FindString(line); m != "" {
				if n, err := strconv.Atoi(m); err == nil {
					intel.Employees = n
				}
			}
		case strings.Contains(line, "industry"):
			intel.Industry = titleCase(afterLastColon(line))
		case strings.Contains(line, "product") || strings.Contains(line, "service"):
			var products []string
			for _, p := range strings.Split(afterLastColon(line), ",") {
				products = append(products, strings.TrimSpace(p))
			}
			intel.Products = products
		}
	}

	return intel
}

// ParseQualificationResponse reads the structured qualification answer:
// INDUSTRY FIT / REVENUE header lines followed by QUALIFICATION SUMMARY
// bullets. Strategic Relevance and Market Activity bullets are additionally
// lifted into their own fields for the scorer.
func ParseQualificationResponse(text string) types.Qualification {
	parsed := types.Qualification{IndustryFit: "No"}

	var bullets []string
	inSummary := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.Contains(line, "INDUSTRY FIT:"):
			parsed.IndustryFit = afterLastColon(line)
		case strings.Contains(line, "REVENUE:"):
			parsed.RevenueDisplay = afterLastColon(line)
		case strings.Contains(line, "QUALIFICATION SUMMARY:"):
			inSummary = true
		case strings.HasPrefix(line, "-"):
			if !inSummary {
				continue
			}
			bullet := strings.Trim(line, "- ")
			bullets = append(bullets, bullet)

			lower := strings.ToLower(bullet)
			if strings.HasPrefix(lower, "strategic relevance") {
				parsed.StrategicRelevance = afterFirstColon(bullet)
			} else if strings.HasPrefix(lower, "market activity") {
				parsed.MarketActivity = afterFirstColon(bullet)
			}
		}
	}

	parsed.QualificationSummary = strings.Join(bullets, "\n")
	return parsed
}

// Target industries for protective film sales, keyed by fit verdict.
var targetIndustries = []struct {
	fit   string
	terms []string
}{
	{"Yes", []string{
		"signage", "vehicle wraps", "architectural graphics",
		"large format printing", "protective films",
	}},
	{"Maybe", []string{
		"construction", "automotive", "manufacturing",
		"advertising", "marine",
	}},
}

// IndustryFitFor classifies an industry description against the target
// industry lists. Unmatched industries are "No".
func IndustryFitFor(industry string) string {
	lower := strings.ToLower(industry)
	for _, group := range targetIndustries {
		for _, term := range group.terms {
			if strings.Contains(lower, term) {
				return group.fit
			}
		}
	}
	return "No"
}

// LeadReasons summarizes why a company qualifies, or flags it for manual
// review when nothing stands out.
func LeadReasons(intel types.CompanyIntel, qual types.Qualification) string {
	var reasons []string
	if fit := strings.TrimSpace(qual.IndustryFit); fit != "" && !strings.EqualFold(fit, "No") {
		reasons = append(reasons, fmt.Sprintf("Industry Fit: %s", intel.Industry))
	}
	if intel.RevenueUSD > 1e7 {
		reasons = append(reasons, fmt.Sprintf("Financial Size: %s", qual.RevenueDisplay))
	}
	if strings.Contains(strings.ToLower(strings.Join(intel.Products, ", ")), "protective") {
		reasons = append(reasons, "Product Alignment: Existing protective product lines")
	}
	if len(reasons) == 0 {
		return "Needs further analysis"
	}
	return strings.Join(reasons, " | ")
}

// FormatRevenue renders revenue for display: millions below a billion,
// billions above.
func FormatRevenue(revenueUSD float64) string {
	if revenueUSD < 1e9 {
		return fmt.Sprintf("$%.1fM", revenueUSD/1e6)
	}
	return fmt.Sprintf("$%.1fB", revenueUSD/1e9)
}

func afterLastColon(s string) string {
	idx := strings.LastIndex(s, ":")
	return strings.TrimSpace(s[idx+1:])
}

func afterFirstColon(s string) string {
	_, rest, found := strings.Cut(s, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
			words[i] = string(r)
		}
	}
	return strings.Join(words, " ")
}
