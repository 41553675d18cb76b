// Package scoring computes the composite lead score for enriched company
// records. The rubric's thresholds and weights are calibrated business
// constants; changing them changes which leads the sales team calls first.
package scoring

import (
	"math"
	"strings"
)

// MaxLeadScore is the sum of all dimension maxima.
const MaxLeadScore = 85

// HighlyQualifiedThreshold is the score above which downstream consumers
// treat a lead as highly qualified. The scorer itself never filters on it.
const HighlyQualifiedThreshold = 60

// Dimension names used in score breakdowns.
const (
	DimIndustryFit        = "industry_fit"
	DimRevenue            = "revenue"
	DimEmployees          = "employees"
	DimStrategicRelevance = "strategic_relevance"
	DimIndustryEngagement = "industry_engagement"
	DimMarketActivity     = "market_activity"
	DimDecisionMaker      = "decision_maker"
)

// LeadProfile carries the enriched fields the scorer consumes. Missing fields
// stay at their zero value and degrade to the lowest tier rather than erroring.
type LeadProfile struct {
	IndustryFit        string
	RevenueUSD         float64
	Employees          float64
	StrategicRelevance string
	EventRelevance     float64
	MarketActivity     string
	DecisionMaker      string
}

// Result reports the aggregate lead score and the per-dimension breakdown.
type Result struct {
	Total     int
	Breakdown map[string]int
}

// Score returns the composite lead score for a profile, always in
// [0, MaxLeadScore]. It is a pure, total function: no input combination
// fails, and identical input always produces identical output.
func Score(p LeadProfile) int {
	return ComputeScore(p).Total
}

// ComputeScore evaluates every dimension and returns the breakdown alongside
// the total.
func ComputeScore(p LeadProfile) Result {
	breakdown := map[string]int{
		DimIndustryFit:        scoreIndustryFit(p.IndustryFit),
		DimRevenue:            scoreRevenue(p.RevenueUSD),
		DimEmployees:          scoreEmployees(p.Employees),
		DimStrategicRelevance: scoreStrategicRelevance(p.StrategicRelevance),
		DimIndustryEngagement: scoreIndustryEngagement(p.EventRelevance),
		DimMarketActivity:     scoreMarketActivity(p.MarketActivity),
		DimDecisionMaker:      scoreDecisionMaker(p.DecisionMaker),
	}

	total := 0
	for _, v := range breakdown {
		total += v
	}
	return Result{Total: total, Breakdown: breakdown}
}

func scoreIndustryFit(fit string) int {
	switch strings.ToLower(strings.TrimSpace(fit)) {
	case "yes":
		return 15
	case "maybe":
		return 7
	default:
		return 0
	}
}

func scoreRevenue(revenue float64) int {
	if math.IsNaN(revenue) {
		revenue = 0
	}
	switch {
	case revenue >= 8_000_000_000:
		return 15
	case revenue >= 1_000_000_000:
		return 12
	case revenue >= 100_000_000:
		return 9
	case revenue >= 10_000_000:
		return 6
	case revenue >= 1_000_000:
		return 3
	default:
		return 1
	}
}

func scoreEmployees(employees float64) int {
	if math.IsNaN(employees) {
		employees = 0
	}
	switch {
	case employees >= 10_000:
		return 10
	case employees >= 1_000:
		return 8
	case employees >= 200:
		return 6
	case employees >= 50:
		return 4
	default:
		return 2
	}
}

func scoreStrategicRelevance(relevance string) int {
	lower := strings.ToLower(relevance)
	if strings.Contains(lower, "major player") || strings.Contains(lower, "high") {
		return 15
	}
	if lower != "" {
		return 8
	}
	return 0
}

func scoreIndustryEngagement(eventRelevance float64) int {
	if math.IsNaN(eventRelevance) {
		eventRelevance = 0
	}
	switch {
	case eventRelevance >= 8:
		return 10
	case eventRelevance >= 5:
		return 7
	default:
		return 4
	}
}

func scoreMarketActivity(activity string) int {
	lower := strings.ToLower(activity)
	if strings.Contains(lower, "weather-resistant") || strings.Contains(lower, "durable") {
		return 10
	}
	if lower != "" {
		return 5
	}
	return 2
}

func scoreDecisionMaker(decisionMaker string) int {
	lower := strings.ToLower(decisionMaker)
	if lower != "" && !strings.Contains(lower, "no relevant") {
		return 10
	}
	return 0
}
