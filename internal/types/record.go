// Package types provides type definitions for structured data used throughout the leadscout pipeline.
package types

// Canonical CSV column names shared across pipeline stages. Every stage reads
// and writes these headers; stages validate required columns before processing.
const (
	ColCompanyName          = "company_name"
	ColEventName            = "event_name"
	ColEventRelevanceScore  = "event_relevance_score"
	ColDateUpdated          = "date_updated"
	ColRevenueUSD           = "revenue_usd"
	ColEmployees            = "employees"
	ColIndustry             = "industry"
	ColProducts             = "products"
	ColIndustryFit          = "industry_fit"
	ColRevenueDisplay       = "revenue_display"
	ColQualificationSummary = "qualification_summary"
	ColStrategicRelevance   = "strategic_relevance"
	ColMarketActivity       = "market_activity"
	ColQualifiedLeadReasons = "qualified_lead_reasons"
	ColEnrichmentTimestamp  = "enrichment_timestamp"
	ColDecisionMaker        = "decision_maker"
	ColTitle                = "title"
	ColEmail                = "email"
	ColLinkedIn             = "linkedin"
	ColOutreachMessage      = "outreach_message"
	ColLeadScore            = "lead_score"
)

// Event table column names, produced by the scout stage.
const (
	ColEventTableName  = "name"
	ColEventTableURL   = "url"
	ColEventSource     = "source"
	ColEventID         = "event_id"
	ColRelevanceScore  = "relevance_score"
	ColReasoning       = "reasoning"
	ColPriority        = "priority"
)

// NoRelevantPersonFound marks a company row for which stakeholder discovery
// produced no contacts. The lead scorer treats it as decision-maker absence.
const NoRelevantPersonFound = "no relevant person found"

// CompanyIntel holds firmographic data extracted from a free-text
// intelligence response. Fields left at their zero value when the
// response did not mention them.
type CompanyIntel struct {
	RevenueUSD float64  `json:"revenue_usd"`
	Employees  int      `json:"employees"`
	Industry   string   `json:"industry"`
	Products   []string `json:"products"`
}

// Qualification holds the structured fields parsed from the qualification
// summary response for a company.
type Qualification struct {
	IndustryFit          string `json:"industry_fit"`
	RevenueDisplay       string `json:"revenue_display"`
	QualificationSummary string `json:"qualification_summary"`
	StrategicRelevance   string `json:"strategic_relevance"`
	MarketActivity       string `json:"market_activity"`
}

// Stakeholder is one synthesized decision-maker contact at a company.
type Stakeholder struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
}
