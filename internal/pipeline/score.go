package pipeline

import (
	"math"
	"strconv"

	"github.com/harshit/leadscout/internal/scoring"
	"github.com/harshit/leadscout/internal/tables"
	"github.com/harshit/leadscout/internal/types"
)

// ProfileFromRow maps a lead row onto the scoring dimensions. Numeric cells
// that are missing or unparseable become NaN so the scorer applies its floor
// tiers instead of treating them as zero revenue or zero employees.
func ProfileFromRow(row tables.Row) scoring.LeadProfile {
	return scoring.LeadProfile{
		IndustryFit:        row.Get(types.ColIndustryFit),
		RevenueUSD:         floatOrNaN(row, types.ColRevenueUSD),
		Employees:          floatOrNaN(row, types.ColEmployees),
		StrategicRelevance: row.Get(types.ColStrategicRelevance),
		EventRelevance:     floatOrNaN(row, types.ColEventRelevanceScore),
		MarketActivity:     row.Get(types.ColMarketActivity),
		DecisionMaker:      row.Get(types.ColDecisionMaker),
	}
}

// ScoreTable appends a lead_score column and returns the rows sorted by that
// score, highest first. Input rows are not mutated.
func ScoreTable(leads *tables.Table) *tables.Table {
	out := tables.New(leads.Columns...)
	out.EnsureColumns(types.ColLeadScore)

	for _, row := range leads.Rows {
		scored := row.Clone()
		scored[types.ColLeadScore] = strconv.Itoa(scoring.Score(ProfileFromRow(row)))
		out.Append(scored)
	}

	out.SortByFloatDesc(types.ColLeadScore)
	return out
}

func scoringBreakdown(row tables.Row) scoring.Result {
	return scoring.ComputeScore(ProfileFromRow(row))
}

func floatOrNaN(row tables.Row, column string) float64 {
	v, ok := row.Float(column)
	if !ok {
		return math.NaN()
	}
	return v
}
