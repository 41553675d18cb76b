package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshit/leadscout/internal/scoring"
	"github.com/harshit/leadscout/internal/tables"
	"github.com/harshit/leadscout/internal/types"
)

func TestProfileFromRow_FullRow(t *testing.T) {
	profile := ProfileFromRow(tables.Row{
		types.ColIndustryFit:         "Yes",
		types.ColRevenueUSD:          "8400000000",
		types.ColEmployees:           "36000",
		types.ColStrategicRelevance:  "Major player in protective films.",
		types.ColEventRelevanceScore: "9.5",
		types.ColMarketActivity:      "Launched durable wrap line.",
		types.ColDecisionMaker:       "Alex Smith",
	})

	assert.Equal(t, "Yes", profile.IndustryFit)
	assert.InDelta(t, 8.4e9, profile.RevenueUSD, 1)
	assert.InDelta(t, 36000, profile.Employees, 0.1)
	assert.InDelta(t, 9.5, profile.EventRelevance, 0.01)
	assert.Equal(t, scoring.MaxLeadScore, scoring.Score(profile))
}

func TestProfileFromRow_MissingNumericsBecomeNaN(t *testing.T) {
	profile := ProfileFromRow(tables.Row{
		types.ColRevenueUSD: "n/a",
	})

	assert.True(t, profile.RevenueUSD != profile.RevenueUSD, "unparseable revenue should be NaN")
	assert.True(t, profile.Employees != profile.Employees, "missing employees should be NaN")
	// NaN numerics hit the floor tiers, same as an empty profile.
	assert.Equal(t, 9, scoring.Score(profile))
}

func TestScoreTable_AppendsAndSorts(t *testing.T) {
	leads := tables.New(types.ColCompanyName, types.ColIndustryFit, types.ColEventRelevanceScore)
	leads.Append(tables.Row{
		types.ColCompanyName:         "Lowball Co",
		types.ColIndustryFit:         "No",
		types.ColEventRelevanceScore: "2",
	})
	leads.Append(tables.Row{
		types.ColCompanyName:         "Avery Dennison",
		types.ColIndustryFit:         "Yes",
		types.ColEventRelevanceScore: "9.5",
	})

	scored := ScoreTable(leads)

	require.Equal(t, 2, scored.Len())
	assert.True(t, scored.HasColumn(types.ColLeadScore))
	assert.Equal(t, "Avery Dennison", scored.Rows[0].Get(types.ColCompanyName))

	top, ok := scored.Rows[0].Float(types.ColLeadScore)
	require.True(t, ok)
	bottom, ok := scored.Rows[1].Float(types.ColLeadScore)
	require.True(t, ok)
	assert.Greater(t, top, bottom)
}

func TestScoreTable_DoesNotMutateInput(t *testing.T) {
	leads := tables.New(types.ColCompanyName)
	leads.Append(tables.Row{types.ColCompanyName: "Avery Dennison"})

	_ = ScoreTable(leads)

	assert.False(t, leads.HasColumn(types.ColLeadScore))
	_, hasScore := leads.Rows[0][types.ColLeadScore]
	assert.False(t, hasScore)
}
