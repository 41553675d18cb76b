package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignPathPriority_ExhibitorPagesRankHighest(t *testing.T) {
	assert.Equal(t, 0.95, AssignPathPriority("https://expo.example.com/exhibitor-list"))
	assert.Equal(t, 0.95, AssignPathPriority("https://expo.example.com/2025/sponsors"))
	assert.Equal(t, 0.85, AssignPathPriority("https://expo.example.com/floorplan"))
	assert.Equal(t, 0.7, AssignPathPriority("https://expo.example.com/press"))
	assert.Equal(t, 0.5, AssignPathPriority("https://expo.example.com/schedule"))
	assert.Equal(t, 0.1, AssignPathPriority("https://expo.example.com/register"))
}

func TestRankDirectoryLinks_OrdersByPriorityAndDropsLogistics(t *testing.T) {
	links := []string{
		"https://expo.example.com/schedule",
		"https://expo.example.com/register",
		"https://expo.example.com/exhibitors",
		"https://expo.example.com/floorplan",
	}

	ranked := RankDirectoryLinks(links)

	assert.Equal(t, []string{
		"https://expo.example.com/exhibitors",
		"https://expo.example.com/floorplan",
		"https://expo.example.com/schedule",
	}, ranked)
}

func TestRankDirectoryLinks_StableForTies(t *testing.T) {
	links := []string{
		"https://a.example.com/exhibitors",
		"https://b.example.com/directory",
	}

	ranked := RankDirectoryLinks(links)

	assert.Equal(t, links, ranked)
}

func TestIsThirdParty(t *testing.T) {
	assert.True(t, IsThirdParty("https://www.linkedin.com/company/avery-dennison"))
	assert.True(t, IsThirdParty("https://en.wikipedia.org/wiki/ISA_Sign_Expo"))
	assert.False(t, IsThirdParty("https://isasignexpo2025.mapyourshow.com/"))
	assert.False(t, IsThirdParty("https://printingunited.com/exhibitor-list"))
}

func TestExtractUniqueDomains(t *testing.T) {
	domains := ExtractUniqueDomains([]string{
		"https://www.example.com/a",
		"https://example.com/b",
		"https://other.example.org/c",
		"",
	})

	assert.Equal(t, []string{"example.com", "other.example.org"}, domains)
}
