package hunting

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshit/leadscout/internal/fetch"
	"github.com/harshit/leadscout/internal/tables"
	"github.com/harshit/leadscout/internal/types"
)

func fixedClock() time.Time {
	return time.Date(2025, 4, 23, 12, 0, 0, 0, time.UTC)
}

func newTestHunter() *Hunter {
	h := NewHunter(fetch.NewCachedFetcher(fetch.NewCache(), nil))
	h.Now = fixedClock
	h.Mappings = map[string][]string{}
	return h
}

func TestCollectCompanyLinks_KeywordMatchAndResolution(t *testing.T) {
	html := `
	<html><body>
		<a href="/exhibitors">Exhibitor list</a>
		<a href="https://expo.example.com/sponsors">Sponsors</a>
		<a href="/schedule">Schedule</a>
		<a href="/exhibitors">Exhibitor list again</a>
	</body></html>`

	links, err := CollectCompanyLinks(html, "https://expo.example.com/2025/")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://expo.example.com/exhibitors",
		"https://expo.example.com/sponsors",
	}, links)
}

func TestCollectCompanyLinks_NoMatches(t *testing.T) {
	links, err := CollectCompanyLinks(`<a href="/pricing">Pricing</a>`, "https://expo.example.com")

	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestParseCompanyCandidates_Heuristics(t *testing.T) {
	html := `
	<html><body>
		<ul>
			<li>Arlon Graphics</li>
			<li>3M Commercial Solutions</li>
			<li>AB</li>
			<li>12345</li>
			<li>Contact Us</li>
			<li>FAQ page</li>
		</ul>
	</body></html>`

	names, err := ParseCompanyCandidates(html)

	require.NoError(t, err)
	assert.Contains(t, names, "Arlon Graphics")
	assert.Contains(t, names, "3M Commercial Solutions")
	assert.NotContains(t, names, "AB")      // too short
	assert.NotContains(t, names, "12345")   // no letters
	assert.NotContains(t, names, "Contact Us")
	assert.NotContains(t, names, "FAQ page")
}

func TestParseCompanyCandidates_LengthBounds(t *testing.T) {
	long := "This is a really long navigation string that cannot be a company name"
	html := "<li>" + long + "</li><li>Avery Dennison</li>"

	names, err := ParseCompanyCandidates(html)

	require.NoError(t, err)
	assert.NotContains(t, names, long)
	assert.Contains(t, names, "Avery Dennison")
}

func TestHuntEvent_ParsesSubPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><a href="/exhibitors">Exhibitors</a></body></html>`))
	})
	mux.HandleFunc("/exhibitors", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><ul><li>Arlon Graphics</li><li>General Formulations</li></ul></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	hunter := newTestHunter()
	rows, err := hunter.HuntEvent(context.Background(), "ISA Sign Expo 2025", "9.5", server.URL+"/")

	require.NoError(t, err)
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Get(types.ColCompanyName))
		assert.Equal(t, "ISA Sign Expo 2025", row.Get(types.ColEventName))
		assert.Equal(t, "9.5", row.Get(types.ColEventRelevanceScore))
		assert.Equal(t, "2025-04-23 12:00:00", row.Get(types.ColDateUpdated))
	}
	assert.Contains(t, names, "Arlon Graphics")
	assert.Contains(t, names, "General Formulations")
}

func TestHuntEvent_FallsBackToMainPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><ul><li>Aludecor</li></ul></body></html>`))
	}))
	defer server.Close()

	hunter := newTestHunter()
	rows, err := hunter.HuntEvent(context.Background(), "Wrap Expo", "7", server.URL)

	require.NoError(t, err)
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Get(types.ColCompanyName))
	}
	assert.Contains(t, names, "Aludecor")
}

type staticFinder struct {
	pages []string
}

func (f *staticFinder) FindExhibitorPages(_ context.Context, _ string, _ string) ([]string, error) {
	return f.pages, nil
}

func TestHuntEvent_UsesFinderWhenNoLinks(t *testing.T) {
	directory := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><ul><li>Lintec of America, Inc.</li></ul></body></html>`))
	}))
	defer directory.Close()

	main := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>Welcome to the greatest signage event of the year, see you in Vegas</p></body></html>`))
	}))
	defer main.Close()

	hunter := newTestHunter()
	hunter.Finder = &staticFinder{pages: []string{directory.URL}}

	rows, err := hunter.HuntEvent(context.Background(), "Wrap Expo", "7", main.URL)

	require.NoError(t, err)
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Get(types.ColCompanyName))
	}
	assert.Contains(t, names, "Lintec of America, Inc.")
}

func TestRun_DedupesAndMergesMappings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><ul><li>Arlon Graphics</li><li>Arlon Graphics</li></ul></body></html>`))
	}))
	defer server.Close()

	leads := tables.New(
		types.ColEventTableName,
		types.ColEventTableURL,
		types.ColRelevanceScore,
	)
	leads.Append(tables.Row{
		types.ColEventTableName: "ISA Sign Expo 2025",
		types.ColEventTableURL:  server.URL,
		types.ColRelevanceScore: "9.5",
	})

	hunter := newTestHunter()
	hunter.Mappings = map[string][]string{
		"ISA Sign Expo 2025": {"Arlon Graphics", "Avery Dennison Graphics Solutions"},
		"Some Missing Event": {"Ghost Co"},
	}

	out, err := hunter.Run(context.Background(), leads)

	require.NoError(t, err)
	counts := map[string]int{}
	for _, row := range out.Rows {
		counts[row.Get(types.ColCompanyName)]++
	}
	assert.Equal(t, 1, counts["Arlon Graphics"], "duplicates collapse to the first occurrence")
	assert.Equal(t, 1, counts["Avery Dennison Graphics Solutions"])
	assert.Zero(t, counts["Ghost Co"], "mappings for unknown events are skipped")
}

func TestRun_MissingColumn(t *testing.T) {
	leads := tables.New("name") // url column absent

	hunter := newTestHunter()
	_, err := hunter.Run(context.Background(), leads)

	require.Error(t, err)
	var missing *tables.MissingColumnError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, types.ColEventTableURL, missing.Column)
}
