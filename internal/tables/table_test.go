package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_HeaderAndRows(t *testing.T) {
	path := writeTempCSV(t, "company_name,event_name,event_relevance_score\nAcme,Sign Expo 2025,9\n3M,Sign Expo 2025,8.5\n")

	table, err := Load(path, "company_name", "event_name")

	require.NoError(t, err)
	assert.Equal(t, []string{"company_name", "event_name", "event_relevance_score"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Acme", table.Rows[0].Get("company_name"))
	assert.Equal(t, "8.5", table.Rows[1].Get("event_relevance_score"))
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	path := writeTempCSV(t, "company_name,event_name\nAcme,Sign Expo 2025\n")

	_, err := Load(path, "company_name", "event_relevance_score")

	require.Error(t, err)
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "event_relevance_score", missing.Column)
}

func TestLoad_ShortRowsPadEmpty(t *testing.T) {
	path := writeTempCSV(t, "company_name,event_name,priority\nAcme,Sign Expo 2025\n")

	table, err := Load(path)

	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0].Get("priority"))
}

func TestLoad_StripsByteOrderMark(t *testing.T) {
	path := writeTempCSV(t, "\uFEFFcompany_name,event_name\nAcme,Sign Expo 2025\n")

	table, err := Load(path, "company_name")

	require.NoError(t, err)
	assert.Equal(t, []string{"company_name", "event_name"}, table.Columns)
	assert.Equal(t, "Acme", table.Rows[0].Get("company_name"))
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	table := New("company_name", "lead_score")
	table.Append(Row{"company_name": "Avery Dennison", "lead_score": "72"})
	table.Append(Row{"company_name": "Arlon Graphics"})

	path := filepath.Join(t.TempDir(), "out", "leads.csv")
	require.NoError(t, table.Save(path))

	loaded, err := Load(path, "company_name", "lead_score")
	require.NoError(t, err)
	require.Len(t, loaded.Rows, 2)
	assert.Equal(t, "72", loaded.Rows[0].Get("lead_score"))
	assert.Equal(t, "", loaded.Rows[1].Get("lead_score"))
}

func TestRow_Float(t *testing.T) {
	row := Row{"score": " 7.5 ", "bad": "n/a", "empty": ""}

	v, ok := row.Float("score")
	assert.True(t, ok)
	assert.Equal(t, 7.5, v)

	_, ok = row.Float("bad")
	assert.False(t, ok)

	_, ok = row.Float("empty")
	assert.False(t, ok)

	_, ok = row.Float("missing")
	assert.False(t, ok)
}

func TestAppend_DeclaresNewColumns(t *testing.T) {
	table := New("company_name")
	table.Append(Row{"company_name": "Acme", "outreach_message": "hello"})

	assert.True(t, table.HasColumn("outreach_message"))
}

func TestSortByFloatDesc_StableAndNonNumericLast(t *testing.T) {
	table := New("company_name", "lead_score")
	table.Append(Row{"company_name": "Low", "lead_score": "12"})
	table.Append(Row{"company_name": "High", "lead_score": "80"})
	table.Append(Row{"company_name": "Bad", "lead_score": "oops"})
	table.Append(Row{"company_name": "Mid", "lead_score": "45"})

	table.SortByFloatDesc("lead_score")

	assert.Equal(t, "High", table.Rows[0].Get("company_name"))
	assert.Equal(t, "Mid", table.Rows[1].Get("company_name"))
	assert.Equal(t, "Low", table.Rows[2].Get("company_name"))
	assert.Equal(t, "Bad", table.Rows[3].Get("company_name"))
}
