// Package tables provides the CSV table interchange used between pipeline stages.
// Each stage reads a table with a required set of columns and writes a table with
// those columns plus whatever it adds.
package tables

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Row is a single record keyed by column name. Cells are stored as strings;
// numeric columns are coerced on access.
type Row map[string]string

// Table is an ordered set of columns plus the rows beneath them.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EnsureColumns appends any of the named columns the table does not yet declare.
// Existing rows read the new columns as empty cells.
func (t *Table) EnsureColumns(names ...string) {
	for _, name := range names {
		if !t.HasColumn(name) {
			t.Columns = append(t.Columns, name)
		}
	}
}

// Append adds a row and declares any columns the row carries that the table
// does not yet know about.
func (t *Table) Append(row Row) {
	for col := range row {
		if !t.HasColumn(col) {
			t.Columns = append(t.Columns, col)
		}
	}
	t.Rows = append(t.Rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// SortByFloatDesc stably sorts rows by a numeric column, descending.
// Non-numeric cells sort as 0.
func (t *Table) SortByFloatDesc(column string) {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, _ := t.Rows[i].Float(column)
		b, _ := t.Rows[j].Float(column)
		return a > b
	})
}

// Get returns the cell value for a column, empty string when absent.
func (r Row) Get(column string) string {
	return r[column]
}

// Float coerces a cell to a float64. The second return is false when the cell
// is missing, empty, or not numeric.
func (r Row) Float(column string) (float64, bool) {
	raw := strings.TrimSpace(r[column])
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Clone returns a copy of the row that can be mutated independently.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Load reads a CSV file with a header row and verifies the required columns
// are present. A missing required column is an error naming the column, not a
// table full of empty cells.
func Load(path string, required ...string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %s has no header row", path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := New(header...)
	for _, col := range required {
		if !table.HasColumn(col) {
			return nil, &MissingColumnError{Path: path, Column: col}
		}
	}

	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// Save writes the table as UTF-8 CSV with a header row, creating the parent
// directory if needed. Cells missing from a row are written empty.
func (t *Table) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	writer := csv.NewWriter(f)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = row[col]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush table %s: %w", path, err)
	}
	return nil
}
