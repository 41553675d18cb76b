package tables

import "fmt"

// MissingColumnError reports a required column absent from a loaded table.
// Stages fail fast on this instead of producing empty cells throughout.
type MissingColumnError struct {
	Path   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table %s is missing required column %q", e.Path, e.Column)
}
