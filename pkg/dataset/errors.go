package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumn is returned when a required column is missing.
	ErrMissingColumn = errors.New("dataset: required column missing")

	// ErrNoSheets is returned when the workbook has no sheets.
	ErrNoSheets = errors.New("dataset: no sheets found")
)

// MissingColumnError reports a required column that is absent from the
// sheet, along with the columns that were found.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("dataset: column %q not found (available: %s)",
		e.Column, strings.Join(e.Available, ", "))
}

// Is makes MissingColumnError match ErrMissingColumn with errors.Is.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}
