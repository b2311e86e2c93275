// Package dataset reads and writes the flat spreadsheet tables the
// analysis commands operate on. Tables are fully materialized in
// memory; the inputs are coded transcripts of at most a few thousand
// rows.
package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/srlflow/srlflow/internal/model"
)

// Table is an in-memory spreadsheet sheet: a header row and string
// cells. All values are coerced to strings on read.
type Table struct {
	Columns []string
	Rows    [][]string

	colIdx map[string]int
}

// ReadTable opens an xlsx file and reads the first sheet into a Table.
// The first row is treated as the header.
func ReadTable(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx %s: %w", path, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		sheetList := f.GetSheetList()
		if len(sheetList) == 0 {
			return nil, ErrNoSheets
		}
		sheetName = sheetList[0]
	}

	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	defer rows.Close()

	t := &Table{}
	if !rows.Next() {
		// Empty sheet: no header, no rows. Valid but uninteresting.
		return t, nil
	}

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	t.Columns = header

	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			continue // skip malformed rows
		}
		if isEmptyRow(cols) {
			continue
		}
		t.Rows = append(t.Rows, cols)
	}

	t.buildIndex()
	return t, nil
}

func isEmptyRow(cols []string) bool {
	for _, c := range cols {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (t *Table) buildIndex() {
	t.colIdx = make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		t.colIdx[col] = i
	}
}

// ColumnIndex returns the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	if t.colIdx == nil {
		t.buildIndex()
	}
	i, ok := t.colIdx[name]
	return i, ok
}

// Require returns the index of a required column, or a
// MissingColumnError naming it and listing what the sheet has.
func (t *Table) Require(name string) (int, error) {
	if i, ok := t.ColumnIndex(name); ok {
		return i, nil
	}
	return -1, &MissingColumnError{Column: name, Available: t.Columns}
}

// Cell returns the value at (row, col), or "" when the row is ragged.
// Short rows are common in xlsx files with trailing empty cells.
func (t *Table) Cell(row, col int) string {
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// EventColumns names the columns used to turn a Table into events.
// Case is always required; Code and Phase are looked up only when
// named, so phase-only sheets need no code column.
type EventColumns struct {
	Case  string // case identifier column
	Code  string // action code column; "" to skip
	Phase string // phase column; "" to skip
}

// DefaultEventColumns matches the coded export layout.
func DefaultEventColumns() EventColumns {
	return EventColumns{Case: "case_id", Code: "SRL_code"}
}

// Events extracts the per-row events from the table in input order.
// The case and code columns must exist; the phase column is looked up
// only when named.
func (t *Table) Events(cols EventColumns) ([]model.Event, error) {
	if len(t.Columns) == 0 && len(t.Rows) == 0 {
		return nil, nil
	}

	caseIdx, err := t.Require(cols.Case)
	if err != nil {
		return nil, err
	}
	codeIdx := -1
	if cols.Code != "" {
		if codeIdx, err = t.Require(cols.Code); err != nil {
			return nil, err
		}
	}
	phaseIdx := -1
	if cols.Phase != "" {
		if phaseIdx, err = t.Require(cols.Phase); err != nil {
			return nil, err
		}
	}

	events := make([]model.Event, 0, len(t.Rows))
	for i := range t.Rows {
		e := model.Event{
			CaseID: strings.TrimSpace(t.Cell(i, caseIdx)),
			Row:    i + 2, // 1-based, after the header row
		}
		if codeIdx >= 0 {
			e.Code = t.Cell(i, codeIdx)
		}
		if phaseIdx >= 0 {
			e.Phase = strings.TrimSpace(t.Cell(i, phaseIdx))
		}
		events = append(events, e)
	}
	return events, nil
}
