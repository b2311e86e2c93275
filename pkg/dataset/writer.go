package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps an excelize file with 1-based (row, col) addressing
// for writing report sheets.
type Workbook struct {
	file  *excelize.File
	sheet string
}

// NewWorkbook creates a workbook with a single named sheet.
func NewWorkbook(sheet string) (*Workbook, error) {
	f := excelize.NewFile()
	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, err
		}
	} else {
		sheet = "Sheet1"
	}
	return &Workbook{file: f, sheet: sheet}, nil
}

// Sheet returns the sheet name.
func (w *Workbook) Sheet() string { return w.sheet }

// File exposes the underlying excelize file for styling.
func (w *Workbook) File() *excelize.File { return w.file }

// Set writes a value at (row, col), both 1-based.
func (w *Workbook) Set(row, col int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return w.file.SetCellValue(w.sheet, cell, value)
}

// SetRow writes a full row starting at column 1.
func (w *Workbook) SetRow(row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return w.file.SetSheetRow(w.sheet, cell, &values)
}

// SetColWidth sets the width of a single column (1-based).
func (w *Workbook) SetColWidth(col int, width float64) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	return w.file.SetColWidth(w.sheet, name, name, width)
}

// StyleRange applies a style id to the rectangle between two 1-based
// (row, col) corners.
func (w *Workbook) StyleRange(fromRow, fromCol, toRow, toCol, styleID int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(w.sheet, from, to, styleID)
}

// Save writes the workbook to path and closes it.
func (w *Workbook) Save(path string) error {
	defer w.file.Close()
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write xlsx %s: %w", path, err)
	}
	return nil
}
