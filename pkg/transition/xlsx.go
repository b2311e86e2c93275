package transition

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/srlflow/srlflow/pkg/dataset"
)

// OutputSuffix is appended to the input file stem to name the report.
const OutputSuffix = "_column_transition_matrix.xlsx"

// OutputPath derives the report file name from the input path. The
// report is written to the current directory, like the rest of the
// analysis outputs.
func OutputPath(input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + OutputSuffix
}

// WriteXLSX serializes the matrix: a header row of successor codes,
// an "N" row of per-code transition totals, a "%" row with each code's
// share of all transitions, then one count row per predecessor code.
func (m *Matrix) WriteXLSX(path string) error {
	wb, err := dataset.NewWorkbook("Sheet1")
	if err != nil {
		return err
	}

	codes := m.codes

	header := make([]interface{}, len(codes)+1)
	header[0] = ""
	for j, c := range codes {
		header[j+1] = c
	}
	if err := wb.SetRow(1, header); err != nil {
		return err
	}

	nRow := make([]interface{}, len(codes)+1)
	nRow[0] = "N"
	for j, c := range codes {
		nRow[j+1] = m.ColumnN(c)
	}
	if err := wb.SetRow(2, nRow); err != nil {
		return err
	}

	pctRow := make([]interface{}, len(codes)+1)
	pctRow[0] = "%"
	for j, c := range codes {
		pctRow[j+1] = formatPercent(m.DistributionPercent(c))
	}
	if err := wb.SetRow(3, pctRow); err != nil {
		return err
	}

	for i, from := range codes {
		row := make([]interface{}, len(codes)+1)
		row[0] = from
		for j, to := range codes {
			row[j+1] = m.Count(from, to)
		}
		if err := wb.SetRow(4+i, row); err != nil {
			return err
		}
	}

	return wb.Save(path)
}

// formatPercent renders a percentage rounded to two decimals without
// trailing zeros, e.g. "12.5%" or "33.33%".
func formatPercent(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64) + "%"
}
