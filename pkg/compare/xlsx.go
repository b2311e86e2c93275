package compare

import (
	"fmt"
	"math"

	"github.com/srlflow/srlflow/pkg/dataset"
)

// Footnote explains the p value rendering under every results table.
const Footnote = "Note: ZSig values less than 0.001 are displayed as <0.001"

// Default output file names per comparison mode.
const (
	CodesOutputFile  = "code_comparison_results.xlsx"
	PhasesOutputFile = "phase_comparison_results.xlsx"
)

// FormatP renders a two-sided p value: "<0.001" below that threshold,
// otherwise three decimals.
func FormatP(p float64) string {
	if p < 0.001 {
		return "<0.001"
	}
	return fmt.Sprintf("%.3f", p)
}

// WriteXLSX writes the comparison table to a "Comparison Results"
// sheet: a header row, one row per compared value, and the footnote
// two rows below the table.
func (r *Report) WriteXLSX(path string) error {
	wb, err := dataset.NewWorkbook("Comparison Results")
	if err != nil {
		return err
	}

	header := []interface{}{
		r.Label,
		fmt.Sprintf("Mean Ratio (%%) (%s, N = %d)", r.Group1, r.N1),
		fmt.Sprintf("Mean Ratio (%%) (%s, N = %d)", r.Group2, r.N2),
		fmt.Sprintf("Mean Rank (%s, N = %d)", r.Group1, r.N1),
		fmt.Sprintf("Mean Rank (%s, N = %d)", r.Group2, r.N2),
		"Z",
		"Effect Size (ES)",
		"ZSig (2-tailed)",
	}
	if err := wb.SetRow(1, header); err != nil {
		return err
	}

	for i, row := range r.Rows {
		cells := []interface{}{
			row.Value,
			round(row.MeanRatio1, 2),
			round(row.MeanRatio2, 2),
			round(row.MeanRank1, 2),
			round(row.MeanRank2, 2),
			round(row.Z, 3),
			round(row.EffectSize, 3),
			FormatP(row.P),
		}
		if err := wb.SetRow(2+i, cells); err != nil {
			return err
		}
	}

	// One blank row between the table and the footnote.
	if err := wb.Set(len(r.Rows)+3, 1, Footnote); err != nil {
		return err
	}

	return wb.Save(path)
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
