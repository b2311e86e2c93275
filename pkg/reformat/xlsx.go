package reformat

import (
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/srlflow/srlflow/pkg/dataset"
)

// DefaultOutputFile names the reformatted spreadsheet.
const DefaultOutputFile = "processed_users_data.xlsx"

// wrapWidth is the hard-wrap interval for long message cells; explicit
// newlines keep spreadsheet row heights manageable.
const wrapWidth = 100

var columns = []string{
	"case_id", "week", "idx", "timestamp",
	"chatgpt_before", "user", "chatgpt_after",
}

var columnWidths = []float64{15, 8, 8, 15, 80, 80, 80}

// WriteXLSX writes the turns sorted by case id then week, with idx
// renumbered from 1. Message columns are hard-wrapped; the sheet is
// styled Arial 10 with a bold centered header.
func WriteXLSX(turns []DialogTurn, path string) error {
	sorted := make([]DialogTurn, len(turns))
	copy(sorted, turns)
	sort.SliceStable(sorted, func(a, b int) bool {
		if sorted[a].CaseID != sorted[b].CaseID {
			return sorted[a].CaseID < sorted[b].CaseID
		}
		return sorted[a].Week < sorted[b].Week
	})

	wb, err := dataset.NewWorkbook("Sheet1")
	if err != nil {
		return err
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := wb.SetRow(1, header); err != nil {
		return err
	}

	for i, turn := range sorted {
		row := []interface{}{
			turn.CaseID,
			turn.Week,
			i + 1,
			turn.Timestamp.Format(TimestampLayout),
			hardWrap(turn.BotBefore),
			hardWrap(turn.User),
			hardWrap(turn.BotAfter),
		}
		if err := wb.SetRow(2+i, row); err != nil {
			return err
		}
	}

	for i, w := range columnWidths {
		if err := wb.SetColWidth(i+1, w); err != nil {
			return err
		}
	}

	headerStyle, err := wb.File().NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Size: 10, Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return err
	}
	if err := wb.StyleRange(1, 1, 1, len(columns), headerStyle); err != nil {
		return err
	}

	if len(sorted) > 0 {
		bodyStyle, err := wb.File().NewStyle(&excelize.Style{
			Font:      &excelize.Font{Family: "Arial", Size: 10},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		})
		if err != nil {
			return err
		}
		if err := wb.StyleRange(2, 1, len(sorted)+1, len(columns), bodyStyle); err != nil {
			return err
		}
	}

	return wb.Save(path)
}

// hardWrap inserts a newline every wrapWidth runes.
func hardWrap(s string) string {
	runes := []rune(s)
	if len(runes) <= wrapWidth {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(runes); i += wrapWidth {
		if i > 0 {
			b.WriteByte('\n')
		}
		end := i + wrapWidth
		if end > len(runes) {
			end = len(runes)
		}
		b.WriteString(string(runes[i:end]))
	}
	return b.String()
}
