package submission

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Submissions"

// ExportXLSX writes the table as a single-sheet workbook: one header row with
// the column labels plus "Submitted at", then one row per submission.
func ExportXLSX(table Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("submission: xlsx sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return fmt.Errorf("submission: xlsx style: %w", err)
	}

	headers := make([]string, 0, len(table.Columns)+1)
	for _, col := range table.Columns {
		label := col.Label
		if label == "" {
			label = col.ID
		}
		headers = append(headers, label)
	}
	headers = append(headers, "Submitted at")

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("submission: xlsx header: %w", err)
		}
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for r, row := range table.Rows {
		for c, col := range table.Columns {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheetName, cell, row.Values[col.ID])
		}
		cell, _ := excelize.CoordinatesToCellName(len(table.Columns)+1, r+2)
		f.SetCellValue(sheetName, cell, row.SubmittedAt.UTC().Format(time.RFC3339))
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 22)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("submission: xlsx write: %w", err)
	}
	return nil
}
