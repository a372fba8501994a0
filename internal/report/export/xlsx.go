package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Test Results"

// WriteXLSX renders the table as a single-sheet spreadsheet: one header row
// of column labels, one data row per report row.
func WriteXLSX(t Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeRow(f, 1, t.Columns); err != nil {
		return err
	}
	for i, cells := range t.Rows {
		if err := writeRow(f, i+2, cells); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, rowNum int, cells []string) error {
	for col, v := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
