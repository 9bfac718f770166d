package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName       = "Attendance Report"
	headerFillColor = "667EEA"
	engineerColWide = 25
	dateColWidth    = 12
)

// WriteXLSX writes the grid as a styled workbook: Tahoma 8, centered
// cells with thin borders, the header row bold white on the report's
// indigo fill, and the engineer column left-aligned.
func (t Table) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create worksheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default worksheet: %w", err)
	}

	borders := []excelize.Border{
		{Type: "top", Style: 1},
		{Type: "bottom", Style: 1},
		{Type: "left", Style: 1},
		{Type: "right", Style: 1},
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Tahoma", Size: 8},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders,
	})
	if err != nil {
		return fmt.Errorf("create cell style: %w", err)
	}
	nameStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Tahoma", Size: 8},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    borders,
	})
	if err != nil {
		return fmt.Errorf("create cell style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Tahoma", Size: 8, Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	writeRow := func(rowIdx int, values []string, firstColStyle, restStyle int) error {
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(sheetName, cell, value); err != nil {
				return err
			}
			style := restStyle
			if colIdx == 0 {
				style = firstColStyle
			}
			if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(0, t.Header, headerStyle, headerStyle); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for i, row := range t.Rows {
		if err := writeRow(i+1, row, nameStyle, bodyStyle); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", engineerColWide); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if len(t.Header) > 1 {
		lastCol, err := excelize.ColumnNumberToName(len(t.Header))
		if err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
		if err := f.SetColWidth(sheetName, "B", lastCol, dateColWidth); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
