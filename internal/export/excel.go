package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var excelHeaders = []string{"CODIGO DO PRODUTO", "NOME DO PRODUTO", "QUANTIDADE", "UNIDADE"}

// ExcelSheet renders rows as a styled single-sheet workbook and returns the
// xlsx bytes. Sheet names are capped at Excel's 31-character limit.
func ExcelSheet(rows []Row, sheetName string) ([]byte, error) {
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"355E3B"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "999999", Style: 1},
			{Type: "right", Color: "999999", Style: 1},
			{Type: "top", Color: "999999", Style: 1},
			{Type: "bottom", Color: "999999", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	for col, header := range excelHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		line := i + 2
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", line), row.Code); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", line), row.Name); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, fmt.Sprintf("C%d", line), row.Quantity); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, fmt.Sprintf("D%d", line), row.Unit); err != nil {
			return nil, err
		}
	}

	widths := []float64{22, 42, 14, 12}
	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
