// Package importer parses product catalog spreadsheets. Header names are
// inferred from common Portuguese/English labels; unit values are normalized
// to the KG/UN enum.
package importer

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// ProductRow is one parsed catalog row.
type ProductRow struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// NormalizeUnit maps free-form unit labels to the catalog enum: count
// variants (UN, UND, UNID, UM) become UN, anything starting with K becomes
// KG, the rest defaults to UN.
func NormalizeUnit(unit string) string {
	u := strings.ToUpper(strings.TrimSpace(unit))
	switch u {
	case "UN", "UND", "UNID", "UM":
		return "UN"
	}
	if strings.HasPrefix(u, "K") {
		return "KG"
	}
	return "UN"
}

// ReadProducts reads the active sheet of an xlsx file and returns one row
// per product. Rows missing a code or name are skipped.
func ReadProducts(path string) ([]ProductRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	codeCol, nameCol, unitCol := inferColumns(rows[0])

	var products []ProductRow
	for _, row := range rows[1:] {
		code := strings.TrimSpace(cellAt(row, codeCol))
		name := strings.TrimSpace(cellAt(row, nameCol))
		if code == "" || name == "" {
			continue
		}
		products = append(products, ProductRow{
			Code: code,
			Name: name,
			Unit: NormalizeUnit(cellAt(row, unitCol)),
		})
	}
	return products, nil
}

func inferColumns(header []string) (code, name, unit int) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	code = firstOf(index, 0, "codigo", "código", "code")
	name = firstOf(index, 1, "nome", "produto", "name")
	unit = firstOf(index, 2, "unidade", "um", "unit")
	return code, name, unit
}

func firstOf(index map[string]int, fallback int, labels ...string) int {
	for _, label := range labels {
		if i, ok := index[label]; ok {
			return i
		}
	}
	return fallback
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
