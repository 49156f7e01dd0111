package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeUnit(t *testing.T) {
	cases := map[string]string{
		"UN":   "UN",
		"un":   "UN",
		"UND":  "UN",
		"UNID": "UN",
		"UM":   "UN",
		"KG":   "KG",
		"Kg":   "KG",
		"KILO": "KG",
		"":     "UN",
		"CX":   "UN",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeUnit(in), "input %q", in)
	}
}

func TestReadProducts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogo.xlsx")
	writeSheet(t, path, [][]interface{}{
		{"Código", "Produto", "UM"},
		{"1778", "ABACATE ORGANICO KG", "Kg"},
		{"", "LINHA SEM CODIGO", "KG"},
		{"1915", "ABACAXI ORGANICO UN", "UND"},
	})

	rows, err := ReadProducts(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ProductRow{Code: "1778", Name: "ABACATE ORGANICO KG", Unit: "KG"}, rows[0])
	assert.Equal(t, ProductRow{Code: "1915", Name: "ABACAXI ORGANICO UN", Unit: "UN"}, rows[1])
}

func TestReadProductsPositionalFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogo.xlsx")
	writeSheet(t, path, [][]interface{}{
		{"A", "B", "C"},
		{"904", "CHUCHU ORGANICO KG", "KG"},
	})

	rows, err := ReadProducts(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "904", rows[0].Code)
}

func TestReadProductsHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogo.xlsx")
	writeSheet(t, path, [][]interface{}{
		{"Código", "Produto", "UM"},
	})

	rows, err := ReadProducts(path)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func writeSheet(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}
	require.NoError(t, f.SaveAs(path))
}
