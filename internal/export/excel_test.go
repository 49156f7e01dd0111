package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelSheetRoundTrip(t *testing.T) {
	rows := []Row{
		{Code: "1778", Name: "ABACATE ORGANICO KG", Quantity: 15.5, Unit: "KG"},
		{Code: "1915", Name: "ABACAXI ORGANICO UN", Quantity: 3, Unit: "UN"},
	}

	content, err := ExcelSheet(rows, "PIT")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	require.Equal(t, []string{"PIT"}, f.GetSheetList())

	got, err := f.GetRows("PIT")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, excelHeaders, got[0])
	assert.Equal(t, []string{"1778", "ABACATE ORGANICO KG", "15.5", "KG"}, got[1])
	assert.Equal(t, []string{"1915", "ABACAXI ORGANICO UN", "3", "UN"}, got[2])
}

func TestExcelSheetCapsSheetName(t *testing.T) {
	long := strings.Repeat("X", 40)

	content, err := ExcelSheet(nil, long)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{long[:31]}, f.GetSheetList())
}
