package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextFormat(t *testing.T) {
	rows := []Row{
		{Code: "1778", Name: "ABACATE ORGANICO KG", Quantity: 15.5, Unit: "KG"},
		{Code: "1915", Name: "ABACAXI ORGANICO UN", Quantity: 3, Unit: "UN"},
	}

	got := string(Text(rows))
	assert.Equal(t, "1778 ; 15.5\n1915 ; 3\n", got)
}

func TestTextTrimsTrailingZeros(t *testing.T) {
	got := string(Text([]Row{{Code: "904", Quantity: 2.50}}))
	assert.Equal(t, "904 ; 2.5\n", got)
}

func TestTextEmpty(t *testing.T) {
	assert.Empty(t, Text(nil))
}
