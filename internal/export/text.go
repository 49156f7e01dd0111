package export

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Text renders rows in the "VR MASTER" delimited format consumed by the
// store terminals: one `CODE ; QTY` line per product, dot decimal separator,
// trailing zeros trimmed, no rounding.
func Text(rows []Row) []byte {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.TrimSpace(row.Code))
		b.WriteString(" ; ")
		b.WriteString(decimal.NewFromFloat(row.Quantity).String())
		b.WriteString("\n")
	}
	return []byte(b.String())
}
