package export

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/shopspring/decimal"
)

var headerGreen = &props.Color{Red: 53, Green: 94, Blue: 59}

// Document renders rows as a printable PDF report with a title and a
// four-column table, the document counterpart of the spreadsheet export.
func Document(rows []Row, title string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(12).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Color: headerGreen, Top: 2}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: headerGreen, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableDetailRow(r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9}
	return row.New(7).Add(
		col.New(2).Add(text.New("CODIGO", header)),
		col.New(6).Add(text.New("PRODUTO", header)),
		col.New(2).Add(text.New("QUANTIDADE", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right})),
		col.New(2).Add(text.New("UN", header)),
	)
}

func tableDetailRow(r Row) core.Row {
	cell := props.Text{Size: 9}
	return row.New(6).Add(
		col.New(2).Add(text.New(r.Code, cell)),
		col.New(6).Add(text.New(r.Name, cell)),
		col.New(2).Add(text.New(decimal.NewFromFloat(r.Quantity).String(), props.Text{Size: 9, Align: align.Right})),
		col.New(2).Add(text.New(r.Unit, cell)),
	)
}
