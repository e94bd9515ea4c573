package export

import (
	"fmt"
	"os"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/nmezel/stockledger/internal/billing"
	"github.com/nmezel/stockledger/internal/models"
)

func (e *Exporter) writePDF(inv models.Invoice, items []billing.ItemRow, totals billing.Totals, path string) (string, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	// Brand header; a missing logo file is simply skipped.
	headerCols := []core.Col{
		col.New(9).Add(
			text.New(e.Brand.BusinessName, props.Text{Size: 13, Style: fontstyle.Bold}),
			text.New(e.Brand.Address, props.Text{Top: 6, Size: 9}),
			text.New(fmt.Sprintf("%s  %s", e.Brand.Phone, e.Brand.Email), props.Text{Top: 11, Size: 9}),
		),
	}
	if e.Brand.LogoPath != "" {
		if _, err := os.Stat(e.Brand.LogoPath); err == nil {
			headerCols = append(headerCols, image.NewFromFileCol(3, e.Brand.LogoPath, props.Rect{Center: true, Percent: 90}))
		}
	}
	m.AddRows(row.New(18).Add(headerCols...))

	m.AddRow(10, text.NewCol(12, "INVOICE", props.Text{Size: 14, Style: fontstyle.Bold}))
	m.AddRow(5, text.NewCol(12, fmt.Sprintf("Invoice ID: %d", inv.ID), props.Text{Size: 9}))
	m.AddRow(5, text.NewCol(12, "Date: "+inv.CreatedAt.Format("2006-01-02 15:04:05"), props.Text{Size: 9}))
	m.AddRow(5, text.NewCol(12, fmt.Sprintf("Customer: %s   Phone: %s", inv.CustomerName, inv.CustomerPhone), props.Text{Size: 9}))
	m.AddRow(7, text.NewCol(12, fmt.Sprintf("Pricing: %s   Tax: %.1f%%", inv.PricingType, inv.TaxRate), props.Text{Size: 9}))

	bold := props.Text{Size: 9, Style: fontstyle.Bold}
	m.AddRows(row.New(6).Add(
		text.NewCol(4, "Product", bold),
		text.NewCol(3, "Size/Color", bold),
		text.NewCol(1, "Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Unit", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Line Total", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	))
	m.AddRows(line.NewRow(2))

	right := props.Text{Size: 9, Align: align.Right}
	for _, it := range items {
		m.AddRows(row.New(5).Add(
			text.NewCol(4, it.Product, props.Text{Size: 9}),
			text.NewCol(3, it.Size+" / "+it.Color, props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%d", it.Quantity), right),
			text.NewCol(2, fmt.Sprintf("%.2f", it.UnitPrice), right),
			text.NewCol(2, fmt.Sprintf("%.2f", it.LineTotal), right),
		))
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(row.New(5).Add(
		text.NewCol(10, "Subtotal:", right),
		text.NewCol(2, fmt.Sprintf("%.2f", totals.Subtotal), right),
	))
	m.AddRows(row.New(5).Add(
		text.NewCol(10, "Tax:", right),
		text.NewCol(2, fmt.Sprintf("%.2f", totals.Tax), right),
	))
	m.AddRows(row.New(6).Add(
		text.NewCol(10, "TOTAL:", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, fmt.Sprintf("%.2f", totals.Total), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	))

	doc, err := m.Generate()
	if err != nil {
		return "", err
	}
	if err := doc.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
