package export

import (
	"html/template"
	"os"
	"strconv"

	"github.com/nmezel/stockledger/internal/billing"
	"github.com/nmezel/stockledger/internal/branding"
	"github.com/nmezel/stockledger/internal/models"
)

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

var invoiceTpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": formatMoney,
}).Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>Invoice {{.Invoice.ID}}</title>
<style>body{font-family:Arial,sans-serif} table{width:100%;border-collapse:collapse} th,td{border:1px solid #ddd;padding:8px} th{background:#f5f5f5}</style></head>
<body>
<p><b>{{.Brand.BusinessName}}</b><br>{{.Brand.Address}}<br>{{.Brand.Phone}} &nbsp; {{.Brand.Email}}</p>
<h2>INVOICE</h2>
<p><b>Invoice ID:</b> {{.Invoice.ID}}<br>
<b>Date:</b> {{.Invoice.CreatedAt.Format "2006-01-02 15:04:05"}}<br>
<b>Customer:</b> {{.Invoice.CustomerName}} &nbsp; <b>Phone:</b> {{.Invoice.CustomerPhone}}<br>
<b>Pricing:</b> {{.Invoice.PricingType}} &nbsp; <b>Tax:</b> {{.Invoice.TaxRate}}%</p>
<table>
<thead><tr><th>Product</th><th>Size/Color</th><th>Qty</th><th>Unit</th><th>Line Total</th></tr></thead>
<tbody>
{{range .Items}}<tr><td>{{.Product}}</td><td>{{.Size}} / {{.Color}}</td><td style="text-align:right">{{.Quantity}}</td><td style="text-align:right">{{money .UnitPrice}}</td><td style="text-align:right">{{money .LineTotal}}</td></tr>
{{end}}</tbody>
</table>
<h3 style="text-align:right">Subtotal: {{money .Totals.Subtotal}}<br>Tax: {{money .Totals.Tax}}<br>Total: {{money .Totals.Total}}</h3>
</body></html>`))

func (e *Exporter) writeHTML(inv models.Invoice, items []billing.ItemRow, totals billing.Totals, path string) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	data := struct {
		Brand   branding.Brand
		Invoice models.Invoice
		Items   []billing.ItemRow
		Totals  billing.Totals
	}{e.Brand, inv, items, totals}
	if err := invoiceTpl.Execute(f, data); err != nil {
		return "", err
	}
	return path, nil
}
