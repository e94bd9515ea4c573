// Package export renders committed invoices to printable documents. It
// consumes the read-only projection produced by the billing package and
// never writes back to the ledger.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nmezel/stockledger/internal/billing"
	"github.com/nmezel/stockledger/internal/branding"
	"github.com/nmezel/stockledger/internal/models"
)

type Exporter struct {
	Brand  branding.Brand
	OutDir string
}

func NewExporter(brand branding.Brand, outDir string) *Exporter {
	return &Exporter{Brand: brand, OutDir: outDir}
}

// ExportInvoice writes a paginated PDF for the invoice and returns its path.
// When PDF generation fails it falls back to a self-contained HTML document
// instead of failing the export.
func (e *Exporter) ExportInvoice(inv models.Invoice, items []billing.ItemRow) (string, error) {
	if err := os.MkdirAll(e.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	totals := billing.ComputeTotals(items, inv.TaxRate)
	base := filepath.Join(e.OutDir, fmt.Sprintf("invoice_%d", inv.ID))
	if path, err := e.writePDF(inv, items, totals, base+".pdf"); err == nil {
		return path, nil
	}
	return e.writeHTML(inv, items, totals, base+".html")
}
