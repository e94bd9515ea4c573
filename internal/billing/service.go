// Package billing owns the invoice ledger and the invoice-creation
// transaction.
package billing

import (
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nmezel/stockledger/internal/errs"
	"github.com/nmezel/stockledger/internal/models"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// LineRequest is one requested (variant, quantity) pair.
type LineRequest struct {
	VariantID uint `json:"variant_id"`
	Quantity  int  `json:"quantity"`
}

// CreateInvoice validates, prices and commits a whole invoice as one unit,
// decrementing variant stock in the same transaction. Either every line item
// lands together with the header and every stock decrement, or nothing is
// persisted.
func (s *Service) CreateInvoice(customerName, customerPhone, pricingType string, taxRate float64, items []LineRequest) (uint, error) {
	customerName = strings.TrimSpace(customerName)
	customerPhone = strings.TrimSpace(customerPhone)
	if pricingType != models.PricingRetail && pricingType != models.PricingWholesale {
		return 0, errs.Invalid("pricing_type", "must_be_retail_or_wholesale")
	}
	if taxRate < 0 {
		return 0, errs.Invalid("tax_rate", "must_be_non_negative")
	}
	if len(items) == 0 {
		return 0, errs.Invalid("items", "required")
	}
	for _, it := range items {
		if it.VariantID == 0 || it.Quantity <= 0 {
			return 0, errs.Invalid("items", "invalid_variant_or_quantity")
		}
	}

	var invoiceID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		inv := models.Invoice{
			CustomerName:  customerName,
			CustomerPhone: customerPhone,
			PricingType:   pricingType,
			TaxRate:       taxRate,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		for _, it := range items {
			var v models.Variant
			if err := tx.First(&v, it.VariantID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errs.NotFound("variant", it.VariantID)
				}
				return err
			}
			unit := v.RetailPrice
			if pricingType == models.PricingWholesale {
				unit = v.WholesalePrice
			}
			// Checked against live stock inside the transaction, not a
			// pre-transaction snapshot.
			if it.Quantity > v.Quantity {
				return &errs.InsufficientStockError{
					VariantID: v.ID,
					Requested: it.Quantity,
					Available: v.Quantity,
				}
			}
			item := models.InvoiceItem{
				InvoiceID: inv.ID,
				VariantID: v.ID,
				Quantity:  it.Quantity,
				UnitPrice: unit,
				LineTotal: unit * float64(it.Quantity),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Variant{}).Where("id = ?", v.ID).
				Update("quantity", gorm.Expr("quantity - ?", it.Quantity)).Error; err != nil {
				return err
			}
		}
		invoiceID = inv.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return invoiceID, nil
}

// ItemRow is one committed line item joined with the variant's current
// display labels. Only price and quantity are frozen; labels reflect the
// catalog as it is now.
type ItemRow struct {
	ItemID    uint    `json:"item_id"`
	VariantID uint    `json:"variant_id"`
	Product   string  `json:"product"`
	Rack      string  `json:"rack"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// GetInvoice returns a committed invoice header with its line items resolved
// for display.
func (s *Service) GetInvoice(invoiceID uint) (models.Invoice, []ItemRow, error) {
	var inv models.Invoice
	if err := s.db.First(&inv, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Invoice{}, nil, errs.NotFound("invoice", invoiceID)
		}
		return models.Invoice{}, nil, err
	}
	var items []ItemRow
	err := s.db.Table("invoice_items ii").
		Select(`ii.id as item_id, ii.variant_id, p.name as product, p.rack_number as rack,
s.name as size, c.name as color, ii.quantity, ii.unit_price, ii.line_total`).
		Joins("JOIN product_variants v ON v.id = ii.variant_id").
		Joins("JOIN products p ON p.id = v.product_id").
		Joins("JOIN sizes s ON s.id = v.size_id").
		Joins("JOIN colors c ON c.id = v.color_id").
		Where("ii.invoice_id = ?", invoiceID).
		Order("ii.id").
		Scan(&items).Error
	if err != nil {
		return models.Invoice{}, nil, err
	}
	return inv, items, nil
}

// ListInvoices returns invoice headers, newest first.
func (s *Service) ListInvoices() ([]models.Invoice, error) {
	var invs []models.Invoice
	err := s.db.Order("id desc").Find(&invs).Error
	return invs, err
}

// Totals is the derived money summary of an invoice.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives subtotal, tax and grand total from committed line
// items. The exporter and the handlers both go through here so the numbers
// on the document always match the ledger.
func ComputeTotals(items []ItemRow, taxRate float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.LineTotal
	}
	tax := round2(subtotal * taxRate / 100)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
