package models

import "time"

// Pricing modes accepted on an invoice.
const (
	PricingRetail    = "retail"
	PricingWholesale = "wholesale"
)

// Invoice is an immutable sale record. Customer fields are a denormalized
// snapshot, not a foreign key, so history survives later customer edits.
type Invoice struct {
	ID            uint `gorm:"primaryKey"`
	CustomerName  string
	CustomerPhone string
	PricingType   string  `gorm:"not null"`
	TaxRate       float64 `gorm:"not null;default:0"`
	CreatedAt     time.Time
	Items         []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// InvoiceItem freezes quantity and unit price at sale time. LineTotal is
// written once as Quantity*UnitPrice and never recomputed from the variant's
// current price.
type InvoiceItem struct {
	ID        uint    `gorm:"primaryKey"`
	InvoiceID uint    `gorm:"not null;index"`
	VariantID uint    `gorm:"not null"`
	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"`
	LineTotal float64 `gorm:"not null"`
}
