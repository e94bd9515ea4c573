package models

import "time"

// Customer types select which variant price applies on their invoices.
const (
	CustomerRetail    = "retail"
	CustomerWholesale = "wholesale"
)

// Customer is a named counterparty. Records are immutable once created in
// normal flow; invoices snapshot the fields they need instead of referencing
// the row.
type Customer struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;index"`
	Phone     string
	Address   string
	Type      string `gorm:"not null;default:'retail'"`
	CreatedAt time.Time
}
