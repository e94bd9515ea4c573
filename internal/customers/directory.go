// Package customers holds the customer directory.
package customers

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nmezel/stockledger/internal/errs"
	"github.com/nmezel/stockledger/internal/models"
)

type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory { return &Directory{db: db} }

// Add inserts a customer. Name is required and trimmed; phone and address
// default to empty, type defaults to retail. CreatedAt is server-assigned.
func (d *Directory) Add(c models.Customer) (uint, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return 0, errs.Invalid("name", "required")
	}
	if c.Type == "" {
		c.Type = models.CustomerRetail
	}
	if c.Type != models.CustomerRetail && c.Type != models.CustomerWholesale {
		return 0, errs.Invalid("type", "must_be_retail_or_wholesale")
	}
	c.ID = 0
	c.CreatedAt = time.Now()
	if err := d.db.Create(&c).Error; err != nil {
		return 0, err
	}
	return c.ID, nil
}

// Find looks customers up by exact numeric id or case-insensitive name
// substring. An empty query returns no results; this guards an interactive
// search box against accidental full-table dumps.
func (d *Directory) Find(q string) ([]models.Customer, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	var out []models.Customer
	if isDigits(q) {
		err := d.db.Where("id = ?", q).Limit(1).Find(&out).Error
		return out, err
	}
	like := "%" + strings.ToLower(q) + "%"
	err := d.db.Where("lower(name) LIKE ?", like).Order("name").Find(&out).Error
	return out, err
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
