// Package catalog owns products, color/size attributes, variants and stock.
package catalog

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nmezel/stockledger/internal/errs"
	"github.com/nmezel/stockledger/internal/models"
)

// DefaultLowStockThreshold bounds the "low" stock status when no threshold
// is supplied.
const DefaultLowStockThreshold = 5

// Stock status filter values for ListVariants.
const (
	StatusLow = "low"
	StatusOut = "out"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// AddColor inserts a color attribute; duplicates are a silent no-op.
func (s *Service) AddColor(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.Invalid("name", "required")
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Color{Name: name}).Error
}

// AddSize inserts a size attribute; duplicates are a silent no-op.
func (s *Service) AddSize(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.Invalid("name", "required")
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Size{Name: name}).Error
}

func (s *Service) ListColors() ([]string, error) {
	var names []string
	err := s.db.Model(&models.Color{}).Order("name").Pluck("name", &names).Error
	return names, err
}

func (s *Service) ListSizes() ([]string, error) {
	var names []string
	err := s.db.Model(&models.Size{}).Order("name").Pluck("name", &names).Error
	return names, err
}

// ColorID resolves a color name to its id.
func (s *Service) ColorID(name string) (uint, error) {
	var c models.Color
	if err := s.db.Where("name = ?", strings.TrimSpace(name)).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.Invalid("color", "unknown")
		}
		return 0, err
	}
	return c.ID, nil
}

// SizeID resolves a size name to its id.
func (s *Service) SizeID(name string) (uint, error) {
	var sz models.Size
	if err := s.db.Where("name = ?", strings.TrimSpace(name)).First(&sz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.Invalid("size", "unknown")
		}
		return 0, err
	}
	return sz.ID, nil
}

// GetOrCreateProduct returns the id of the product matching (name, rack)
// exactly, creating it when absent.
func (s *Service) GetOrCreateProduct(name, rack string) (uint, error) {
	name = strings.TrimSpace(name)
	rack = strings.TrimSpace(rack)
	if name == "" {
		return 0, errs.Invalid("name", "required")
	}
	var p models.Product
	err := s.db.Where("name = ? AND rack_number = ?", name, rack).First(&p).Error
	if err == nil {
		return p.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	p = models.Product{Name: name, RackNumber: rack}
	if err := s.db.Create(&p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

// ProductRow is one row of the product listing.
type ProductRow struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	RackNumber string `json:"rack_number"`
}

func (s *Service) ListProducts() ([]ProductRow, error) {
	var rows []ProductRow
	err := s.db.Model(&models.Product{}).
		Select("id, name, rack_number").
		Order("name").
		Scan(&rows).Error
	return rows, err
}

// AddVariant records incoming stock for a (product, color, size) triple.
// If the triple already exists the supplied quantity is ADDED to the stored
// one while both prices are overwritten; restocking accumulates, prices are
// last-write-wins. Returns the variant id either way.
func (s *Service) AddVariant(productID, colorID, sizeID uint, qty int, retail, wholesale float64) (uint, error) {
	if qty < 0 {
		return 0, errs.Invalid("quantity", "must_be_non_negative")
	}
	if retail < 0 || wholesale < 0 {
		return 0, errs.Invalid("price", "must_be_non_negative")
	}
	var id uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var v models.Variant
		err := tx.Where("product_id = ? AND color_id = ? AND size_id = ?", productID, colorID, sizeID).
			First(&v).Error
		if err == nil {
			id = v.ID
			return tx.Model(&models.Variant{}).Where("id = ?", v.ID).
				Updates(map[string]interface{}{
					"quantity":        gorm.Expr("quantity + ?", qty),
					"retail_price":    retail,
					"wholesale_price": wholesale,
				}).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		v = models.Variant{
			ProductID:      productID,
			ColorID:        colorID,
			SizeID:         sizeID,
			Quantity:       qty,
			RetailPrice:    retail,
			WholesalePrice: wholesale,
		}
		if err := tx.Create(&v).Error; err != nil {
			return err
		}
		id = v.ID
		return nil
	})
	return id, err
}

// Restock unconditionally increases a variant's quantity.
func (s *Service) Restock(variantID uint, units int) error {
	if units <= 0 {
		return errs.Invalid("units", "must_be_positive")
	}
	res := s.db.Model(&models.Variant{}).Where("id = ?", variantID).
		Update("quantity", gorm.Expr("quantity + ?", units))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("variant", variantID)
	}
	return nil
}

// RestockBoxes is the bulk entry path: units = perBox * boxes.
func (s *Service) RestockBoxes(variantID uint, perBox, boxes int) error {
	if perBox <= 0 || boxes <= 0 {
		return errs.Invalid("boxes", "must_be_positive")
	}
	return s.Restock(variantID, perBox*boxes)
}

// UpdatePrices overwrites both price points of a variant.
func (s *Service) UpdatePrices(variantID uint, retail, wholesale float64) error {
	if retail < 0 || wholesale < 0 {
		return errs.Invalid("price", "must_be_non_negative")
	}
	res := s.db.Model(&models.Variant{}).Where("id = ?", variantID).
		Updates(map[string]interface{}{"retail_price": retail, "wholesale_price": wholesale})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("variant", variantID)
	}
	return nil
}

func (s *Service) DeleteVariant(variantID uint) error {
	res := s.db.Delete(&models.Variant{}, variantID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("variant", variantID)
	}
	return nil
}

// DeleteProduct removes a product and all of its variants. The cascade is
// done explicitly so it holds regardless of the sqlite foreign-key pragma.
func (s *Service) DeleteProduct(productID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.Variant{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, productID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("product", productID)
		}
		return nil
	})
}

// VariantRow is one variant joined with its display labels.
type VariantRow struct {
	VariantID      uint    `json:"variant_id"`
	Product        string  `json:"product"`
	Rack           string  `json:"rack"`
	Size           string  `json:"size"`
	Color          string  `json:"color"`
	Quantity       int     `json:"quantity"`
	RetailPrice    float64 `json:"retail_price"`
	WholesalePrice float64 `json:"wholesale_price"`
}

const variantSelect = `v.id as variant_id, p.name as product, p.rack_number as rack,
s.name as size, c.name as color, v.quantity, v.retail_price, v.wholesale_price`

func (s *Service) variantQuery() *gorm.DB {
	return s.db.Table("product_variants v").
		Select(variantSelect).
		Joins("JOIN products p ON p.id = v.product_id").
		Joins("JOIN sizes s ON s.id = v.size_id").
		Joins("JOIN colors c ON c.id = v.color_id")
}

// SearchVariants matches q as a case-insensitive substring across product
// name, rack, color name and size name. An empty or whitespace-only query
// returns no results, never the full table.
func (s *Service) SearchVariants(q string) ([]VariantRow, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	like := "%" + strings.ToLower(q) + "%"
	var rows []VariantRow
	err := s.variantQuery().
		Where("lower(p.name) LIKE ? OR lower(p.rack_number) LIKE ? OR lower(s.name) LIKE ? OR lower(c.name) LIKE ?",
			like, like, like, like).
		Order("p.name, s.name, c.name").
		Scan(&rows).Error
	return rows, err
}

// Filters narrow the variant listing. All set fields are AND-combined.
type Filters struct {
	Product      string // substring on product name
	Rack         string // substring on rack
	Size         string // exact size name
	Color        string // exact color name
	Status       string // "", StatusLow or StatusOut
	LowThreshold int    // upper bound for StatusLow; 0 means DefaultLowStockThreshold
}

func (s *Service) ListVariants(f Filters) ([]VariantRow, error) {
	q := s.variantQuery()
	if p := strings.TrimSpace(f.Product); p != "" {
		q = q.Where("lower(p.name) LIKE ?", "%"+strings.ToLower(p)+"%")
	}
	if r := strings.TrimSpace(f.Rack); r != "" {
		q = q.Where("lower(p.rack_number) LIKE ?", "%"+strings.ToLower(r)+"%")
	}
	if f.Size != "" {
		q = q.Where("s.name = ?", f.Size)
	}
	if f.Color != "" {
		q = q.Where("c.name = ?", f.Color)
	}
	switch f.Status {
	case StatusLow:
		threshold := f.LowThreshold
		if threshold <= 0 {
			threshold = DefaultLowStockThreshold
		}
		q = q.Where("v.quantity BETWEEN 1 AND ?", threshold)
	case StatusOut:
		q = q.Where("v.quantity = 0")
	case "":
	default:
		return nil, errs.Invalid("status", "must_be_low_or_out")
	}
	var rows []VariantRow
	err := q.Order("p.name, p.rack_number, s.name, c.name").Scan(&rows).Error
	return rows, err
}

// GetVariant returns one variant with resolved labels.
func (s *Service) GetVariant(variantID uint) (VariantRow, error) {
	var row VariantRow
	err := s.variantQuery().Where("v.id = ?", variantID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return VariantRow{}, errs.NotFound("variant", variantID)
	}
	return row, err
}
