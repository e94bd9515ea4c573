package models

// Catalog reference data. Colors and sizes are seeded at first init and never
// deleted in normal operation.
type Color struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null;unique"`
}

type Size struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null;unique"`
}

// Product is a named article with a free-text rack location. Uniqueness is
// enforced at the (name, rack) pair by the get-or-create entry path, not by
// the schema.
type Product struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"not null;index"`
	RackNumber string
}

// Variant is the sellable unit: one color+size combination of a product,
// carrying its own stock quantity and two price points.
type Variant struct {
	ID             uint    `gorm:"primaryKey"`
	ProductID      uint    `gorm:"not null;index:idx_variant_triple,unique,priority:1"`
	ColorID        uint    `gorm:"not null;index:idx_variant_triple,unique,priority:2"`
	SizeID         uint    `gorm:"not null;index:idx_variant_triple,unique,priority:3"`
	Quantity       int     `gorm:"not null;default:0"`
	RetailPrice    float64 `gorm:"not null;default:0"`
	WholesalePrice float64 `gorm:"not null;default:0"`
	Product        Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Color          Color   `gorm:"foreignKey:ColorID"`
	Size           Size    `gorm:"foreignKey:SizeID"`
}

func (Variant) TableName() string { return "product_variants" }
