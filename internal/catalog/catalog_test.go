package catalog

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nmezel/stockledger/internal/db"
	"github.com/nmezel/stockledger/internal/errs"
	"github.com/nmezel/stockledger/internal/models"
)

func setupCatalog(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(d); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Seed(d); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewService(d)
}

// seedVariant creates a product + variant and returns both ids.
func seedVariant(t *testing.T, s *Service, product, rack, color, size string, qty int, retail, wholesale float64) (productID, variantID uint) {
	t.Helper()
	productID, err := s.GetOrCreateProduct(product, rack)
	if err != nil {
		t.Fatalf("product: %v", err)
	}
	colorID, err := s.ColorID(color)
	if err != nil {
		t.Fatalf("color: %v", err)
	}
	sizeID, err := s.SizeID(size)
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	variantID, err = s.AddVariant(productID, colorID, sizeID, qty, retail, wholesale)
	if err != nil {
		t.Fatalf("variant: %v", err)
	}
	return productID, variantID
}

func TestAddColorIdempotent(t *testing.T) {
	s := setupCatalog(t)
	if err := s.AddColor("  Navy  "); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.AddColor("Navy"); err != nil {
		t.Fatalf("duplicate add should be a no-op: %v", err)
	}
	names, err := s.ListColors()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	count := 0
	for _, n := range names {
		if n == "Navy" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected Navy exactly once, got %d in %v", count, names)
	}
}

func TestListSizesOrdered(t *testing.T) {
	s := setupCatalog(t)
	names, err := s.ListSizes()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("sizes not lexicographic: %v", names)
		}
	}
}

func TestGetOrCreateProductPairUniqueness(t *testing.T) {
	s := setupCatalog(t)
	id1, err := s.GetOrCreateProduct("Shirt", "R1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id2, err := s.GetOrCreateProduct(" Shirt ", "R1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("same (name, rack) must return same product: %d vs %d", id1, id2)
	}
	id3, err := s.GetOrCreateProduct("Shirt", "R2")
	if err != nil {
		t.Fatalf("other rack: %v", err)
	}
	if id3 == id1 {
		t.Fatalf("same name on another rack must be a new product")
	}
}

func TestAddVariantAccumulatesQuantityOverwritesPrices(t *testing.T) {
	s := setupCatalog(t)
	_, v1 := seedVariant(t, s, "Shirt", "R1", "Red", "Small", 4, 12.50, 9.00)
	_, v2 := seedVariant(t, s, "Shirt", "R1", "Red", "Small", 6, 15.00, 11.00)
	if v1 != v2 {
		t.Fatalf("re-adding the same triple must not create a new row: %d vs %d", v1, v2)
	}
	row, err := s.GetVariant(v1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if row.Quantity != 10 {
		t.Fatalf("expected accumulated quantity 10 got %d", row.Quantity)
	}
	if row.RetailPrice != 15.00 || row.WholesalePrice != 11.00 {
		t.Fatalf("prices must be last-write-wins, got %.2f/%.2f", row.RetailPrice, row.WholesalePrice)
	}
}

func TestRestockAndBoxes(t *testing.T) {
	s := setupCatalog(t)
	_, vid := seedVariant(t, s, "Shirt", "R1", "Blue", "Medium", 2, 10, 8)
	if err := s.Restock(vid, 3); err != nil {
		t.Fatalf("restock: %v", err)
	}
	if err := s.RestockBoxes(vid, 12, 2); err != nil {
		t.Fatalf("restock boxes: %v", err)
	}
	row, err := s.GetVariant(vid)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if row.Quantity != 2+3+24 {
		t.Fatalf("expected quantity 29 got %d", row.Quantity)
	}
	if err := s.Restock(99999, 1); !errs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdatePrices(t *testing.T) {
	s := setupCatalog(t)
	_, vid := seedVariant(t, s, "Shirt", "R1", "Green", "Large", 1, 10, 8)
	if err := s.UpdatePrices(vid, 20, 16); err != nil {
		t.Fatalf("update: %v", err)
	}
	row, err := s.GetVariant(vid)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if row.RetailPrice != 20 || row.WholesalePrice != 16 {
		t.Fatalf("prices not updated: %.2f/%.2f", row.RetailPrice, row.WholesalePrice)
	}
	if err := s.UpdatePrices(vid, -1, 16); err == nil {
		t.Fatalf("negative price must be rejected")
	}
}

func TestSearchVariantsEmptyQueryGuard(t *testing.T) {
	s := setupCatalog(t)
	seedVariant(t, s, "Shirt", "R1", "Red", "Small", 3, 10, 8)
	for _, q := range []string{"", "   ", "\t"} {
		rows, err := s.SearchVariants(q)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if len(rows) != 0 {
			t.Fatalf("blank query %q must return nothing, got %d rows", q, len(rows))
		}
	}
}

func TestSearchVariantsMatchesAcrossFields(t *testing.T) {
	s := setupCatalog(t)
	seedVariant(t, s, "Shirt", "R1", "Red", "Small", 3, 10, 8)
	seedVariant(t, s, "Pants", "R2", "Blue", "Large", 2, 20, 15)
	cases := map[string]int{
		"shirt": 1, // product name, case-insensitive
		"r2":    1, // rack
		"blu":   1, // color substring
		"larg":  1, // size substring
		"r":     2, // matches both racks
		"xyz":   0,
	}
	for q, want := range cases {
		rows, err := s.SearchVariants(q)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if len(rows) != want {
			t.Fatalf("search %q: expected %d rows got %d", q, want, len(rows))
		}
	}
}

func TestListVariantsFilters(t *testing.T) {
	s := setupCatalog(t)
	seedVariant(t, s, "Shirt", "R1", "Red", "Small", 0, 10, 8)
	seedVariant(t, s, "Shirt", "R1", "Blue", "Small", 3, 10, 8)
	seedVariant(t, s, "Pants", "R2", "Red", "Large", 40, 20, 15)

	all, err := s.ListVariants(Filters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 variants got %d", len(all))
	}

	out, err := s.ListVariants(Filters{Status: StatusOut})
	if err != nil {
		t.Fatalf("out: %v", err)
	}
	if len(out) != 1 || out[0].Quantity != 0 {
		t.Fatalf("out-of-stock filter wrong: %#v", out)
	}

	low, err := s.ListVariants(Filters{Status: StatusLow})
	if err != nil {
		t.Fatalf("low: %v", err)
	}
	if len(low) != 1 || low[0].Quantity != 3 {
		t.Fatalf("low-stock filter wrong: %#v", low)
	}

	combined, err := s.ListVariants(Filters{Product: "shi", Color: "Blue"})
	if err != nil {
		t.Fatalf("combined: %v", err)
	}
	if len(combined) != 1 || combined[0].Color != "Blue" {
		t.Fatalf("AND-combined filters wrong: %#v", combined)
	}

	if _, err := s.ListVariants(Filters{Status: "bogus"}); err == nil {
		t.Fatalf("unknown status must be rejected")
	}
}

func TestDeleteProductCascades(t *testing.T) {
	s := setupCatalog(t)
	pid, vid := seedVariant(t, s, "Shirt", "R1", "Red", "Small", 3, 10, 8)
	seedVariant(t, s, "Shirt", "R1", "Blue", "Small", 2, 10, 8)
	if err := s.DeleteProduct(pid); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetVariant(vid); !errs.IsNotFound(err) {
		t.Fatalf("variant should be gone, got %v", err)
	}
	var count int64
	s.db.Model(&models.Variant{}).Where("product_id = ?", pid).Count(&count)
	if count != 0 {
		t.Fatalf("expected no variants left, got %d", count)
	}
}

func TestDeleteVariant(t *testing.T) {
	s := setupCatalog(t)
	_, vid := seedVariant(t, s, "Shirt", "R1", "Red", "Small", 3, 10, 8)
	if err := s.DeleteVariant(vid); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteVariant(vid); !errs.IsNotFound(err) {
		t.Fatalf("second delete should be not found, got %v", err)
	}
}
