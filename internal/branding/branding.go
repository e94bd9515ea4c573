// Package branding loads the optional business identity block printed on
// exported invoices.
package branding

import (
	"encoding/json"
	"os"
)

// Brand is the identity block. LogoPath may point at a missing file; the
// exporter simply skips the logo then.
type Brand struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	LogoPath     string `json:"logo"`
}

// Default returns the hard-coded fallback brand.
func Default() Brand {
	return Brand{
		BusinessName: "My Warehouse Ltd.",
		Address:      "123 Main Street, City, Country",
		Phone:        "1 (555) 123-456",
		Email:        "sales@mywarehouse.com",
		LogoPath:     "assets/logo.png",
	}
}

// Load merges the JSON file at path over the defaults, field by field.
// A missing or malformed file yields the defaults; loading never fails an
// export.
func Load(path string) Brand {
	b := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return b
	}
	var overlay struct {
		BusinessName *string `json:"business_name"`
		Address      *string `json:"address"`
		Phone        *string `json:"phone"`
		Email        *string `json:"email"`
		LogoPath     *string `json:"logo"`
	}
	if err := json.Unmarshal(data, &overlay); err != nil {
		return b
	}
	if overlay.BusinessName != nil {
		b.BusinessName = *overlay.BusinessName
	}
	if overlay.Address != nil {
		b.Address = *overlay.Address
	}
	if overlay.Phone != nil {
		b.Phone = *overlay.Phone
	}
	if overlay.Email != nil {
		b.Email = *overlay.Email
	}
	if overlay.LogoPath != nil {
		b.LogoPath = *overlay.LogoPath
	}
	return b
}
