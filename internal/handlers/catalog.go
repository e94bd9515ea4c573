package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/nmezel/stockledger/internal/catalog"
	"github.com/nmezel/stockledger/internal/httpx"
	"github.com/nmezel/stockledger/internal/validation"
)

type CatalogHandler struct {
	Catalog      *catalog.Service
	LowThreshold int
}

func NewCatalogHandler(c *catalog.Service, lowThreshold int) *CatalogHandler {
	return &CatalogHandler{Catalog: c, LowThreshold: lowThreshold}
}

// Colors: GET /colors lists names, POST /colors adds one (JSON or form).
func (h *CatalogHandler) Colors(w http.ResponseWriter, r *http.Request) {
	h.attribute(w, r, h.Catalog.ListColors, h.Catalog.AddColor)
}

// Sizes: GET /sizes lists names, POST /sizes adds one (JSON or form).
func (h *CatalogHandler) Sizes(w http.ResponseWriter, r *http.Request) {
	h.attribute(w, r, h.Catalog.ListSizes, h.Catalog.AddSize)
}

func (h *CatalogHandler) attribute(w http.ResponseWriter, r *http.Request, list func() ([]string, error), add func(string) error) {
	switch r.Method {
	case http.MethodGet:
		names, err := list()
		if err != nil {
			httpx.ServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"items": names})
	case http.MethodPost:
		name := readName(r)
		v := validation.Violations{}
		validation.Required("name", name, v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		if err := add(name); err != nil {
			httpx.ServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, map[string]string{"name": strings.TrimSpace(name)})
	default:
		w.Header().Set("Allow", "GET,POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func readName(r *http.Request) string {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var input struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err == nil {
			return input.Name
		}
		return ""
	}
	if err := r.ParseForm(); err == nil {
		return r.Form.Get("name")
	}
	return ""
}

// Products: GET /products – all products ordered by name.
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Catalog.ListProducts()
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows})
}

// DeleteProduct: POST /products/delete?id=... – cascades to variants.
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Variants: GET /variants lists with filters; POST /variants records
// incoming stock, resolving names to ids and get-or-creating the product.
func (h *CatalogHandler) Variants(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listVariants(w, r)
	case http.MethodPost:
		h.addStock(w, r)
	default:
		w.Header().Set("Allow", "GET,POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func (h *CatalogHandler) listVariants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.Filters{
		Product:      q.Get("product"),
		Rack:         q.Get("rack"),
		Size:         q.Get("size"),
		Color:        q.Get("color"),
		Status:       q.Get("status"),
		LowThreshold: h.LowThreshold,
	}
	if v := q.Get("threshold"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.LowThreshold = n
		}
	}
	rows, err := h.Catalog.ListVariants(f)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

func (h *CatalogHandler) addStock(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Product        string  `json:"product"`
		Rack           string  `json:"rack"`
		Color          string  `json:"color"`
		Size           string  `json:"size"`
		Quantity       int     `json:"quantity"`
		RetailPrice    float64 `json:"retail_price"`
		WholesalePrice float64 `json:"wholesale_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("product", input.Product, v)
	validation.Required("color", input.Color, v)
	validation.Required("size", input.Size, v)
	validation.NonNegativeInt("quantity", input.Quantity, v)
	validation.NonNegativeFloat("retail_price", input.RetailPrice, v)
	validation.NonNegativeFloat("wholesale_price", input.WholesalePrice, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	colorID, err := h.Catalog.ColorID(input.Color)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	sizeID, err := h.Catalog.SizeID(input.Size)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	productID, err := h.Catalog.GetOrCreateProduct(input.Product, input.Rack)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	variantID, err := h.Catalog.AddVariant(productID, colorID, sizeID, input.Quantity, input.RetailPrice, input.WholesalePrice)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"variant_id": variantID, "product_id": productID})
}

// SearchVariants: GET /variants/search?q=...
func (h *CatalogHandler) SearchVariants(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Catalog.SearchVariants(r.URL.Query().Get("q"))
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

// GetVariant: GET /variants/get?id=...
func (h *CatalogHandler) GetVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	row, err := h.Catalog.GetVariant(id)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, row)
}

// Restock: POST /variants/restock – either direct units or per_box*boxes.
func (h *CatalogHandler) Restock(w http.ResponseWriter, r *http.Request) {
	var input struct {
		VariantID uint `json:"variant_id"`
		Units     int  `json:"units"`
		PerBox    int  `json:"per_box"`
		Boxes     int  `json:"boxes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	var err error
	if input.PerBox > 0 || input.Boxes > 0 {
		err = h.Catalog.RestockBoxes(input.VariantID, input.PerBox, input.Boxes)
	} else {
		err = h.Catalog.Restock(input.VariantID, input.Units)
	}
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "restocked"})
}

// UpdatePrices: POST /variants/prices – overwrites both price points.
func (h *CatalogHandler) UpdatePrices(w http.ResponseWriter, r *http.Request) {
	var input struct {
		VariantID      uint    `json:"variant_id"`
		RetailPrice    float64 `json:"retail_price"`
		WholesalePrice float64 `json:"wholesale_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Catalog.UpdatePrices(input.VariantID, input.RetailPrice, input.WholesalePrice); err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteVariant: POST /variants/delete?id=...
func (h *CatalogHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Catalog.DeleteVariant(id); err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func idParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return 0, false
	}
	return uint(id), true
}
