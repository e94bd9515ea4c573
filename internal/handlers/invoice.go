package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nmezel/stockledger/internal/billing"
	"github.com/nmezel/stockledger/internal/export"
	"github.com/nmezel/stockledger/internal/httpx"
	"github.com/nmezel/stockledger/internal/validation"
)

type InvoiceHandler struct {
	Billing  *billing.Service
	Exporter *export.Exporter
}

func NewInvoiceHandler(b *billing.Service, e *export.Exporter) *InvoiceHandler {
	return &InvoiceHandler{Billing: b, Exporter: e}
}

// Invoices: GET /invoices lists headers, POST /invoices commits a sale.
func (h *InvoiceHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET,POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func (h *InvoiceHandler) list(w http.ResponseWriter, r *http.Request) {
	invs, err := h.Billing.ListInvoices()
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invs, "total": len(invs)})
}

func (h *InvoiceHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName  string                `json:"customer_name"`
		CustomerPhone string                `json:"customer_phone"`
		PricingType   string                `json:"pricing_type"`
		TaxRate       float64               `json:"tax_rate"`
		Items         []billing.LineRequest `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("customer_name", req.CustomerName, v)
	validation.Required("pricing_type", req.PricingType, v)
	validation.NonNegativeFloat("tax_rate", req.TaxRate, v)
	if len(req.Items) == 0 {
		v["items"] = "required"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	id, err := h.Billing.CreateInvoice(req.CustomerName, req.CustomerPhone, req.PricingType, req.TaxRate, req.Items)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	inv, items, err := h.Billing.GetInvoice(id)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	totals := billing.ComputeTotals(items, inv.TaxRate)
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": id, "totals": totals})
}

// Get: GET /invoices/get?id=... – header, resolved items and totals.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	inv, items, err := h.Billing.GetInvoice(id)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	totals := billing.ComputeTotals(items, inv.TaxRate)
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": inv, "items": items, "totals": totals})
}

// Export: POST /invoices/export?id=... – writes the document and returns
// its path.
func (h *InvoiceHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	inv, items, err := h.Billing.GetInvoice(id)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	path, err := h.Exporter.ExportInvoice(inv, items)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"path": path})
}
