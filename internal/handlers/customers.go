package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nmezel/stockledger/internal/customers"
	"github.com/nmezel/stockledger/internal/httpx"
	"github.com/nmezel/stockledger/internal/models"
	"github.com/nmezel/stockledger/internal/validation"
)

type CustomerHandler struct {
	Directory *customers.Directory
}

func NewCustomerHandler(d *customers.Directory) *CustomerHandler {
	return &CustomerHandler{Directory: d}
}

// Customers: GET /customers?q=... searches, POST /customers adds.
func (h *CustomerHandler) Customers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.find(w, r)
	case http.MethodPost:
		h.add(w, r)
	default:
		w.Header().Set("Allow", "GET,POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func (h *CustomerHandler) find(w http.ResponseWriter, r *http.Request) {
	found, err := h.Directory.Find(r.URL.Query().Get("q"))
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": found, "total": len(found)})
}

func (h *CustomerHandler) add(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		Type    string `json:"type"`
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
	} else {
		if err := r.ParseForm(); err == nil {
			input.Name = r.Form.Get("name")
			input.Phone = r.Form.Get("phone")
			input.Address = r.Form.Get("address")
			input.Type = r.Form.Get("type")
		}
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.OneOf("type", input.Type, []string{models.CustomerRetail, models.CustomerWholesale}, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	id, err := h.Directory.Add(models.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
		Type:    input.Type,
	})
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": id})
}
