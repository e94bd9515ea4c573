package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/nmezel/stockledger/internal/customers"
	"github.com/nmezel/stockledger/internal/models"
)

func newCustomerHandler(t *testing.T) *CustomerHandler {
	t.Helper()
	return NewCustomerHandler(customers.NewDirectory(setupHandlerDB(t)))
}

func TestCustomerAddJSONAndSearch(t *testing.T) {
	h := newCustomerHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/customers",
		strings.NewReader(`{"name":"Alice","phone":"555","type":"wholesale"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Customers(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	findReq := httptest.NewRequest(http.MethodGet, "/customers?q=ali", nil)
	findW := httptest.NewRecorder()
	h.Customers(findW, findReq)
	if findW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", findW.Code)
	}
	var resp struct {
		Items []models.Customer `json:"items"`
		Total int               `json:"total"`
	}
	if err := json.Unmarshal(findW.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || resp.Items[0].Type != models.CustomerWholesale {
		t.Fatalf("unexpected search result: %s", findW.Body.String())
	}
}

func TestCustomerAddForm(t *testing.T) {
	h := newCustomerHandler(t)

	form := url.Values{"name": {"Bob"}, "phone": {"123"}}
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Customers(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestCustomerEmptySearchGuard(t *testing.T) {
	h := newCustomerHandler(t)

	addReq := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"name":"Alice"}`))
	addReq.Header.Set("Content-Type", "application/json")
	addW := httptest.NewRecorder()
	h.Customers(addW, addReq)
	if addW.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", addW.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/customers?q=", nil)
	w := httptest.NewRecorder()
	h.Customers(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 0 {
		t.Fatalf("empty query must return nothing, got %d", resp.Total)
	}
}

func TestCustomerAddValidation(t *testing.T) {
	h := newCustomerHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"name":"  ","type":"vip"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Customers(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "validation_failed") {
		t.Fatalf("expected violations body: %s", w.Body.String())
	}
}
