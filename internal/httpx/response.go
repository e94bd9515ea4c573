package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nmezel/stockledger/internal/errs"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// ServiceError maps the core error taxonomy to an HTTP response.
// Validation errors carry their violations map, insufficient-stock responses
// identify the offending variant, and unknown errors stay opaque 500s.
func ServiceError(w http.ResponseWriter, err error) {
	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		JSONError(w, http.StatusBadRequest, "validation_failed", ve.Violations)
		return
	}
	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		JSONError(w, http.StatusNotFound, "not_found", map[string]any{"entity": nf.Entity, "id": nf.ID})
		return
	}
	var is *errs.InsufficientStockError
	if errors.As(err, &is) {
		JSONError(w, http.StatusConflict, "insufficient_stock", map[string]any{
			"variant_id": is.VariantID,
			"requested":  is.Requested,
			"available":  is.Available,
		})
		return
	}
	JSONError(w, http.StatusInternalServerError, "storage_error", nil)
}
