package server

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/nmezel/stockledger/internal/billing"
	"github.com/nmezel/stockledger/internal/catalog"
	"github.com/nmezel/stockledger/internal/config"
	"github.com/nmezel/stockledger/internal/customers"
	"github.com/nmezel/stockledger/internal/export"
	"github.com/nmezel/stockledger/internal/handlers"
	"github.com/nmezel/stockledger/internal/httpx"
)

// New constructs the root http.Handler with all routes applied.
func New(db *gorm.DB, cfg config.Config, exporter *export.Exporter) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Catalog endpoints
	ch := handlers.NewCatalogHandler(catalog.NewService(db), cfg.LowStockThreshold)
	mux.HandleFunc("/colors", ch.Colors)
	mux.HandleFunc("/sizes", ch.Sizes)
	mux.Handle("/products", get(ch.Products))
	mux.Handle("/products/delete", post(ch.DeleteProduct))
	mux.HandleFunc("/variants", ch.Variants)
	mux.Handle("/variants/search", get(ch.SearchVariants))
	mux.Handle("/variants/get", get(ch.GetVariant))
	mux.Handle("/variants/restock", post(ch.Restock))
	mux.Handle("/variants/prices", post(ch.UpdatePrices))
	mux.Handle("/variants/delete", post(ch.DeleteVariant))

	// Customer endpoints
	cu := handlers.NewCustomerHandler(customers.NewDirectory(db))
	mux.HandleFunc("/customers", cu.Customers)

	// Invoice endpoints
	ih := handlers.NewInvoiceHandler(billing.NewService(db), exporter)
	mux.HandleFunc("/invoices", ih.Invoices)
	mux.Handle("/invoices/get", get(ih.Get))
	mux.Handle("/invoices/export", post(ih.Export))

	return mux
}

func get(h http.HandlerFunc) http.Handler { return methodOnly(http.MethodGet, h) }

func post(h http.HandlerFunc) http.Handler { return methodOnly(http.MethodPost, h) }

func methodOnly(method string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	})
}
