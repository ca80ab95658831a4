package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/finaestampa/storefront/internal/adapter/storage"
	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/internal/core/port"
)

type CatalogHandler struct {
	browser port.CatalogBrowser
}

func RegisterCatalog(mux *http.ServeMux, browser port.CatalogBrowser) {
	h := CatalogHandler{browser}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	q := r.URL.Query()
	ps, err := h.browser.Browse(r.Context(), q.Get("q"), filterSpecFromQuery(q))
	if err != nil {
		http.Error(w, "failed to list products", http.StatusServiceUnavailable)
		log.Error("failed to list products", "err", err)
		return
	}

	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, productFromDomain(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// AdminCatalogHandler is the back office surface: product upserts and
// removals, no browsing.
type AdminCatalogHandler struct {
	editor port.CatalogEditor
}

func RegisterAdminCatalog(mux *http.ServeMux, editor port.CatalogEditor) {
	h := AdminCatalogHandler{editor}
	mux.HandleFunc("POST /v1/admin/products", h.PostProducts)
	mux.HandleFunc("DELETE /v1/admin/products/{productID}", h.DeleteProduct)
}

func (h AdminCatalogHandler) PostProducts(w http.ResponseWriter, r *http.Request) {
	const op = "AdminCatalogHandler.PostProducts"
	log := slog.With("op", op)

	var ps []Product
	if err := json.NewDecoder(r.Body).Decode(&ps); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	domainPs := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if p.ProductID == "" {
			http.Error(w, "product_id is required", http.StatusBadRequest)
			return
		}
		domainPs = append(domainPs, productToDomain(p))
	}

	if err := h.editor.SaveProducts(r.Context(), domainPs); err != nil {
		http.Error(
			w, "failed to accept products", http.StatusServiceUnavailable,
		)
		log.Error("failed to save products", "err", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	if _, err := w.Write([]byte("Accepted")); err != nil {
		log.Error("failed to write response body", "err", err)
		return
	}

	log.Info("accepted", "nProducts", len(ps))
}

func (h AdminCatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminCatalogHandler.DeleteProduct"
	log := slog.With("op", op)

	productID := r.PathValue("productID")
	if err := h.editor.RemoveProduct(r.Context(), productID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to remove product", http.StatusServiceUnavailable)
		log.Error("failed to remove product", "productID", productID, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
