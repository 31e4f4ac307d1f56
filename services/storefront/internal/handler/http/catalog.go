package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Georgesib05/comming-soon/pkg/httputil"
	"github.com/Georgesib05/comming-soon/pkg/pagination"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/service"
)

// CatalogHandler handles HTTP requests for catalog endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{service: svc, logger: logger}
}

// ListProducts handles GET /api/v1/products
//
// Query: category, q, sort (repeatable or comma separated, replayed as
// toggles), page, per_page.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.service.ListProducts(r.Context(), service.ListProductsInput{
		Category: q.Get("category"),
		Search:   q.Get("q"),
		Sort:     q["sort"],
		Page:     pagination.FromRequest(r),
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, list)
}

// GetProduct handles GET /api/v1/products/{ref}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, product)
}

// Categories handles GET /api/v1/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Categories(r.Context()))
}

// SortOptions handles GET /api/v1/sort-options
func (h *CatalogHandler) SortOptions(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.SortOptions(r.Context()))
}
