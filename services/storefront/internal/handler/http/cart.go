package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Georgesib05/comming-soon/pkg/httputil"
	"github.com/Georgesib05/comming-soon/pkg/middleware"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/service"
)

// CartHandler handles HTTP requests for cart endpoints. The cart is chosen by
// the session ID the Session middleware put in the request context.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{service: svc, logger: logger}
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetCart(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}

// Count handles GET /api/v1/cart/count
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Count(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]int{"count": n})
}

// AddLine handles POST /api/v1/cart/lines
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req service.AddLineInput
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := h.service.AddLine(r.Context(), middleware.SessionIDFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, view)
}

// UpdateLine handles PATCH /api/v1/cart/lines/{lineID}
func (h *CartHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateQuantityInput
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := h.service.UpdateQuantity(r.Context(), middleware.SessionIDFromContext(r.Context()), chi.URLParam(r, "lineID"), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}

// RemoveLine handles DELETE /api/v1/cart/lines/{lineID}
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RemoveLine(r.Context(), middleware.SessionIDFromContext(r.Context()), chi.URLParam(r, "lineID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Clear(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}

// ApplyDiscount handles POST /api/v1/cart/discount
func (h *CartHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	var req service.ApplyDiscountInput
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := h.service.ApplyDiscount(r.Context(), middleware.SessionIDFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}

// RemoveDiscount handles DELETE /api/v1/cart/discount
func (h *CartHandler) RemoveDiscount(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RemoveDiscount(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}
