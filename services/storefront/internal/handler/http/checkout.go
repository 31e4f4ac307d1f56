package http

import (
	"log/slog"
	"net/http"

	"github.com/Georgesib05/comming-soon/pkg/httputil"
	"github.com/Georgesib05/comming-soon/pkg/middleware"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/service"
)

// CheckoutHandler handles order placement.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: svc, logger: logger}
}

// PlaceOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutInput
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.service.PlaceOrder(r.Context(), middleware.SessionIDFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, result)
}
