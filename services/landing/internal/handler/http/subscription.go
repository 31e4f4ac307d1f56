package http

import (
	"log/slog"
	"net/http"

	"github.com/Georgesib05/comming-soon/pkg/httputil"
	"github.com/Georgesib05/comming-soon/services/landing/internal/service"
)

// SubscriptionHandler handles the coming-soon signup form.
type SubscriptionHandler struct {
	service *service.SubscriptionService
	logger  *slog.Logger
}

// NewSubscriptionHandler creates a new subscription HTTP handler.
func NewSubscriptionHandler(svc *service.SubscriptionService, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{service: svc, logger: logger}
}

// Subscribe handles POST /api/v1/subscriptions
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req service.SubscribeInput
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.service.Subscribe(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, result)
}
