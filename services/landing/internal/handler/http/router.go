package http

import (
	"cmp"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Georgesib05/comming-soon/pkg/health"
	"github.com/Georgesib05/comming-soon/pkg/i18n"
	"github.com/Georgesib05/comming-soon/pkg/middleware"
	"github.com/Georgesib05/comming-soon/services/landing/internal/service"
)

// RouterConfig holds router-level settings.
type RouterConfig struct {
	CORS middleware.CORSConfig
	// Limiter throttles signups per client IP. Nil disables it.
	Limiter *middleware.RateLimiter
	// RequestTimeout must cover the notification retry budget. It defaults
	// to DefaultRequestTimeout.
	RequestTimeout time.Duration
}

// DefaultRequestTimeout bounds a request when RouterConfig leaves it unset.
const DefaultRequestTimeout = 30 * time.Second

// NewRouter creates a chi router with the landing routes registered.
func NewRouter(svc *service.SubscriptionService, healthHandler *health.Handler, logger *slog.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimw.Timeout(cmp.Or(cfg.RequestTimeout, DefaultRequestTimeout)))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("landing"))
	r.Use(middleware.Tracing("landing"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	subscriptionHandler := NewSubscriptionHandler(svc, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(i18n.Middleware)
		r.Use(ContentTypeJSON)
		if cfg.Limiter != nil {
			r.Use(cfg.Limiter.Middleware)
		}

		r.Post("/subscriptions", subscriptionHandler.Subscribe)
	})

	return r
}
