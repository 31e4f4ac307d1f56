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
	"github.com/Georgesib05/comming-soon/services/storefront/internal/service"
)

// catalogMaxAge is how long clients may cache catalog responses, in seconds.
const catalogMaxAge = 300

// DefaultRequestTimeout bounds every route except checkout.
const DefaultRequestTimeout = 30 * time.Second

// Services bundles the storefront services exposed over HTTP.
type Services struct {
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Checkout *service.CheckoutService
}

// RouterConfig holds router-level settings.
type RouterConfig struct {
	CORS middleware.CORSConfig
	// CheckoutLimiter throttles order submissions per client IP. Nil disables it.
	CheckoutLimiter *middleware.RateLimiter
	// RequestTimeout defaults to DefaultRequestTimeout.
	RequestTimeout time.Duration
	// CheckoutTimeout must cover both notifications spending their whole
	// retry budget. It defaults to RequestTimeout.
	CheckoutTimeout time.Duration
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(svcs Services, healthHandler *health.Handler, logger *slog.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	requestTimeout := cmp.Or(cfg.RequestTimeout, DefaultRequestTimeout)
	checkoutTimeout := cmp.Or(cfg.CheckoutTimeout, requestTimeout)

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimw.Compress(5))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		r.Get("/health/live", healthHandler.LivenessHandler())
		r.Get("/health/ready", healthHandler.ReadinessHandler())
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			promhttp.Handler().ServeHTTP(w, r)
		})
	})

	catalogHandler := NewCatalogHandler(svcs.Catalog, logger)
	cartHandler := NewCartHandler(svcs.Cart, logger)
	checkoutHandler := NewCheckoutHandler(svcs.Checkout, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(i18n.Middleware)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(requestTimeout))
			r.Use(middleware.CacheControl(catalogMaxAge))

			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{ref}", catalogHandler.GetProduct)
			r.Get("/categories", catalogHandler.Categories)
			r.Get("/sort-options", catalogHandler.SortOptions)
		})

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(middleware.Session)

			r.Route("/cart", func(r chi.Router) {
				r.Use(chimw.Timeout(requestTimeout))
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Get("/count", cartHandler.Count)

				r.Post("/lines", cartHandler.AddLine)
				r.Patch("/lines/{lineID}", cartHandler.UpdateLine)
				r.Delete("/lines/{lineID}", cartHandler.RemoveLine)

				r.Post("/discount", cartHandler.ApplyDiscount)
				r.Delete("/discount", cartHandler.RemoveDiscount)
			})

			r.Group(func(r chi.Router) {
				r.Use(chimw.Timeout(checkoutTimeout))
				if cfg.CheckoutLimiter != nil {
					r.Use(cfg.CheckoutLimiter.Middleware)
				}
				r.Post("/checkout", checkoutHandler.PlaceOrder)
			})
		})
	})

	return r
}
