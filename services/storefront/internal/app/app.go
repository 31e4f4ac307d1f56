package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Georgesib05/comming-soon/pkg/database"
	"github.com/Georgesib05/comming-soon/pkg/health"
	"github.com/Georgesib05/comming-soon/pkg/httpclient"
	pkgkafka "github.com/Georgesib05/comming-soon/pkg/kafka"
	"github.com/Georgesib05/comming-soon/pkg/middleware"
	"github.com/Georgesib05/comming-soon/pkg/notify"
	"github.com/Georgesib05/comming-soon/pkg/tracing"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/catalog"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/config"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/event"
	handler "github.com/Georgesib05/comming-soon/services/storefront/internal/handler/http"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/pricing"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/receipt"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/repository"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/repository/memory"
	redisrepo "github.com/Georgesib05/comming-soon/services/storefront/internal/repository/redis"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/service"
)

const serviceName = "storefront-service"

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	publisher      pkgkafka.Publisher
	limiter        *middleware.RateLimiter
	tracerShutdown func(context.Context) error
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}
	healthHandler := health.NewHandler(serviceName)

	// Initialize tracing.
	shutdown, err := tracing.InitTracer(ctx, cfg.Tracing(serviceName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = shutdown

	// Load the product catalog.
	products, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		slog.Int("products", products.Len()),
		slog.String("path", cfg.CatalogPath),
	)

	// Cart store.
	repo, err := a.cartRepository(ctx, healthHandler)
	if err != nil {
		return nil, err
	}

	// Event publisher.
	if cfg.KafkaEnabled {
		producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		healthHandler.Register("kafka", producer.Ping)
		a.publisher = producer
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		a.publisher = pkgkafka.NopPublisher{Logger: logger}
		logger.Info("kafka disabled, domain events are dropped")
	}

	// Notification dispatch.
	dispatcher := notify.NewDispatcher(a.sender(), logger)
	targets := service.Targets{
		Store:        cfg.StoreTarget(),
		Confirmation: cfg.ConfirmationTarget(),
	}

	// Build the dependency graph.
	eventProducer := event.NewProducer(a.publisher, logger)
	composer := receipt.NewComposer(cfg.StoreName, cfg.PhoneCountryCode)
	svcs := handler.Services{
		Catalog:  service.NewCatalogService(products),
		Cart:     service.NewCartService(repo, products, pricing.DefaultCodes(), eventProducer, logger, cfg.ShopMaxQuantity),
		Checkout: service.NewCheckoutService(repo, composer, dispatcher, targets, eventProducer, logger),
	}

	a.limiter = middleware.NewRateLimiter(cfg.CheckoutRateRPS, cfg.CheckoutRateBurst, logger)

	// HTTP router.
	router := handler.NewRouter(svcs, healthHandler, logger, handler.RouterConfig{
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Environment:    cfg.Environment,
		},
		CheckoutLimiter: a.limiter,
		CheckoutTimeout: cfg.CheckoutTimeout(),
	})

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}
	return a, nil
}

func (a *App) cartRepository(ctx context.Context, healthHandler *health.Handler) (repository.CartRepository, error) {
	ttl := a.cfg.CartTTLDuration()
	if a.cfg.CartStore != config.CartStoreRedis {
		a.logger.Info("using in-memory cart store", slog.Duration("ttl", ttl))
		return memory.NewCartRepository(ttl), nil
	}

	rc, err := a.cfg.Redis()
	if err != nil {
		return nil, err
	}
	rdb, err := database.NewRedisClient(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.rdb = rdb
	healthHandler.Register("redis", database.RedisChecker(rdb))
	a.logger.Info("connected to Redis",
		slog.String("addr", rc.Addr()),
		slog.Int("db", rc.DB),
	)
	return redisrepo.NewCartRepository(rdb, ttl), nil
}

func (a *App) sender() notify.Sender {
	if a.cfg.NotifySender != config.SenderEmailJS {
		a.logger.Info("notifications are logged, not sent")
		return notify.NewLogSender(a.logger)
	}

	// The dispatcher owns retries, so the transport must not retry on its own.
	clientCfg := httpclient.DefaultConfig()
	clientCfg.Timeout = a.cfg.NotifyRequestTimeout()
	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(clientCfg),
		a.cfg.CircuitBreaker("emailjs"),
		a.logger,
	)
	return notify.NewEmailJSSender(a.cfg.EmailAPIURL, client, a.logger)
}

// Handler returns the HTTP handler, for in-process tests.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.limiter.Close()

	if err := a.publisher.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
