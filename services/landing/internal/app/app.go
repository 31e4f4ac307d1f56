package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Georgesib05/comming-soon/pkg/health"
	"github.com/Georgesib05/comming-soon/pkg/httpclient"
	pkgkafka "github.com/Georgesib05/comming-soon/pkg/kafka"
	"github.com/Georgesib05/comming-soon/pkg/middleware"
	"github.com/Georgesib05/comming-soon/pkg/notify"
	"github.com/Georgesib05/comming-soon/pkg/tracing"
	"github.com/Georgesib05/comming-soon/services/landing/internal/config"
	"github.com/Georgesib05/comming-soon/services/landing/internal/event"
	handler "github.com/Georgesib05/comming-soon/services/landing/internal/handler/http"
	"github.com/Georgesib05/comming-soon/services/landing/internal/service"
)

const serviceName = "landing-service"

// App wires together all dependencies and runs the landing service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
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

	shutdown, err := tracing.InitTracer(ctx, cfg.Tracing(serviceName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = shutdown

	if cfg.KafkaEnabled {
		producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		healthHandler.Register("kafka", producer.Ping)
		a.publisher = producer
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		a.publisher = pkgkafka.NopPublisher{Logger: logger}
	}

	dispatcher := notify.NewDispatcher(a.sender(), logger)
	svc := service.NewSubscriptionService(
		dispatcher,
		cfg.SubscriptionTarget(),
		event.NewProducer(a.publisher, logger),
		logger,
	)

	a.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)

	router := handler.NewRouter(svc, healthHandler, logger, handler.RouterConfig{
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Environment:    cfg.Environment,
		},
		Limiter:        a.limiter,
		RequestTimeout: cfg.RequestTimeout(),
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

func (a *App) sender() notify.Sender {
	if a.cfg.NotifySender != config.SenderEmailJS {
		a.logger.Info("notifications are logged, not sent")
		return notify.NewLogSender(a.logger)
	}

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.limiter.Close()

	if err := a.publisher.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
