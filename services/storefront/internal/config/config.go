package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	pkgconfig "github.com/Georgesib05/comming-soon/pkg/config"
	"github.com/Georgesib05/comming-soon/pkg/database"
	"github.com/Georgesib05/comming-soon/pkg/httpclient"
	"github.com/Georgesib05/comming-soon/pkg/notify"
	"github.com/Georgesib05/comming-soon/pkg/tracing"
)

// Cart store backends.
const (
	CartStoreMemory = "memory"
	CartStoreRedis  = "redis"
)

// Notification senders.
const (
	SenderLog     = "log"
	SenderEmailJS = "emailjs"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort           int      `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	CheckoutRateRPS    float64  `env:"CHECKOUT_RATE_LIMIT_RPS" envDefault:"1"`
	CheckoutRateBurst  int      `env:"CHECKOUT_RATE_LIMIT_BURST" envDefault:"3"`

	// Cart store
	CartStore string `env:"CART_STORE" envDefault:"memory"`
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 7 days)
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Shop
	CatalogPath      string `env:"CATALOG_PATH"`
	ShopMaxQuantity  int    `env:"SHOP_MAX_QUANTITY" envDefault:"10"`
	StoreName        string `env:"STORE_NAME" envDefault:"Illusion Store"`
	PhoneCountryCode string `env:"PHONE_COUNTRY_CODE" envDefault:"+961"`

	// Notifications
	NotifySender            string `env:"NOTIFY_SENDER" envDefault:"log"`
	EmailAPIURL             string `env:"EMAIL_API_URL" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	EmailPublicKey          string `env:"EMAIL_PUBLIC_KEY"`
	StoreNotifyServiceID    string `env:"STORE_NOTIFY_SERVICE_ID"`
	StoreNotifyTemplateID   string `env:"STORE_NOTIFY_TEMPLATE_ID"`
	ConfirmNotifyServiceID  string `env:"CONFIRM_NOTIFY_SERVICE_ID"`
	ConfirmNotifyTemplateID string `env:"CONFIRM_NOTIFY_TEMPLATE_ID"`
	NotifyMaxAttempts       int    `env:"NOTIFY_MAX_ATTEMPTS" envDefault:"4"`
	NotifyRetryDelayMS      int    `env:"NOTIFY_RETRY_DELAY_MS" envDefault:"2000"`
	NotifyRequestTimeoutMS  int    `env:"NOTIFY_REQUEST_TIMEOUT_MS" envDefault:"10000"`

	// Circuit breaker in front of the email API
	CBFailureRatio float64 `env:"CB_FAILURE_RATIO" envDefault:"0.5"`
	CBMinRequests  uint32  `env:"CB_MIN_REQUESTS" envDefault:"5"`
	CBOpenTimeout  int     `env:"CB_OPEN_TIMEOUT_SECONDS" envDefault:"30"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.CartStore {
	case CartStoreMemory:
	case CartStoreRedis:
		if _, err := c.Redis(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("CART_STORE must be %q or %q, got %q", CartStoreMemory, CartStoreRedis, c.CartStore)
	}
	if c.CartTTL < 1 {
		return fmt.Errorf("CART_TTL_HOURS must be positive, got %d", c.CartTTL)
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	if c.ShopMaxQuantity < 1 {
		return fmt.Errorf("SHOP_MAX_QUANTITY must be positive, got %d", c.ShopMaxQuantity)
	}
	if strings.TrimSpace(c.StoreName) == "" {
		return fmt.Errorf("STORE_NAME is required")
	}
	switch c.NotifySender {
	case SenderLog:
	case SenderEmailJS:
		if c.EmailPublicKey == "" {
			return fmt.Errorf("EMAIL_PUBLIC_KEY is required when NOTIFY_SENDER is %q", SenderEmailJS)
		}
		if c.StoreNotifyServiceID == "" || c.StoreNotifyTemplateID == "" {
			return fmt.Errorf("STORE_NOTIFY_SERVICE_ID and STORE_NOTIFY_TEMPLATE_ID are required when NOTIFY_SENDER is %q", SenderEmailJS)
		}
		if c.ConfirmNotifyServiceID == "" || c.ConfirmNotifyTemplateID == "" {
			return fmt.Errorf("CONFIRM_NOTIFY_SERVICE_ID and CONFIRM_NOTIFY_TEMPLATE_ID are required when NOTIFY_SENDER is %q", SenderEmailJS)
		}
	default:
		return fmt.Errorf("NOTIFY_SENDER must be %q or %q, got %q", SenderLog, SenderEmailJS, c.NotifySender)
	}
	if c.NotifyMaxAttempts < 1 {
		return fmt.Errorf("NOTIFY_MAX_ATTEMPTS must be at least 1, got %d", c.NotifyMaxAttempts)
	}
	if c.NotifyRetryDelayMS < 0 {
		return fmt.Errorf("NOTIFY_RETRY_DELAY_MS must not be negative, got %d", c.NotifyRetryDelayMS)
	}
	if c.NotifyRequestTimeoutMS < 1 {
		return fmt.Errorf("NOTIFY_REQUEST_TIMEOUT_MS must be positive, got %d", c.NotifyRequestTimeoutMS)
	}
	if c.CBFailureRatio <= 0 || c.CBFailureRatio > 1 {
		return fmt.Errorf("CB_FAILURE_RATIO must be in (0, 1], got %v", c.CBFailureRatio)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %v", c.OTELSampleRate)
	}
	return nil
}

// Redis returns the Redis connection settings.
func (c *Config) Redis() (database.RedisConfig, error) {
	host, port, err := net.SplitHostPort(c.RedisAddr)
	if err != nil {
		return database.RedisConfig{}, fmt.Errorf("invalid REDIS_ADDR %q: %w", c.RedisAddr, err)
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return database.RedisConfig{}, fmt.Errorf("invalid REDIS_ADDR port %q: %w", port, err)
	}
	rc := database.DefaultRedisConfig()
	rc.Host = host
	rc.Port = p
	rc.Password = c.RedisPass
	rc.DB = c.RedisDB
	return rc, nil
}

// CartTTLDuration is the cart expiry.
func (c *Config) CartTTLDuration() time.Duration {
	return time.Duration(c.CartTTL) * time.Hour
}

// StoreTarget is the notification sent to the store for each order.
func (c *Config) StoreTarget() notify.Config {
	return c.target(c.StoreNotifyServiceID, c.StoreNotifyTemplateID)
}

// ConfirmationTarget is the receipt sent to the customer.
func (c *Config) ConfirmationTarget() notify.Config {
	return c.target(c.ConfirmNotifyServiceID, c.ConfirmNotifyTemplateID)
}

func (c *Config) target(serviceID, templateID string) notify.Config {
	return notify.Config{
		ServiceID:   serviceID,
		TemplateID:  templateID,
		AuthKey:     c.EmailPublicKey,
		MaxAttempts: c.NotifyMaxAttempts,
		Delay:       time.Duration(c.NotifyRetryDelayMS) * time.Millisecond,
	}
}

// NotifyRequestTimeout bounds a single request to the email API.
func (c *Config) NotifyRequestTimeout() time.Duration {
	return time.Duration(c.NotifyRequestTimeoutMS) * time.Millisecond
}

// checkoutSlack covers composing, the cart store and writing the response.
const checkoutSlack = 5 * time.Second

// CheckoutTimeout is how long a checkout request may run: the store and
// confirmation notifications can each spend every attempt at the request
// timeout plus the waits between them.
func (c *Config) CheckoutTimeout() time.Duration {
	attempts := time.Duration(max(c.NotifyMaxAttempts, 1))
	delay := time.Duration(c.NotifyRetryDelayMS) * time.Millisecond
	perTarget := attempts*c.NotifyRequestTimeout() + (attempts-1)*delay
	return 2*perTarget + checkoutSlack
}

// WriteTimeout is the HTTP server write timeout. It outlasts CheckoutTimeout
// so a checkout that used its whole budget can still send its response.
func (c *Config) WriteTimeout() time.Duration {
	return c.CheckoutTimeout() + checkoutSlack
}

// CircuitBreaker returns the breaker settings for the email API client.
func (c *Config) CircuitBreaker(name string) httpclient.CircuitBreakerConfig {
	cb := httpclient.DefaultCircuitBreakerConfig(name)
	cb.FailureRatio = c.CBFailureRatio
	cb.MinRequests = c.CBMinRequests
	cb.Timeout = time.Duration(c.CBOpenTimeout) * time.Second
	return cb
}

// Tracing returns the OpenTelemetry settings.
func (c *Config) Tracing(serviceName string) tracing.Config {
	tc := tracing.DefaultConfig(serviceName)
	tc.Environment = c.Environment
	tc.Enabled = c.OTELEnabled
	tc.OTLPEndpoint = c.OTELEndpoint
	tc.SampleRate = c.OTELSampleRate
	return tc
}
