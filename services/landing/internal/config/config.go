package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/Georgesib05/comming-soon/pkg/config"
	"github.com/Georgesib05/comming-soon/pkg/httpclient"
	"github.com/Georgesib05/comming-soon/pkg/notify"
	"github.com/Georgesib05/comming-soon/pkg/tracing"
)

// Notification senders.
const (
	SenderLog     = "log"
	SenderEmailJS = "emailjs"
)

// Config holds all configuration for the landing service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort           int      `env:"LANDING_HTTP_PORT" envDefault:"8081"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	RateLimitRPS       float64  `env:"RATE_LIMIT_RPS" envDefault:"0.5"`
	RateLimitBurst     int      `env:"RATE_LIMIT_BURST" envDefault:"3"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Notifications
	NotifySender       string `env:"NOTIFY_SENDER" envDefault:"log"`
	EmailAPIURL        string `env:"EMAIL_API_URL" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	EmailPublicKey     string `env:"EMAIL_PUBLIC_KEY"`
	NotifyServiceID    string `env:"SUBSCRIBE_NOTIFY_SERVICE_ID"`
	NotifyTemplateID   string `env:"SUBSCRIBE_NOTIFY_TEMPLATE_ID"`
	NotifyMaxAttempts  int    `env:"NOTIFY_MAX_ATTEMPTS" envDefault:"4"`
	NotifyRetryDelayMS int    `env:"NOTIFY_RETRY_DELAY_MS" envDefault:"2000"`
	NotifyTimeoutMS    int    `env:"NOTIFY_REQUEST_TIMEOUT_MS" envDefault:"10000"`

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
		return nil, fmt.Errorf("load landing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateLimitBurst)
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	switch c.NotifySender {
	case SenderLog:
	case SenderEmailJS:
		if c.EmailPublicKey == "" {
			return fmt.Errorf("EMAIL_PUBLIC_KEY is required when NOTIFY_SENDER is %q", SenderEmailJS)
		}
		if c.NotifyServiceID == "" || c.NotifyTemplateID == "" {
			return fmt.Errorf("SUBSCRIBE_NOTIFY_SERVICE_ID and SUBSCRIBE_NOTIFY_TEMPLATE_ID are required when NOTIFY_SENDER is %q", SenderEmailJS)
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
	if c.NotifyTimeoutMS < 1 {
		return fmt.Errorf("NOTIFY_REQUEST_TIMEOUT_MS must be positive, got %d", c.NotifyTimeoutMS)
	}
	if c.CBFailureRatio <= 0 || c.CBFailureRatio > 1 {
		return fmt.Errorf("CB_FAILURE_RATIO must be in (0, 1], got %v", c.CBFailureRatio)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %v", c.OTELSampleRate)
	}
	return nil
}

// SubscriptionTarget is the notification sent for each new subscriber.
func (c *Config) SubscriptionTarget() notify.Config {
	return notify.Config{
		ServiceID:   c.NotifyServiceID,
		TemplateID:  c.NotifyTemplateID,
		AuthKey:     c.EmailPublicKey,
		MaxAttempts: c.NotifyMaxAttempts,
		Delay:       time.Duration(c.NotifyRetryDelayMS) * time.Millisecond,
	}
}

// NotifyRequestTimeout bounds a single request to the email API.
func (c *Config) NotifyRequestTimeout() time.Duration {
	return time.Duration(c.NotifyTimeoutMS) * time.Millisecond
}

const requestSlack = 5 * time.Second

// RequestTimeout is how long a signup may run when the notification spends
// every attempt at the request timeout plus the waits between them.
func (c *Config) RequestTimeout() time.Duration {
	attempts := time.Duration(max(c.NotifyMaxAttempts, 1))
	delay := time.Duration(c.NotifyRetryDelayMS) * time.Millisecond
	return attempts*c.NotifyRequestTimeout() + (attempts-1)*delay + requestSlack
}

// WriteTimeout is the HTTP server write timeout, longer than RequestTimeout.
func (c *Config) WriteTimeout() time.Duration {
	return c.RequestTimeout() + requestSlack
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
