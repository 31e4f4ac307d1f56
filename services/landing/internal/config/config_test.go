package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.HTTPPort)
	assert.Equal(t, SenderLog, cfg.NotifySender)
	assert.Equal(t, 3, cfg.RateLimitBurst)
	assert.False(t, cfg.KafkaEnabled)

	target := cfg.SubscriptionTarget()
	assert.Equal(t, 4, target.MaxAttempts)
	assert.Equal(t, 2*time.Second, target.Delay)
}

func TestLoad_EmailJS(t *testing.T) {
	t.Setenv("NOTIFY_SENDER", "emailjs")
	t.Setenv("EMAIL_PUBLIC_KEY", "pk_123")
	t.Setenv("SUBSCRIBE_NOTIFY_SERVICE_ID", "service_landing")
	t.Setenv("SUBSCRIBE_NOTIFY_TEMPLATE_ID", "template_landing")
	t.Setenv("NOTIFY_MAX_ATTEMPTS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	target := cfg.SubscriptionTarget()
	assert.Equal(t, "service_landing", target.ServiceID)
	assert.Equal(t, "template_landing", target.TemplateID)
	assert.Equal(t, "pk_123", target.AuthKey)
	assert.Equal(t, 2, target.MaxAttempts)
}

func TestLoad_EmailJSRequiresIDs(t *testing.T) {
	t.Setenv("NOTIFY_SENDER", "emailjs")
	t.Setenv("EMAIL_PUBLIC_KEY", "pk_123")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUBSCRIBE_NOTIFY_SERVICE_ID")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"port", "LANDING_HTTP_PORT", "70000", "invalid HTTP port"},
		{"rate", "RATE_LIMIT_RPS", "0", "RATE_LIMIT_RPS"},
		{"burst", "RATE_LIMIT_BURST", "0", "RATE_LIMIT_BURST"},
		{"sender", "NOTIFY_SENDER", "sms", "NOTIFY_SENDER must be"},
		{"attempts", "NOTIFY_MAX_ATTEMPTS", "0", "NOTIFY_MAX_ATTEMPTS"},
		{"request timeout", "NOTIFY_REQUEST_TIMEOUT_MS", "0", "NOTIFY_REQUEST_TIMEOUT_MS"},
		{"key", "NOTIFY_SENDER", "emailjs", "EMAIL_PUBLIC_KEY"},
		{"not a number", "LANDING_HTTP_PORT", "abc", "load landing config"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRequestTimeout_CoversNotifyBudget(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	// 4 attempts of 10s plus 3 waits of 2s, plus slack.
	assert.Equal(t, 51*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 56*time.Second, cfg.WriteTimeout())

	t.Setenv("NOTIFY_REQUEST_TIMEOUT_MS", "500")
	t.Setenv("NOTIFY_RETRY_DELAY_MS", "100")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.NotifyRequestTimeout())
	assert.Equal(t, 2*time.Second+300*time.Millisecond+5*time.Second, cfg.RequestTimeout())
}

func TestCircuitBreakerAndTracing(t *testing.T) {
	t.Setenv("CB_OPEN_TIMEOUT_SECONDS", "5")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	cb := cfg.CircuitBreaker("emailjs")
	assert.Equal(t, "emailjs", cb.Name)
	assert.Equal(t, 5*time.Second, cb.Timeout)

	tc := cfg.Tracing("landing-service")
	assert.True(t, tc.Enabled)
	assert.Equal(t, "landing-service", tc.ServiceName)
}
