package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Georgesib05/comming-soon/pkg/httpclient"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint.
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// ErrProviderUnavailable is returned without contacting the provider while
// its circuit breaker is open.
var ErrProviderUnavailable = errors.New("email provider unavailable")

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// EmailJSSender posts messages to the EmailJS REST API. Each Send is a single
// request; the Dispatcher owns retry.
type EmailJSSender struct {
	client   *httpclient.CircuitBreakerClient
	endpoint string
	logger   *slog.Logger
}

// NewEmailJSSender creates a sender for endpoint, or DefaultEmailJSEndpoint
// when endpoint is empty.
func NewEmailJSSender(endpoint string, client *httpclient.CircuitBreakerClient, logger *slog.Logger) *EmailJSSender {
	if endpoint == "" {
		endpoint = DefaultEmailJSEndpoint
	}
	return &EmailJSSender{
		client:   client.WithFallback(providerUnavailable),
		endpoint: endpoint,
		logger:   logger,
	}
}

func providerUnavailable(_ context.Context, err error) (*http.Response, error) {
	return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
}

func (s *EmailJSSender) Name() string { return "emailjs" }

// Send performs one POST. Any non-2xx response is an error.
func (s *EmailJSSender) Send(ctx context.Context, msg Message) error {
	resp, err := s.client.PostJSON(ctx, s.endpoint, emailJSRequest{
		ServiceID:      msg.ServiceID,
		TemplateID:     msg.TemplateID,
		UserID:         msg.AuthKey,
		TemplateParams: msg.Params,
	})
	if err != nil {
		return fmt.Errorf("emailjs send: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return httpclient.ParseResponseError(resp, s.Name())
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	s.logger.DebugContext(ctx, "emailjs message accepted",
		slog.String("service_id", msg.ServiceID),
		slog.String("template_id", msg.TemplateID),
	)
	return nil
}

// LogSender logs each message and reports success. It is the development
// default so the services run without email credentials.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	attrs := []any{
		slog.String("service_id", msg.ServiceID),
		slog.String("template_id", msg.TemplateID),
		slog.Int("params", len(msg.Params)),
	}
	if to := firstNonEmpty(msg.Params["customer_email"], msg.Params["email"]); to != "" {
		attrs = append(attrs, slog.String("recipient", to))
	}
	s.logger.InfoContext(ctx, "notification logged (log sender)", attrs...)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var (
	_ Sender = (*EmailJSSender)(nil)
	_ Sender = (*LogSender)(nil)
	_ Sender = SenderFunc(nil)
)
