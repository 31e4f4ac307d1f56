// Package notify delivers templated notifications through a transactional
// email API with a fixed-interval retry policy.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Georgesib05/comming-soon/pkg/tracing"
)

const (
	DefaultMaxAttempts = 4
	DefaultDelay       = 2 * time.Second
)

// ErrExhausted is matched by every error SendWithRetry returns after using up
// its attempt budget.
var ErrExhausted = errors.New("notification attempts exhausted")

// Config identifies one dispatch target and its retry budget. MaxAttempts
// counts the initial attempt, so 4 means one try plus three retries.
type Config struct {
	ServiceID   string
	TemplateID  string
	AuthKey     string
	MaxAttempts int
	Delay       time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Delay < 0 {
		c.Delay = 0
	}
	return c
}

// Message is what a Sender hands to the provider.
type Message struct {
	ServiceID  string
	TemplateID string
	AuthKey    string
	Params     map[string]string
}

// Sender performs a single delivery attempt.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Name() string { return "func" }

func (f SenderFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

// ExhaustedError carries the last attempt's failure.
type ExhaustedError struct {
	Target   string
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: %d attempts failed: %v", e.Target, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() []error { return []error{ErrExhausted, e.Last} }

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Dispatcher runs the retry loop around a Sender.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger
	sleep  SleepFunc
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSleep replaces the wait between attempts. Tests use it to avoid real delays.
func WithSleep(fn SleepFunc) Option {
	return func(d *Dispatcher) { d.sleep = fn }
}

// NewDispatcher creates a dispatcher sending through sender.
func NewDispatcher(sender Sender, logger *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{sender: sender, logger: logger, sleep: sleepContext}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SendWithRetry delivers params to the target described by cfg. A failed
// attempt is retried after cfg.Delay until cfg.MaxAttempts attempts have
// been made; the wait is fixed with no backoff or jitter. Once the budget is
// spent the last failure is returned inside an *ExhaustedError.
func (d *Dispatcher) SendWithRetry(ctx context.Context, target string, cfg Config, params map[string]string) (err error) {
	cfg = cfg.withDefaults()
	msg := Message{
		ServiceID:  cfg.ServiceID,
		TemplateID: cfg.TemplateID,
		AuthKey:    cfg.AuthKey,
		Params:     params,
	}

	ctx, span := tracing.Start(ctx, "notify", "notify.SendWithRetry",
		attribute.String("notify.target", target),
		attribute.String("notify.sender", d.sender.Name()),
		attribute.Int("notify.max_attempts", cfg.MaxAttempts),
	)
	start := time.Now()
	attempts := 0
	defer func() {
		span.SetAttributes(attribute.Int("notify.attempts", attempts))
		tracing.End(span, err)
		observeDispatch(target, err, time.Since(start))
	}()

	var last error
	for attempts < cfg.MaxAttempts {
		if attempts > 0 {
			if serr := d.sleep(ctx, cfg.Delay); serr != nil {
				return fmt.Errorf("%s: retry wait interrupted: %w", target, serr)
			}
		}
		attempts++

		last = d.sender.Send(ctx, msg)
		observeAttempt(target, last)
		if last == nil {
			if attempts > 1 {
				d.logger.InfoContext(ctx, "notification delivered after retry",
					slog.String("target", target),
					slog.Int("attempt", attempts),
				)
			}
			return nil
		}

		d.logger.WarnContext(ctx, "notification attempt failed",
			slog.String("target", target),
			slog.String("sender", d.sender.Name()),
			slog.Int("attempt", attempts),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Bool("provider_unavailable", errors.Is(last, ErrProviderUnavailable)),
			slog.String("error", last.Error()),
		)
	}

	d.logger.ErrorContext(ctx, "notification attempts exhausted",
		slog.String("target", target),
		slog.Int("attempts", attempts),
		slog.String("error", last.Error()),
	)
	return &ExhaustedError{Target: target, Attempts: attempts, Last: last}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
