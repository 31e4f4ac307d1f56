package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/Georgesib05/comming-soon/pkg/errors"
	"github.com/Georgesib05/comming-soon/pkg/i18n"
	"github.com/Georgesib05/comming-soon/pkg/notify"
	"github.com/Georgesib05/comming-soon/pkg/validator"
	"github.com/Georgesib05/comming-soon/services/landing/internal/domain"
	"github.com/Georgesib05/comming-soon/services/landing/internal/event"
)

// TargetSubscription names the subscriber notification in logs and metrics.
const TargetSubscription = "launch_subscription"

// SubscribeInput is the coming-soon form.
type SubscribeInput struct {
	Email    string `json:"email" validate:"notblank,email_address"`
	Language string `json:"language"`
}

// SubscribeResult is returned once the subscriber has been handed over.
type SubscribeResult struct {
	Email        string    `json:"email"`
	Message      string    `json:"message"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// SubscriptionService forwards launch subscribers to the notification
// provider. Subscribers are not stored locally.
type SubscriptionService struct {
	dispatcher *notify.Dispatcher
	target     notify.Config
	producer   *event.Producer
	logger     *slog.Logger
	now        func() time.Time
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(
	dispatcher *notify.Dispatcher,
	target notify.Config,
	producer *event.Producer,
	logger *slog.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		dispatcher: dispatcher,
		target:     target,
		producer:   producer,
		logger:     logger,
		now:        time.Now,
	}
}

// Subscribe validates the address and sends the subscriber notification with
// retries. A language in the body wins over the negotiated request language.
func (s *SubscriptionService) Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeResult, error) {
	lang := i18n.FromContext(ctx)
	if l, ok := i18n.Parse(input.Language); ok {
		lang = l
	}

	input.Email = strings.TrimSpace(input.Email)
	if err := validateEmail(lang, input); err != nil {
		return nil, err
	}

	sub := domain.NewSubscription(input.Email, lang, s.now())
	params := map[string]string{
		"email":         sub.Email,
		"language":      sub.Language.String(),
		"subscribed_at": sub.RequestedAt.Format(time.RFC3339),
		"message":       i18n.T(lang, i18n.MsgSubscriberMessage, sub.Email),
	}

	// Retries keep going after the visitor navigates away.
	dctx := context.WithoutCancel(ctx)
	if err := s.dispatcher.SendWithRetry(dctx, TargetSubscription, s.target, params); err != nil {
		return nil, apperrors.DispatchFailed(i18n.T(lang, i18n.MsgSubscribeFailed, failureReason(err)), err).
			WithCode("SUBSCRIBE_FAILED")
	}

	s.logger.InfoContext(ctx, "subscriber registered",
		slog.String("language", sub.Language.String()),
	)

	if err := s.producer.PublishSubscriptionCreated(dctx, sub); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish subscription.created event",
			slog.String("error", err.Error()),
		)
	}

	return &SubscribeResult{
		Email:        sub.Email,
		Message:      i18n.T(lang, i18n.MsgSubscribed),
		SubscribedAt: sub.RequestedAt,
	}, nil
}

func validateEmail(lang i18n.Lang, in SubscribeInput) error {
	err := validator.Validate(in)
	if err == nil {
		return nil
	}
	var valErr *validator.ValidationError
	if !errors.As(err, &valErr) {
		return apperrors.InvalidInput(err.Error())
	}

	key := i18n.MsgEmailInvalid
	if valErr.Tags()["email"] == "notblank" {
		key = i18n.MsgEmailRequired
	}
	msg := i18n.T(lang, key)
	return apperrors.Validation(msg, map[string]string{"email": msg})
}

func failureReason(err error) string {
	var exhausted *notify.ExhaustedError
	if errors.As(err, &exhausted) && exhausted.Last != nil {
		return exhausted.Last.Error()
	}
	return err.Error()
}
