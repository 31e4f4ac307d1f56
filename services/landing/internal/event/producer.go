package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pkgkafka "github.com/Georgesib05/comming-soon/pkg/kafka"
	"github.com/Georgesib05/comming-soon/pkg/logger"
	"github.com/Georgesib05/comming-soon/services/landing/internal/domain"
)

// TopicSubscriptionCreated is published once a subscriber has been handed
// to the notification provider.
const TopicSubscriptionCreated = "landing.subscription.created"

// AggregateTypeSubscription is the aggregate type of subscription events.
const AggregateTypeSubscription = "subscription"

// SourceLanding identifies events originating from the landing service.
const SourceLanding = "landing-service"

// SubscriptionCreatedData is the payload for a subscription.created event.
type SubscriptionCreatedData struct {
	Email        string    `json:"email"`
	Language     string    `json:"language"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// Producer publishes landing domain events.
type Producer struct {
	publisher pkgkafka.Publisher
	logger    *slog.Logger
}

// NewProducer creates a new event producer for the landing service.
func NewProducer(publisher pkgkafka.Publisher, logger *slog.Logger) *Producer {
	return &Producer{publisher: publisher, logger: logger}
}

// PublishSubscriptionCreated publishes a subscription.created event keyed by
// the subscriber's email.
func (p *Producer) PublishSubscriptionCreated(ctx context.Context, sub domain.Subscription) error {
	data := SubscriptionCreatedData{
		Email:        sub.Email,
		Language:     sub.Language.String(),
		SubscribedAt: sub.RequestedAt,
	}

	event, err := pkgkafka.NewEvent(TopicSubscriptionCreated, sub.Email, AggregateTypeSubscription, SourceLanding, data)
	if err != nil {
		return fmt.Errorf("create subscription.created event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.publisher.Publish(ctx, TopicSubscriptionCreated, event); err != nil {
		return fmt.Errorf("publish subscription.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published subscription.created event",
		slog.String("language", data.Language),
	)
	return nil
}
