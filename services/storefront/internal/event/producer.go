package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pkgkafka "github.com/Georgesib05/comming-soon/pkg/kafka"
	"github.com/Georgesib05/comming-soon/pkg/logger"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated = "storefront.cart.updated"
	TopicOrderPlaced = "storefront.order.placed"
)

// Aggregate type constants.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// SourceStorefront identifies events originating from the storefront service.
const SourceStorefront = "storefront-service"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID    string         `json:"session_id"`
	Lines        []LineData     `json:"lines"`
	ItemCount    int            `json:"item_count"`
	Summary      domain.Summary `json:"summary"`
	DiscountCode string         `json:"discount_code,omitempty"`
}

// LineData is the line payload within storefront events.
type LineData struct {
	LineID    string   `json:"line_id"`
	ProductID int      `json:"product_id"`
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	Quantity  int      `json:"quantity"`
	Sizes     []string `json:"sizes"`
}

// OrderPlacedData is the payload for an order.placed event. Contact details
// are left out; the store receives them through the order notification.
type OrderPlacedData struct {
	OrderNumber   string         `json:"order_number"`
	SessionID     string         `json:"session_id"`
	Language      string         `json:"language"`
	Lines         []LineData     `json:"lines"`
	Summary       domain.Summary `json:"summary"`
	PaymentMethod string         `json:"payment_method"`
	PlacedAt      time.Time      `json:"placed_at"`
}

// Producer publishes storefront domain events.
type Producer struct {
	publisher pkgkafka.Publisher
	logger    *slog.Logger
}

// NewProducer creates a new event producer for the storefront service.
func NewProducer(publisher pkgkafka.Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		publisher: publisher,
		logger:    logger,
	}
}

func lineData(lines []domain.CartLine) []LineData {
	out := make([]LineData, len(lines))
	for i, l := range lines {
		out[i] = LineData{
			LineID:    l.ID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.String(),
			Quantity:  l.Quantity,
			Sizes:     l.Sizes,
		}
	}
	return out
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart domain.Cart, summary domain.Summary) error {
	data := CartUpdatedData{
		SessionID: cart.SessionID,
		Lines:     lineData(cart.Lines),
		ItemCount: cart.Count(),
		Summary:   summary,
	}
	if cart.Discount != nil {
		data.DiscountCode = cart.Discount.Code
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.SessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.publisher.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", cart.SessionID),
		slog.Int("item_count", data.ItemCount),
	)
	return nil
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order domain.Order) error {
	data := OrderPlacedData{
		OrderNumber:   order.Number,
		SessionID:     order.SessionID,
		Language:      order.Language.String(),
		Lines:         lineData(order.Lines),
		Summary:       order.Summary,
		PaymentMethod: order.PaymentMethod,
		PlacedAt:      order.PlacedAt,
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, order.Number, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx)).
		WithMetadata("language", order.Language.String())

	if err := p.publisher.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("order_number", order.Number),
	)
	return nil
}
