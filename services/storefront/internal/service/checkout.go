package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	apperrors "github.com/Georgesib05/comming-soon/pkg/errors"
	"github.com/Georgesib05/comming-soon/pkg/i18n"
	"github.com/Georgesib05/comming-soon/pkg/notify"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/event"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/pricing"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/receipt"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/repository"
)

// Notification targets used in logs and metrics.
const (
	TargetStore        = "store_order"
	TargetConfirmation = "customer_confirmation"
)

// Targets holds the notification settings for the two checkout messages.
type Targets struct {
	Store        notify.Config
	Confirmation notify.Config
}

// CheckoutResult describes a placed order.
type CheckoutResult struct {
	OrderNumber      string         `json:"order_number"`
	Summary          domain.Summary `json:"summary"`
	PaymentMethod    string         `json:"payment_method"`
	ConfirmationSent bool           `json:"confirmation_sent"`
	Message          string         `json:"message"`
	PlacedAt         time.Time      `json:"placed_at"`
}

// CheckoutService turns a session's cart into an order. Orders are not
// stored: placing one means the store notification was delivered.
type CheckoutService struct {
	repo       repository.CartRepository
	composer   *receipt.Composer
	dispatcher *notify.Dispatcher
	targets    Targets
	producer   *event.Producer
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	repo repository.CartRepository,
	composer *receipt.Composer,
	dispatcher *notify.Dispatcher,
	targets Targets,
	producer *event.Producer,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		repo:       repo,
		composer:   composer,
		dispatcher: dispatcher,
		targets:    targets,
		producer:   producer,
		logger:     logger,
		now:        time.Now,
		inflight:   make(map[string]struct{}),
	}
}

// PlaceOrder validates the delivery form, notifies the store and then the
// customer. Failing to reach the store fails the order; failing to reach the
// customer does not.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, input CheckoutInput) (*CheckoutResult, error) {
	lang := i18n.FromContext(ctx)
	if l, ok := i18n.Parse(input.Language); ok {
		lang = l
	}

	in := input.normalized()
	if err := validateForm(lang, in); err != nil {
		return nil, err
	}
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	if !s.acquire(sessionID) {
		return nil, apperrors.Conflict(i18n.T(lang, i18n.MsgCheckoutInProgress))
	}
	defer s.release(sessionID)

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("get cart for checkout: %w", err)
	}
	if cart == nil || cart.IsEmpty() {
		return nil, apperrors.InvalidInput(i18n.T(lang, i18n.MsgCartEmpty)).WithCode("CART_EMPTY")
	}

	placedAt := s.now().UTC()
	order := domain.Order{
		Number:    domain.OrderNumber(placedAt),
		SessionID: sessionID,
		Customer: domain.Customer{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Phone:     in.Phone,
			Email:     in.Email,
			Address:   in.Address,
			Building:  in.Building,
			Floor:     in.Floor,
		},
		Language:      lang,
		Lines:         cart.Lines,
		Summary:       pricing.Calculate(*cart),
		PaymentMethod: domain.PaymentCashOnDelivery,
		PlacedAt:      placedAt,
	}

	// The shopper may leave the page while retries are pending; the
	// dispatch must still run its full course.
	dctx := context.WithoutCancel(ctx)

	storeParams, err := s.composer.StoreParams(order)
	if err != nil {
		return nil, fmt.Errorf("compose store notification: %w", err)
	}
	if err := s.dispatcher.SendWithRetry(dctx, TargetStore, s.targets.Store, storeParams); err != nil {
		return nil, apperrors.DispatchFailed(i18n.T(lang, i18n.MsgOrderFailed, failureReason(err)), err).
			WithCode("ORDER_FAILED")
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_number", order.Number),
		slog.String("session_id", sessionID),
		slog.Int("item_count", order.Summary.ItemCount),
		slog.String("total", order.Summary.Total.String()),
	)

	s.clearOrdered(dctx, order, cart)
	if err := s.producer.PublishOrderPlaced(dctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_number", order.Number),
			slog.String("error", err.Error()),
		)
	}

	result := &CheckoutResult{
		OrderNumber:   order.Number,
		Summary:       order.Summary,
		PaymentMethod: i18n.T(lang, i18n.MsgPaymentCOD),
		PlacedAt:      placedAt,
	}

	confirmParams, err := s.composer.ConfirmationParams(order)
	if err == nil {
		err = s.dispatcher.SendWithRetry(dctx, TargetConfirmation, s.targets.Confirmation, confirmParams)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "order confirmation not sent",
			slog.String("order_number", order.Number),
			slog.String("error", err.Error()),
		)
		result.Message = i18n.T(lang, i18n.MsgOrderReceived)
		return result, nil
	}

	result.ConfirmationSent = true
	result.Message = i18n.T(lang, i18n.MsgOrderPlaced)
	return result, nil
}

// clearOrdered empties the cart the order was built from. A cart changed
// while the notifications were in flight holds lines that were not ordered,
// so it is left as it is.
func (s *CheckoutService) clearOrdered(ctx context.Context, order domain.Order, ordered *domain.Cart) {
	cleared := ordered.Clear()
	ok, err := s.repo.SaveIfVersion(ctx, &cleared, ordered.Version)
	switch {
	case err != nil:
		s.logger.ErrorContext(ctx, "failed to clear cart after order",
			slog.String("order_number", order.Number),
			slog.String("session_id", order.SessionID),
			slog.String("error", err.Error()),
		)
	case !ok:
		s.logger.WarnContext(ctx, "cart changed during checkout, keeping it",
			slog.String("order_number", order.Number),
			slog.String("session_id", order.SessionID),
		)
	}
}

func (s *CheckoutService) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *CheckoutService) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}

// failureReason is the last delivery error, which is what the shopper sees.
func failureReason(err error) string {
	var exhausted *notify.ExhaustedError
	if errors.As(err, &exhausted) && exhausted.Last != nil {
		return exhausted.Last.Error()
	}
	return err.Error()
}
