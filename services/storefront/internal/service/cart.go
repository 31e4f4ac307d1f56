package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/Georgesib05/comming-soon/pkg/errors"
	"github.com/Georgesib05/comming-soon/pkg/i18n"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/catalog"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/event"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/pricing"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/repository"
)

// DefaultMaxQuantity is the largest quantity the shop page lets a shopper pick.
const DefaultMaxQuantity = 10

// AddLineInput holds the parameters for adding a product to the cart. Sizes
// holds one size per unit, so len(Sizes) must equal Quantity.
type AddLineInput struct {
	ProductID int      `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Sizes     []string `json:"sizes"`
}

// UpdateQuantityInput holds a relative quantity change for a cart line.
type UpdateQuantityInput struct {
	Delta int `json:"delta"`
}

// ApplyDiscountInput holds a discount code typed by the shopper.
type ApplyDiscountInput struct {
	Code string `json:"code"`
}

// CartView is a cart together with its pricing summary.
type CartView struct {
	SessionID    string               `json:"session_id"`
	Lines        []domain.CartLine    `json:"lines"`
	DiscountCode *domain.DiscountCode `json:"discount_code,omitempty"`
	Count        int                  `json:"count"`
	Summary      domain.Summary       `json:"summary"`
	Savings      string               `json:"savings,omitempty"`
	Message      string               `json:"message,omitempty"`
}

func newCartView(lang i18n.Lang, cart domain.Cart) *CartView {
	summary := pricing.Calculate(cart)
	v := &CartView{
		SessionID:    cart.SessionID,
		Lines:        cart.Lines,
		DiscountCode: cart.Discount,
		Count:        cart.Count(),
		Summary:      summary,
	}
	if summary.TieredDiscount.IsPositive() {
		v.Savings = i18n.T(lang, i18n.MsgTShirtSaving, summary.TieredDiscount.StringFixed(2))
	}
	return v
}

// CartService implements the business logic for cart operations.
type CartService struct {
	repo        repository.CartRepository
	catalog     *catalog.Catalog
	codes       pricing.CodeTable
	producer    *event.Producer
	logger      *slog.Logger
	maxQuantity int
	now         func() time.Time
}

// NewCartService creates a new cart service. A maxQuantity of zero or less
// falls back to DefaultMaxQuantity.
func NewCartService(
	repo repository.CartRepository,
	c *catalog.Catalog,
	codes pricing.CodeTable,
	producer *event.Producer,
	logger *slog.Logger,
	maxQuantity int,
) *CartService {
	if maxQuantity <= 0 {
		maxQuantity = DefaultMaxQuantity
	}
	return &CartService{
		repo:        repo,
		catalog:     c,
		codes:       codes,
		producer:    producer,
		logger:      logger,
		maxQuantity: maxQuantity,
		now:         time.Now,
	}
}

// GetCart returns the session's cart. A session without a cart gets an empty one.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newCartView(i18n.FromContext(ctx), cart), nil
}

// Count returns the number of units in the session's cart.
func (s *CartService) Count(ctx context.Context, sessionID string) (int, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return cart.Count(), nil
}

// AddLine appends a line for the product with one size per unit. Adding the
// same product and sizes again creates a separate line.
func (s *CartService) AddLine(ctx context.Context, sessionID string, input AddLineInput) (*CartView, error) {
	lang := i18n.FromContext(ctx)

	product, ok := s.catalog.ByID(input.ProductID)
	if !ok {
		return nil, localize(apperrors.NotFound("product", strconv.Itoa(input.ProductID)), i18n.T(lang, i18n.MsgProductNotFound))
	}
	if input.Quantity < 1 || input.Quantity > s.maxQuantity {
		return nil, apperrors.Validation(i18n.T(lang, i18n.MsgFieldInvalid), map[string]string{
			"quantity": i18n.T(lang, i18n.MsgFieldInvalid),
		})
	}

	sizes := make([]string, len(input.Sizes))
	for i, size := range input.Sizes {
		sizes[i] = strings.ToUpper(strings.TrimSpace(size))
	}
	if !sizesComplete(product, sizes, input.Quantity) {
		msg := i18n.T(lang, i18n.MsgSelectSizes)
		return nil, apperrors.Validation(msg, map[string]string{"sizes": msg})
	}

	line := product.NewLine(sizes)
	cart, err := s.mutate(ctx, sessionID, func(c domain.Cart) (domain.Cart, error) {
		return c.Add(line), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "line added to cart",
		slog.String("session_id", sessionID),
		slog.Int("product_id", product.ID),
		slog.Int("quantity", line.Quantity),
	)

	view := newCartView(lang, cart)
	view.Message = i18n.T(lang, i18n.MsgAddedToCart, line.Quantity, product.Name)
	return view, nil
}

func sizesComplete(p domain.Product, sizes []string, quantity int) bool {
	if len(sizes) != quantity {
		return false
	}
	for _, size := range sizes {
		if !p.HasSize(size) {
			return false
		}
	}
	return true
}

// UpdateQuantity changes a line's quantity by delta, never below 1 and never
// above the shop's maximum quantity.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, lineID string, input UpdateQuantityInput) (*CartView, error) {
	lang := i18n.FromContext(ctx)
	cart, err := s.mutate(ctx, sessionID, func(c domain.Cart) (domain.Cart, error) {
		if line, ok := c.Line(lineID); ok && !s.deltaAllowed(line.Quantity, input.Delta) {
			return c, apperrors.Validation(i18n.T(lang, i18n.MsgFieldInvalid), map[string]string{
				"delta": i18n.T(lang, i18n.MsgFieldInvalid),
			})
		}
		return c.UpdateQuantity(lineID, input.Delta)
	})
	if err != nil {
		return nil, s.lineError(ctx, lineID, err)
	}
	return newCartView(i18n.FromContext(ctx), cart), nil
}

// RemoveLine deletes exactly one line from the cart.
func (s *CartService) RemoveLine(ctx context.Context, sessionID, lineID string) (*CartView, error) {
	cart, err := s.mutate(ctx, sessionID, func(c domain.Cart) (domain.Cart, error) {
		return c.Remove(lineID)
	})
	if err != nil {
		return nil, s.lineError(ctx, lineID, err)
	}

	s.logger.InfoContext(ctx, "line removed from cart",
		slog.String("session_id", sessionID),
		slog.String("line_id", lineID),
	)
	return newCartView(i18n.FromContext(ctx), cart), nil
}

// deltaAllowed bounds |delta| by the maximum quantity before adding, so the
// sum cannot overflow.
func (s *CartService) deltaAllowed(quantity, delta int) bool {
	if delta > s.maxQuantity || delta < -s.maxQuantity {
		return false
	}
	return delta <= 0 || quantity+delta <= s.maxQuantity
}

func (s *CartService) lineError(ctx context.Context, lineID string, err error) error {
	if errors.Is(err, domain.ErrLineNotFound) {
		return localize(apperrors.NotFound("cart line", lineID), i18n.T(i18n.FromContext(ctx), i18n.MsgLineNotFound))
	}
	return err
}

// Clear empties the cart and drops its discount code.
func (s *CartService) Clear(ctx context.Context, sessionID string) (*CartView, error) {
	cart, err := s.mutate(ctx, sessionID, func(c domain.Cart) (domain.Cart, error) {
		return c.Clear(), nil
	})
	if err != nil {
		return nil, err
	}
	return newCartView(i18n.FromContext(ctx), cart), nil
}

// ApplyDiscount sets the cart's discount code, replacing any earlier one.
// An unknown code leaves the cart as it was.
func (s *CartService) ApplyDiscount(ctx context.Context, sessionID string, input ApplyDiscountInput) (*CartView, error) {
	lang := i18n.FromContext(ctx)
	if strings.TrimSpace(input.Code) == "" {
		return nil, apperrors.InvalidInput(i18n.T(lang, i18n.MsgDiscountCodeEmpty)).WithCode("INVALID_DISCOUNT_CODE")
	}

	var applied domain.DiscountCode
	cart, err := s.mutate(ctx, sessionID, func(c domain.Cart) (domain.Cart, error) {
		next, dc, err := pricing.ApplyCode(c, s.codes, input.Code)
		applied = dc
		return next, err
	})
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidDiscountCode) {
			return nil, apperrors.InvalidInput(i18n.T(lang, i18n.MsgDiscountCodeBad)).WithCode("INVALID_DISCOUNT_CODE")
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "discount code applied",
		slog.String("session_id", sessionID),
		slog.String("code", applied.Code),
	)

	view := newCartView(lang, cart)
	view.Message = pricing.AppliedMessage(lang, applied)
	return view, nil
}

// RemoveDiscount clears the cart's discount code.
func (s *CartService) RemoveDiscount(ctx context.Context, sessionID string) (*CartView, error) {
	lang := i18n.FromContext(ctx)
	cart, err := s.mutate(ctx, sessionID, func(c domain.Cart) (domain.Cart, error) {
		return pricing.RemoveCode(c), nil
	})
	if err != nil {
		return nil, err
	}
	view := newCartView(lang, cart)
	view.Message = i18n.T(lang, i18n.MsgDiscountRemoved)
	return view, nil
}

// load returns the stored cart, or a fresh one when the session has none.
func (s *CartService) load(ctx context.Context, sessionID string) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(sessionID), nil
		}
		return domain.Cart{}, fmt.Errorf("get cart: %w", err)
	}
	return *cart, nil
}

// mutate applies fn to the current cart and stores the result. The write
// only succeeds if nobody else saved the cart in between.
func (s *CartService) mutate(ctx context.Context, sessionID string, fn func(domain.Cart) (domain.Cart, error)) (domain.Cart, error) {
	current, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	expectedVersion := current.Version
	next, err := fn(current)
	if err != nil {
		return domain.Cart{}, err
	}
	next.UpdatedAt = s.now().UTC()

	ok, err := s.repo.SaveIfVersion(ctx, &next, expectedVersion)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("save cart: %w", err)
	}
	if !ok {
		return domain.Cart{}, apperrors.Conflict("cart was modified concurrently, please retry")
	}

	if err := s.producer.PublishCartUpdated(ctx, next, pricing.Calculate(next)); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
	return next, nil
}
