package service

import (
	"context"
	"errors"
	"math"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Georgesib05/comming-soon/pkg/errors"
	"github.com/Georgesib05/comming-soon/pkg/i18n"
	pkgkafka "github.com/Georgesib05/comming-soon/pkg/kafka"
	"github.com/Georgesib05/comming-soon/pkg/logger"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/catalog"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/event"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/pricing"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/repository/memory"
)

// --- Mock Repository ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) (bool, error) {
	args := m.Called(ctx, cart, expectedVersion)
	return args.Bool(0), args.Error(1)
}

// --- Fake Publisher ---

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ *pkgkafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) Ping(context.Context) error { return nil }
func (p *recordingPublisher) Close() error               { return nil }

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

// --- Test Helpers ---

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func newTestCartService(t *testing.T) (*CartService, *memory.CartRepository, *recordingPublisher) {
	t.Helper()
	repo := memory.NewCartRepository(0)
	pub := &recordingPublisher{}
	producer := event.NewProducer(pub, logger.Discard())
	svc := NewCartService(repo, testCatalog(t), pricing.DefaultCodes(), producer, logger.Discard(), 0)
	return svc, repo, pub
}

func addShirts(t *testing.T, svc *CartService, sessionID string, sizes ...string) *CartView {
	t.Helper()
	view, err := svc.AddLine(context.Background(), sessionID, AddLineInput{
		ProductID: 1,
		Quantity:  len(sizes),
		Sizes:     sizes,
	})
	require.NoError(t, err)
	return view
}

func requireAppError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected *AppError, got %T: %v", err, err)
	return appErr
}

// --- GetCart / Count ---

func TestGetCart_Empty(t *testing.T) {
	svc, _, _ := newTestCartService(t)

	view, err := svc.GetCart(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, "s1", view.SessionID)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.Count)
	assert.True(t, view.Summary.Total.IsZero())
	assert.Empty(t, view.Savings)
}

func TestGetCart_EmptySessionID(t *testing.T) {
	svc, _, _ := newTestCartService(t)

	_, err := svc.GetCart(context.Background(), "")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestGetCart_RepositoryError(t *testing.T) {
	repo := new(mockCartRepository)
	ctx := context.Background()
	repo.On("Get", ctx, "s1").Return(nil, errors.New("redis down"))
	producer := event.NewProducer(&recordingPublisher{}, logger.Discard())
	svc := NewCartService(repo, testCatalog(t), pricing.DefaultCodes(), producer, logger.Discard(), 10)

	_, err := svc.GetCart(ctx, "s1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
	repo.AssertExpectations(t)
}

func TestCount(t *testing.T) {
	svc, _, _ := newTestCartService(t)
	addShirts(t, svc, "s1", "S", "M")
	addShirts(t, svc, "s1", "L")

	n, err := svc.Count(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

// --- AddLine ---

func TestAddLine_Success(t *testing.T) {
	svc, repo, pub := newTestCartService(t)

	view := addShirts(t, svc, "s1", "s", "M")

	require.Len(t, view.Lines, 1)
	assert.Equal(t, "1-S-M#1", view.Lines[0].ID)
	assert.Equal(t, []string{"S", "M"}, view.Lines[0].Sizes)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "2 x Ocular Trap T-Shirt added to your cart", view.Message)
	assert.Equal(t, "You're saving $4.98 on your t-shirt purchase!", view.Savings)
	assert.Equal(t, []string{event.TopicCartUpdated}, pub.published())

	stored, err := repo.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Version)
}

func TestAddLine_DuplicatesStayDistinct(t *testing.T) {
	svc, _, _ := newTestCartService(t)
	addShirts(t, svc, "s1", "S")
	view := addShirts(t, svc, "s1", "S")

	require.Len(t, view.Lines, 2)
	assert.NotEqual(t, view.Lines[0].ID, view.Lines[1].ID)

	view, err := svc.RemoveLine(context.Background(), "s1", view.Lines[0].ID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "1-S#2", view.Lines[0].ID)
}

func TestAddLine_Validation(t *testing.T) {
	tests := []struct {
		name      string
		input     AddLineInput
		wantField string
	}{
		{"zero quantity", AddLineInput{ProductID: 1, Quantity: 0}, "quantity"},
		{"above max", AddLineInput{ProductID: 1, Quantity: 11, Sizes: make([]string, 11)}, "quantity"},
		{"missing sizes", AddLineInput{ProductID: 1, Quantity: 2, Sizes: []string{"S"}}, "sizes"},
		{"extra sizes", AddLineInput{ProductID: 1, Quantity: 1, Sizes: []string{"S", "M"}}, "sizes"},
		{"unknown size", AddLineInput{ProductID: 1, Quantity: 1, Sizes: []string{"XXL"}}, "sizes"},
		{"blank size", AddLineInput{ProductID: 1, Quantity: 1, Sizes: []string{" "}}, "sizes"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, pub := newTestCartService(t)

			_, err := svc.AddLine(context.Background(), "s1", tc.input)

			appErr := requireAppError(t, err)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			assert.Contains(t, appErr.Fields, tc.wantField)
			assert.Zero(t, repo.Len())
			assert.Empty(t, pub.published())
		})
	}
}

func TestAddLine_SelectSizesMessageLocalized(t *testing.T) {
	svc, _, _ := newTestCartService(t)
	ctx := i18n.NewContext(context.Background(), i18n.Arabic)

	_, err := svc.AddLine(ctx, "s1", AddLineInput{ProductID: 1, Quantity: 2, Sizes: []string{"S"}})

	appErr := requireAppError(t, err)
	assert.Equal(t, i18n.T(i18n.Arabic, i18n.MsgSelectSizes), appErr.Message)
}

func TestAddLine_UnknownProduct(t *testing.T) {
	svc, _, _ := newTestCartService(t)

	_, err := svc.AddLine(context.Background(), "s1", AddLineInput{ProductID: 99, Quantity: 1, Sizes: []string{"S"}})

	appErr := requireAppError(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "Product not found", appErr.Message)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddLine_ConcurrentModification(t *testing.T) {
	repo := new(mockCartRepository)
	ctx := context.Background()
	existing := domain.NewCart("s1")
	existing.Version = 3

	repo.On("Get", ctx, "s1").Return(&existing, nil)
	repo.On("SaveIfVersion", ctx, mock.AnythingOfType("*domain.Cart"), 3).Return(false, nil)

	pub := &recordingPublisher{}
	producer := event.NewProducer(pub, logger.Discard())
	svc := NewCartService(repo, testCatalog(t), pricing.DefaultCodes(), producer, logger.Discard(), 10)

	_, err := svc.AddLine(ctx, "s1", AddLineInput{ProductID: 2, Quantity: 1, Sizes: []string{"L"}})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Empty(t, pub.published())
	repo.AssertExpectations(t)
}

func TestAddLine_PublishFailureIsNotFatal(t *testing.T) {
	repo := memory.NewCartRepository(0)
	pub := &recordingPublisher{err: errors.New("broker down")}
	producer := event.NewProducer(pub, logger.Discard())
	svc := NewCartService(repo, testCatalog(t), pricing.DefaultCodes(), producer, logger.Discard(), 10)

	view, err := svc.AddLine(context.Background(), "s1", AddLineInput{ProductID: 2, Quantity: 1, Sizes: []string{"L"}})

	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
}

// --- UpdateQuantity / RemoveLine / Clear ---

func TestUpdateQuantity_FloorsAtOne(t *testing.T) {
	svc, _, _ := newTestCartService(t)
	view := addShirts(t, svc, "s1", "S", "M")
	lineID := view.Lines[0].ID
	ctx := context.Background()

	view, err := svc.UpdateQuantity(ctx, "s1", lineID, UpdateQuantityInput{Delta: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, view.Lines[0].Quantity)

	view, err = svc.UpdateQuantity(ctx, "s1", lineID, UpdateQuantityInput{Delta: -10})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Lines[0].Quantity)
}

func TestUpdateQuantity_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		delta int
	}{
		{"max int", math.MaxInt},
		{"huge increment", 1_000_000_000},
		{"huge decrement", -1_000_000_000},
		{"min int", math.MinInt},
		{"above shop maximum", 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, pub := newTestCartService(t)
			view := addShirts(t, svc, "s1", "S", "M")
			lineID := view.Lines[0].ID

			_, err := svc.UpdateQuantity(context.Background(), "s1", lineID, UpdateQuantityInput{Delta: tc.delta})

			appErr := requireAppError(t, err)
			assert.Equal(t, http.StatusBadRequest, appErr.Status)
			assert.Contains(t, appErr.Fields, "delta")
			stored, err := repo.Get(context.Background(), "s1")
			require.NoError(t, err)
			assert.Equal(t, 2, stored.Lines[0].Quantity)
			assert.Len(t, pub.published(), 1)
		})
	}
}

func TestUpdateQuantity_UpToShopMaximum(t *testing.T) {
	svc, _, _ := newTestCartService(t)
	view := addShirts(t, svc, "s1", "S", "M")

	view, err := svc.UpdateQuantity(context.Background(), "s1", view.Lines[0].ID, UpdateQuantityInput{Delta: 8})

	require.NoError(t, err)
	assert.Equal(t, DefaultMaxQuantity, view.Lines[0].Quantity)
}

func TestUpdateQuantity_UnknownLine(t *testing.T) {
	svc, _, pub := newTestCartService(t)

	_, err := svc.UpdateQuantity(context.Background(), "s1", "nope", UpdateQuantityInput{Delta: 1})

	appErr := requireAppError(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "This item is no longer in your cart", appErr.Message)
	assert.Empty(t, pub.published())
}

func TestRemoveLine_UnknownLine(t *testing.T) {
	svc, _, _ := newTestCartService(t)
	addShirts(t, svc, "s1", "S")

	_, err := svc.RemoveLine(context.Background(), "s1", "1-S#9")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClear(t *testing.T) {
	svc, _, _ := newTestCartService(t)
	addShirts(t, svc, "s1", "S", "M")
	ctx := context.Background()
	_, err := svc.ApplyDiscount(ctx, "s1", ApplyDiscountInput{Code: "welcome10"})
	require.NoError(t, err)

	view, err := svc.Clear(ctx, "s1")

	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Nil(t, view.DiscountCode)
	assert.Zero(t, view.Count)
}

// --- Discounts ---

func TestApplyDiscount_Success(t *testing.T) {
	svc, _, _ := newTestCartService(t)
	addShirts(t, svc, "s1", "S", "M", "L", "S", "M")

	view, err := svc.ApplyDiscount(context.Background(), "s1", ApplyDiscountInput{Code: " summer20 "})

	require.NoError(t, err)
	require.NotNil(t, view.DiscountCode)
	assert.Equal(t, "SUMMER20", view.DiscountCode.Code)
	assert.Equal(t, "Discount code applied! You'll save 20% (up to $100)", view.Message)
	assert.Equal(t, "99.95", view.Summary.Subtotal.String())
	assert.Equal(t, "17.998", view.Summary.CodeDiscount.String())
	assert.Equal(t, "71.992", view.Summary.Total.String())
}

func TestApplyDiscount_ReplacesPreviousCode(t *testing.T) {
	svc, _, _ := newTestCartService(t)
	addShirts(t, svc, "s1", "S")
	ctx := context.Background()

	_, err := svc.ApplyDiscount(ctx, "s1", ApplyDiscountInput{Code: "WELCOME10"})
	require.NoError(t, err)
	view, err := svc.ApplyDiscount(ctx, "s1", ApplyDiscountInput{Code: "illusion25"})
	require.NoError(t, err)

	assert.Equal(t, "ILLUSION25", view.DiscountCode.Code)
	assert.Equal(t, 25, view.Summary.Code.Percentage)
}

func TestApplyDiscount_InvalidLeavesCartUnchanged(t *testing.T) {
	svc, repo, _ := newTestCartService(t)
	addShirts(t, svc, "s1", "S")
	ctx := context.Background()
	_, err := svc.ApplyDiscount(ctx, "s1", ApplyDiscountInput{Code: "WELCOME10"})
	require.NoError(t, err)
	before, err := repo.Get(ctx, "s1")
	require.NoError(t, err)

	_, err = svc.ApplyDiscount(ctx, "s1", ApplyDiscountInput{Code: "FREESTUFF"})

	appErr := requireAppError(t, err)
	assert.Equal(t, "INVALID_DISCOUNT_CODE", appErr.Code)
	assert.Equal(t, "Invalid discount code", appErr.Message)

	after, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, "WELCOME10", after.Discount.Code)
}

func TestApplyDiscount_Empty(t *testing.T) {
	svc, _, _ := newTestCartService(t)
	ctx := i18n.NewContext(context.Background(), i18n.Arabic)

	_, err := svc.ApplyDiscount(ctx, "s1", ApplyDiscountInput{Code: "  "})

	appErr := requireAppError(t, err)
	assert.Equal(t, "INVALID_DISCOUNT_CODE", appErr.Code)
	assert.Equal(t, i18n.T(i18n.Arabic, i18n.MsgDiscountCodeEmpty), appErr.Message)
}

func TestRemoveDiscount(t *testing.T) {
	svc, _, _ := newTestCartService(t)
	addShirts(t, svc, "s1", "S")
	ctx := context.Background()
	_, err := svc.ApplyDiscount(ctx, "s1", ApplyDiscountInput{Code: "WELCOME10"})
	require.NoError(t, err)

	view, err := svc.RemoveDiscount(ctx, "s1")

	require.NoError(t, err)
	assert.Nil(t, view.DiscountCode)
	assert.True(t, view.Summary.CodeDiscount.IsZero())
	assert.Equal(t, "Discount code removed", view.Message)

	// Removing again is not an error.
	_, err = svc.RemoveDiscount(ctx, "s1")
	assert.NoError(t, err)
}
