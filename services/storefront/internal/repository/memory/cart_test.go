package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Georgesib05/comming-soon/pkg/errors"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
)

func sampleCart(sessionID string) *domain.Cart {
	line := domain.CartLine{
		ProductID: 2,
		Name:      "Visual Trap T-Shirt",
		Price:     decimal.RequireFromString("19.99"),
		Quantity:  1,
		Sizes:     []string{"L"},
	}
	c := domain.NewCart(sessionID).Add(line)
	return &c
}

func TestCartRepository_GetMissing(t *testing.T) {
	repo := NewCartRepository(0)
	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_SaveGet(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(time.Hour)

	cart := sampleCart("s1")
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "2-L#1", got.Lines[0].ID)

	// The store holds its own copy.
	got.Lines[0].Sizes[0] = "XS"
	again, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "L", again.Lines[0].Sizes[0])
}

func TestCartRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(time.Hour)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Save(ctx, sampleCart("s1")))
	assert.Equal(t, 1, repo.Len())

	now = now.Add(59 * time.Minute)
	_, err := repo.Get(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Zero(t, repo.Len())
}

func TestCartRepository_SaveIfVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(0)

	cart := sampleCart("s1")
	ok, err := repo.SaveIfVersion(ctx, cart, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, cart.Version)

	stale := *cart
	stale.Version = 0
	ok, err = repo.SaveIfVersion(ctx, &stale, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.SaveIfVersion(ctx, cart, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
}

func TestCartRepository_SaveIfVersion_OneWinnerPerVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(0)
	require.NoError(t, repo.Save(ctx, &domain.Cart{SessionID: "s1"}))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := sampleCart("s1")
			ok, err := repo.SaveIfVersion(ctx, c, 0)
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}
