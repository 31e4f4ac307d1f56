package repository

import (
	"context"

	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
// Carts are keyed by session ID.
type CartRepository interface {
	// Get retrieves the cart of a session. A missing cart yields an
	// apperrors NotFound error.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// SaveIfVersion persists the cart only if the stored version equals
	// expectedVersion (0 when no cart is stored). On success cart.Version is
	// set to expectedVersion+1. It returns false when another writer got there
	// first.
	SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) (bool, error)
}
