// Package memory keeps carts in process memory. It backs development setups
// and tests; carts are lost on restart.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/Georgesib05/comming-soon/pkg/errors"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
)

type entry struct {
	data      []byte
	version   int
	expiresAt time.Time
}

// CartRepository is a concurrency-safe in-memory repository.CartRepository.
// Carts are stored serialized so callers never share memory with the store.
type CartRepository struct {
	mu    sync.Mutex
	carts map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

// NewCartRepository returns an empty store. A zero ttl keeps carts forever.
func NewCartRepository(ttl time.Duration) *CartRepository {
	return &CartRepository{
		carts: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (r *CartRepository) lookup(sessionID string) (entry, bool) {
	e, ok := r.carts[sessionID]
	if !ok {
		return entry{}, false
	}
	if !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt) {
		delete(r.carts, sessionID)
		return entry{}, false
	}
	return e, true
}

func (r *CartRepository) store(cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	e := entry{data: data, version: cart.Version}
	if r.ttl > 0 {
		e.expiresAt = r.now().Add(r.ttl)
	}
	r.carts[cart.SessionID] = e
	return nil
}

// Get returns a copy of the stored cart.
func (r *CartRepository) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.lookup(sessionID)
	if !ok {
		return nil, apperrors.NotFound("cart", sessionID)
	}
	var cart domain.Cart
	if err := json.Unmarshal(e.data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return &cart, nil
}

// Save stores the cart unconditionally.
func (r *CartRepository) Save(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store(cart)
}

// SaveIfVersion stores the cart when the stored version matches.
func (r *CartRepository) SaveIfVersion(_ context.Context, cart *domain.Cart, expectedVersion int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := 0
	if e, ok := r.lookup(cart.SessionID); ok {
		current = e.version
	}
	if current != expectedVersion {
		return false, nil
	}

	next := *cart
	next.Version = expectedVersion + 1
	if err := r.store(&next); err != nil {
		return false, err
	}
	cart.Version = next.Version
	return true, nil
}

// Len is the number of live carts.
func (r *CartRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id := range r.carts {
		if _, ok := r.lookup(id); ok {
			n++
		}
	}
	return n
}
