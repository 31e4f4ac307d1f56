package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/Georgesib05/comming-soon/pkg/errors"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
)

const keyPrefix = "storefront:cart:"

// CartRepository implements repository.CartRepository using Redis. Carts are
// stored as JSON and expire after the configured TTL of inactivity.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

// Get retrieves the cart of a session from Redis.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("cart", sessionID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return &cart, nil
}

// Save persists a cart to Redis with the configured TTL.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, key(cart.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

// SaveIfVersion writes the cart inside a WATCH transaction so that a
// concurrent writer to the same key aborts the write.
func (r *CartRepository) SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) (bool, error) {
	k := key(cart.SessionID)
	saved := false

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current := 0
		data, err := tx.Get(ctx, k).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("redis get cart: %w", err)
		default:
			var stored domain.Cart
			if err := json.Unmarshal(data, &stored); err != nil {
				return fmt.Errorf("unmarshal cart: %w", err)
			}
			current = stored.Version
		}
		if current != expectedVersion {
			return nil
		}

		next := *cart
		next.Version = expectedVersion + 1
		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal cart: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, payload, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		cart.Version = next.Version
		saved = true
		return nil
	}, k)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis save cart: %w", err)
	}
	return saved, nil
}
