// Package redis implements the snapshot repositories on Redis. Every store
// serializes its full state as one JSON value per key and overwrites it on
// each save; there are no partial writes.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/velora/storefront/internal/domain"
	apperrors "github.com/velora/storefront/pkg/errors"
)

const cartKeyPrefix = "cart:"

// CartRepository stores whole-cart JSON snapshots under cart:<userID>.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a Redis-backed cart repository. A zero ttl means
// snapshots never expire.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{client: client, ttl: ttl}
}

// Get retrieves a cart snapshot by user ID.
func (r *CartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	key := cartKeyPrefix + userID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", userID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, apperrors.SnapshotCorrupt(key, err)
	}

	return &cart, nil
}

// Save overwrites the cart snapshot for the cart's user.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	key := cartKeyPrefix + cart.UserID

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}

// Delete removes the cart snapshot for the given user.
func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, cartKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}
