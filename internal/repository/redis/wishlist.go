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

const wishlistKeyPrefix = "wishlist:"

// WishlistRepository stores whole-wishlist JSON snapshots under
// wishlist:<userID>, in its own key space independent of the cart.
type WishlistRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWishlistRepository creates a Redis-backed wishlist repository.
func NewWishlistRepository(client *redis.Client, ttl time.Duration) *WishlistRepository {
	return &WishlistRepository{client: client, ttl: ttl}
}

// Get retrieves a wishlist snapshot by user ID.
func (r *WishlistRepository) Get(ctx context.Context, userID string) (*domain.Wishlist, error) {
	key := wishlistKeyPrefix + userID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("wishlist", userID)
		}
		return nil, fmt.Errorf("redis get wishlist: %w", err)
	}

	var wishlist domain.Wishlist
	if err := json.Unmarshal(data, &wishlist); err != nil {
		return nil, apperrors.SnapshotCorrupt(key, err)
	}

	return &wishlist, nil
}

// Save overwrites the wishlist snapshot for the wishlist's user.
func (r *WishlistRepository) Save(ctx context.Context, wishlist *domain.Wishlist) error {
	key := wishlistKeyPrefix + wishlist.UserID

	data, err := json.Marshal(wishlist)
	if err != nil {
		return fmt.Errorf("marshal wishlist: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set wishlist: %w", err)
	}

	return nil
}

// Delete removes the wishlist snapshot for the given user.
func (r *WishlistRepository) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, wishlistKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("redis del wishlist: %w", err)
	}
	return nil
}
