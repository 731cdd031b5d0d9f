// Package repository defines the persistence interfaces for the storefront's
// snapshot stores. Each store is one key-value entry holding the full
// serialized state, overwritten wholesale on every mutation.
package repository

import (
	"context"

	"github.com/velora/storefront/internal/domain"
)

// CartRepository persists whole-cart snapshots keyed by user ID.
type CartRepository interface {
	// Get retrieves a user's cart snapshot. Returns an error wrapping
	// apperrors.ErrNotFound when no snapshot exists, or one wrapping
	// apperrors.ErrSnapshotCorrupt when the stored snapshot fails to parse.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// Save overwrites the user's cart snapshot.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the user's cart snapshot.
	Delete(ctx context.Context, userID string) error
}

// WishlistRepository persists whole-wishlist snapshots keyed by user ID,
// with the same error contract as CartRepository.
type WishlistRepository interface {
	Get(ctx context.Context, userID string) (*domain.Wishlist, error)
	Save(ctx context.Context, wishlist *domain.Wishlist) error
	Delete(ctx context.Context, userID string) error
}

// UserRepository persists mock-auth account records keyed by email.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, email string) error
}
