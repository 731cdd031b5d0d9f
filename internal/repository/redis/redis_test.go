package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/storefront/internal/domain"
	apperrors "github.com/velora/storefront/pkg/errors"
)

func setup(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestCartRepository_RoundTrip(t *testing.T) {
	_, client := setup(t)
	repo := NewCartRepository(client, time.Hour)
	ctx := context.Background()

	cart := domain.NewCart("user-1")
	cart.Items = []domain.CartItem{
		{Product: domain.Product{ID: 1, Name: "Aurora Table Lamp", PriceCents: 7900}, Quantity: 2},
	}

	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, int64(7900), got.Items[0].Product.PriceCents)
}

func TestCartRepository_GetMissing(t *testing.T) {
	_, client := setup(t)
	repo := NewCartRepository(client, 0)

	_, err := repo.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_GetCorrupt(t *testing.T) {
	mr, client := setup(t)
	repo := NewCartRepository(client, 0)

	require.NoError(t, mr.Set("cart:user-1", "{broken json"))

	_, err := repo.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrSnapshotCorrupt)
}

func TestCartRepository_Delete(t *testing.T) {
	_, client := setup(t)
	repo := NewCartRepository(client, 0)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.NewCart("user-1")))
	require.NoError(t, repo.Delete(ctx, "user-1"))

	_, err := repo.Get(ctx, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting an absent snapshot is not an error.
	assert.NoError(t, repo.Delete(ctx, "user-1"))
}

func TestCartRepository_TTL(t *testing.T) {
	mr, client := setup(t)
	repo := NewCartRepository(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.NewCart("user-1")))

	mr.FastForward(2 * time.Hour)

	_, err := repo.Get(ctx, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_ZeroTTLNeverExpires(t *testing.T) {
	mr, client := setup(t)
	repo := NewCartRepository(client, 0)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.NewCart("user-1")))

	mr.FastForward(1000 * time.Hour)

	_, err := repo.Get(ctx, "user-1")
	assert.NoError(t, err)
}

func TestWishlistRepository_RoundTrip(t *testing.T) {
	_, client := setup(t)
	repo := NewWishlistRepository(client, 0)
	ctx := context.Background()

	wishlist := domain.NewWishlist("user-1")
	wishlist.Items = []domain.Product{{ID: 9, Name: "Ember Ceramic Vase"}}

	require.NoError(t, repo.Save(ctx, wishlist))

	got, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 9, got.Items[0].ID)
}

func TestWishlistRepository_GetCorrupt(t *testing.T) {
	mr, client := setup(t)
	repo := NewWishlistRepository(client, 0)

	require.NoError(t, mr.Set("wishlist:user-1", "]["))

	_, err := repo.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrSnapshotCorrupt)
}

func TestWishlistRepository_KeySpaceIsSeparateFromCart(t *testing.T) {
	_, client := setup(t)
	carts := NewCartRepository(client, 0)
	wishlists := NewWishlistRepository(client, 0)
	ctx := context.Background()

	require.NoError(t, carts.Save(ctx, domain.NewCart("user-1")))
	require.NoError(t, wishlists.Save(ctx, domain.NewWishlist("user-1")))

	require.NoError(t, carts.Delete(ctx, "user-1"))

	_, err := wishlists.Get(ctx, "user-1")
	assert.NoError(t, err)
}

func TestUserRepository_RoundTrip(t *testing.T) {
	_, client := setup(t)
	repo := NewUserRepository(client)
	ctx := context.Background()

	user := &domain.User{
		ID:           "u-1",
		Email:        "nadia@example.com",
		Name:         "Nadia",
		PasswordHash: "$2a$12$fakehash",
	}
	require.NoError(t, repo.Save(ctx, user))

	got, err := repo.GetByEmail(ctx, "nadia@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, "$2a$12$fakehash", got.PasswordHash)
}

func TestUserRepository_EmailIsCaseInsensitive(t *testing.T) {
	_, client := setup(t)
	repo := NewUserRepository(client)
	ctx := context.Background()

	user := &domain.User{ID: "u-1", Email: "Nadia@Example.com", Name: "Nadia"}
	require.NoError(t, repo.Save(ctx, user))

	got, err := repo.GetByEmail(ctx, "nadia@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)

	got, err = repo.GetByEmail(ctx, "  NADIA@EXAMPLE.COM ")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
}

func TestUserRepository_GetMissing(t *testing.T) {
	_, client := setup(t)
	repo := NewUserRepository(client)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	_, client := setup(t)
	repo := NewUserRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.User{ID: "u-1", Email: "nadia@example.com"}))
	require.NoError(t, repo.Delete(ctx, "nadia@example.com"))

	_, err := repo.GetByEmail(ctx, "nadia@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
