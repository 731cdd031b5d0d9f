package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/velora/storefront/pkg/errors"
)

func TestWishlistService_Get_EmptyForNewUser(t *testing.T) {
	env := newTestEnv(t)

	wishlist, err := env.wishlists.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, wishlist.Items)
	assert.Equal(t, 0, wishlist.ItemCount())
}

func TestWishlistService_Add(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	wishlist, err := env.wishlists.Add(ctx, "user-1", 9)
	require.NoError(t, err)
	require.Len(t, wishlist.Items, 1)
	assert.Equal(t, 9, wishlist.Items[0].ID)
}

func TestWishlistService_Add_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.wishlists.Add(ctx, "user-1", 9)
	require.NoError(t, err)
	wishlist, err := env.wishlists.Add(ctx, "user-1", 9)
	require.NoError(t, err)

	assert.Len(t, wishlist.Items, 1)
}

func TestWishlistService_Add_AllowsOutOfStockProducts(t *testing.T) {
	env := newTestEnv(t)

	// Product 3 is out of stock; the wishlist accepts it anyway.
	wishlist, err := env.wishlists.Add(context.Background(), "user-1", 3)
	require.NoError(t, err)
	require.Len(t, wishlist.Items, 1)
	assert.False(t, wishlist.Items[0].InStock)
}

func TestWishlistService_Add_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.wishlists.Add(context.Background(), "user-1", 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWishlistService_Add_PreservesInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, id := range []int{7, 2, 11} {
		_, err := env.wishlists.Add(ctx, "user-1", id)
		require.NoError(t, err)
	}
	wishlist, err := env.wishlists.Get(ctx, "user-1")
	require.NoError(t, err)

	require.Len(t, wishlist.Items, 3)
	assert.Equal(t, 7, wishlist.Items[0].ID)
	assert.Equal(t, 2, wishlist.Items[1].ID)
	assert.Equal(t, 11, wishlist.Items[2].ID)
}

func TestWishlistService_Remove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.wishlists.Add(ctx, "user-1", 7)
	require.NoError(t, err)
	_, err = env.wishlists.Add(ctx, "user-1", 2)
	require.NoError(t, err)

	wishlist, err := env.wishlists.Remove(ctx, "user-1", 7)
	require.NoError(t, err)
	require.Len(t, wishlist.Items, 1)
	assert.Equal(t, 2, wishlist.Items[0].ID)

	// Removing an absent product is a no-op.
	wishlist, err = env.wishlists.Remove(ctx, "user-1", 7)
	require.NoError(t, err)
	assert.Len(t, wishlist.Items, 1)
}

func TestWishlistService_Contains(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.wishlists.Add(ctx, "user-1", 9)
	require.NoError(t, err)

	saved, err := env.wishlists.Contains(ctx, "user-1", 9)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = env.wishlists.Contains(ctx, "user-1", 1)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestWishlistService_Clear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.wishlists.Add(ctx, "user-1", 9)
	require.NoError(t, err)

	require.NoError(t, env.wishlists.Clear(ctx, "user-1"))

	wishlist, err := env.wishlists.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, wishlist.Items)
}

func TestWishlistService_IndependentOfCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.carts.AddItem(ctx, "user-1", 1)
	require.NoError(t, err)
	_, err = env.wishlists.Add(ctx, "user-1", 1)
	require.NoError(t, err)

	require.NoError(t, env.carts.Clear(ctx, "user-1"))

	wishlist, err := env.wishlists.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, wishlist.Items, 1)
}

func TestWishlistService_Get_CorruptSnapshotRehydratesEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.mini.Set("wishlist:user-1", "not json at all"))

	wishlist, err := env.wishlists.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, wishlist.Items)
}
