package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/velora/storefront/internal/catalog"
	"github.com/velora/storefront/internal/event"
	redisrepo "github.com/velora/storefront/internal/repository/redis"
)

// testEnv wires the services against miniredis and a disabled event producer.
type testEnv struct {
	redis     *redis.Client
	mini      *miniredis.Miniredis
	catalog   *catalog.Catalog
	carts     *CartService
	wishlists *WishlistService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cat, err := catalog.New()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	producer := event.NewProducer(nil, logger)

	return &testEnv{
		redis:     client,
		mini:      mr,
		catalog:   cat,
		carts:     NewCartService(redisrepo.NewCartRepository(client, 0), cat, producer, logger),
		wishlists: NewWishlistService(redisrepo.NewWishlistRepository(client, 0), cat, producer, logger),
	}
}

func (e *testEnv) logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (e *testEnv) producer() *event.Producer {
	return event.NewProducer(nil, e.logger())
}
