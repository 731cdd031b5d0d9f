package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velora/storefront/internal/auth"
	"github.com/velora/storefront/internal/catalog"
	"github.com/velora/storefront/internal/service"
	"github.com/velora/storefront/pkg/health"
	"github.com/velora/storefront/pkg/middleware"
)

// RouterConfig carries everything the router needs beyond the services.
type RouterConfig struct {
	Environment    string
	CORSOrigins    []string
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter creates a chi router with all storefront routes registered.
// Catalog endpoints are public; the cart, wishlist, and checkout stores are
// keyed by the authenticated user, so they sit behind the bearer middleware.
func NewRouter(
	cat *catalog.Catalog,
	carts *service.CartService,
	wishlists *service.WishlistService,
	checkout *service.CheckoutService,
	authSvc *service.AuthService,
	tokens *auth.TokenManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.Environment = cfg.Environment
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowedOrigins = cfg.CORSOrigins
	}
	r.Use(middleware.CORS(corsCfg))

	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
	}

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	productHandler := NewProductHandler(cat, logger)
	cartHandler := NewCartHandler(carts, logger)
	wishlistHandler := NewWishlistHandler(wishlists, logger)
	checkoutHandler := NewCheckoutHandler(checkout, logger)
	authHandler := NewAuthHandler(authSvc, logger)

	authenticate := Authenticate(tokens)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public catalog
		r.Get("/products", productHandler.List)
		r.Get("/products/suggest", productHandler.Suggest)
		r.Get("/products/{id}", productHandler.Get)
		r.Get("/categories", productHandler.Categories)

		// Mocked auth
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)
		})

		// User stores
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/cart", cartHandler.Get)
			r.Delete("/cart", cartHandler.Clear)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{productId}", cartHandler.UpdateQuantity)
			r.Delete("/cart/items/{productId}", cartHandler.RemoveItem)

			r.Get("/wishlist", wishlistHandler.Get)
			r.Delete("/wishlist", wishlistHandler.Clear)
			r.Get("/wishlist/{productId}", wishlistHandler.Contains)
			r.Put("/wishlist/{productId}", wishlistHandler.Add)
			r.Delete("/wishlist/{productId}", wishlistHandler.Remove)

			r.Post("/checkout", checkoutHandler.PlaceOrder)
		})
	})

	return r
}
