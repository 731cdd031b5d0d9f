// Package app wires together all dependencies and runs the storefront service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/velora/storefront/internal/auth"
	"github.com/velora/storefront/internal/catalog"
	"github.com/velora/storefront/internal/config"
	"github.com/velora/storefront/internal/event"
	handler "github.com/velora/storefront/internal/handler/http"
	redisrepo "github.com/velora/storefront/internal/repository/redis"
	"github.com/velora/storefront/internal/service"
	"github.com/velora/storefront/pkg/health"
	pkgkafka "github.com/velora/storefront/pkg/kafka"
	"github.com/velora/storefront/pkg/tracing"
)

// App holds the wired application.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
// Construction is explicit: everything the service uses is built here and
// passed down, with no ambient singletons.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Redis, pinged up front so a bad address fails fast.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Kafka producer; no brokers means events are dropped.
	var producer *pkgkafka.Producer
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaBrokers[0] != "" {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Warn("no kafka brokers configured, event publishing disabled")
	}
	eventProducer := event.NewProducer(producer, logger)

	// Tracing, off by default.
	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TraceSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Embedded product catalog.
	cat, err := catalog.New()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded", slog.Int("products", cat.Len()))

	// Repositories and services.
	cartRepo := redisrepo.NewCartRepository(rdb, time.Duration(cfg.CartTTL)*time.Hour)
	wishlistRepo := redisrepo.NewWishlistRepository(rdb, time.Duration(cfg.WishlistTTL)*time.Hour)
	userRepo := redisrepo.NewUserRepository(rdb)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenExpiry)

	carts := service.NewCartService(cartRepo, cat, eventProducer, logger)
	wishlists := service.NewWishlistService(wishlistRepo, cat, eventProducer, logger)
	checkout := service.NewCheckoutService(carts, eventProducer, logger, cfg.WhatsAppNumber, cfg.PaymentDelay)
	authSvc := service.NewAuthService(userRepo, tokens, eventProducer, logger, cfg.AuthLatency)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	router := handler.NewRouter(cat, carts, wishlists, checkout, authSvc, tokens, healthHandler, logger, handler.RouterConfig{
		Environment:    cfg.Environment,
		CORSOrigins:    cfg.CORSAllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.tracingShutdown != nil {
		if err := a.tracingShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
		}
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
