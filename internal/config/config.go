package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/velora/storefront/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort        int           `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Snapshot TTLs in hours; zero keeps snapshots forever.
	CartTTL     int `env:"CART_TTL_HOURS" envDefault:"168"`
	WishlistTTL int `env:"WISHLIST_TTL_HOURS" envDefault:"0"`

	// Kafka. Leave brokers empty to disable event publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Auth
	JWTSecret   string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenExpiry time.Duration `env:"TOKEN_EXPIRY" envDefault:"24h"`

	// Simulated latency for the mocked auth flow and payment gateways.
	AuthLatency  time.Duration `env:"AUTH_SIMULATED_LATENCY" envDefault:"800ms"`
	PaymentDelay time.Duration `env:"PAYMENT_SIMULATED_DELAY" envDefault:"1500ms"`

	// WhatsApp handoff number, international digits only.
	WhatsAppNumber string `env:"WHATSAPP_NUMBER" envDefault:"15551234567"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Rate limiting, per client IP.
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// Tracing
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartTTL < 0 {
		return fmt.Errorf("invalid cart TTL: %d", c.CartTTL)
	}
	if c.WishlistTTL < 0 {
		return fmt.Errorf("invalid wishlist TTL: %d", c.WishlistTTL)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret must not be empty")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("invalid rate limit rps: %d", c.RateLimitRPS)
	}
	if c.WhatsAppNumber == "" {
		return fmt.Errorf("whatsapp number must not be empty")
	}
	return nil
}
