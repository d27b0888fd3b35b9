package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache backends accepted by CACHE_BACKEND.
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string

	CacheBackend string
	RedisURI     string
	CacheTTL     time.Duration
	CacheSize    int

	StripeSecretKey     string
	StripeWebhookSecret string
	BaseURL             string
	TestPayEnabled      bool

	KafkaBrokers      []string
	MailTopic         string
	MailDefaultSender string
}

const (
	defaultRunAddress        = ":8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultTokenTTL          = 24 * time.Hour
	defaultShutdownTimeout   = 10 * time.Second
	defaultLogLevel          = "info"
	defaultCacheTTL          = 5 * time.Minute
	defaultCacheSize         = 1024
	defaultBaseURL           = "http://localhost:8080"
	defaultMailTopic         = "storefront.mail"
	defaultMailDefaultSender = "no-reply@storefront.local"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		JWTSecret:           getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:            getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:            getString(lookup, "LOG_LEVEL", defaultLogLevel),
		CacheBackend:        strings.ToLower(getString(lookup, "CACHE_BACKEND", CacheBackendNone)),
		RedisURI:            getString(lookup, "REDIS_URI", ""),
		CacheTTL:            getDuration(lookup, "CACHE_TTL", defaultCacheTTL),
		CacheSize:           getInt(lookup, "CACHE_SIZE", defaultCacheSize),
		StripeSecretKey:     getString(lookup, "STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getString(lookup, "STRIPE_WEBHOOK_SECRET", ""),
		BaseURL:             getString(lookup, "BASE_WEBSITE_URL", defaultBaseURL),
		TestPayEnabled:      getBool(lookup, "TEST_PAY_ENABLED", false),
		KafkaBrokers:        splitList(getString(lookup, "KAFKA_BROKERS", "")),
		MailTopic:           getString(lookup, "MAIL_TOPIC", defaultMailTopic),
		MailDefaultSender:   getString(lookup, "MAIL_DEFAULT_SENDER", defaultMailDefaultSender),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		cacheTTLStr        = cfg.CacheTTL.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.CacheBackend, "cache", cfg.CacheBackend, "Cache backend: none, memory or redis")
	fs.StringVar(&cfg.RedisURI, "redis", cfg.RedisURI, "Redis URL for the redis cache backend")
	fs.StringVar(&cacheTTLStr, "cache-ttl", cacheTTLStr, "Default lifetime of cached results")
	fs.IntVar(&cfg.CacheSize, "cache-size", cfg.CacheSize, "Entries kept by the memory cache backend")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Public URL used in payment redirects and mails")
	fs.BoolVar(&cfg.TestPayEnabled, "test-pay", cfg.TestPayEnabled, "Expose the test payment route")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.CacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid cache ttl: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.CacheTTL < 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.CacheBackend = strings.ToLower(cfg.CacheBackend)

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	switch cfg.CacheBackend {
	case CacheBackendNone, CacheBackendMemory:
	case CacheBackendRedis:
		if cfg.RedisURI == "" {
			return nil, fmt.Errorf("redis URI must be provided for the redis cache backend")
		}
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
