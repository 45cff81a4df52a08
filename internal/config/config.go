package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	FrontendURL     string
	ShutdownTimeout time.Duration
	LogLevel        string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthStrategy string
	JWTSecret    string
	TokenTTL     time.Duration
	AdminToken   string

	StripeSecretKey string
	StripeCurrency  string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string
	AdminEmails  []string

	AMQPURL      string
	AMQPExchange string
	KafkaBrokers []string
	KafkaTopic   string

	NotifyWorkers   int
	NotifyQueueSize int
	OrphanOrderTTL  time.Duration
	SweepInterval   time.Duration
}

const (
	defaultRunAddress      = ":4000"
	defaultFrontendURL     = "http://localhost:5173"
	defaultRedisAddr       = "localhost:6379"
	defaultAuthStrategy    = "jwt"
	defaultJWTSecret       = "change-me-in-production"
	defaultTokenTTL        = 7 * 24 * time.Hour
	defaultStripeCurrency  = "inr"
	defaultSMTPPort        = 587
	defaultAMQPExchange    = "order.events"
	defaultKafkaTopic      = "order-events"
	defaultNotifyWorkers   = 2
	defaultNotifyQueueSize = 256
	defaultOrphanOrderTTL  = time.Hour
	defaultSweepInterval   = 10 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
)

// MinOrphanOrderTTL is the shortest checkout session Stripe issues. Unpaid
// orders must outlive their session, so shorter TTLs are rejected.
const MinOrphanOrderTTL = 30 * time.Minute

// GatewayEnabled reports whether online payments can be offered.
func (c *Config) GatewayEnabled() bool {
	return c.StripeSecretKey != ""
}

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		FrontendURL:     getString(lookup, "FRONTEND_URL", defaultFrontendURL),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
		RedisAddr:       getString(lookup, "REDIS_ADDR", defaultRedisAddr),
		RedisPassword:   getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:         getInt(lookup, "REDIS_DB", 0),
		AuthStrategy:    getString(lookup, "AUTH_STRATEGY", defaultAuthStrategy),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		AdminToken:      getString(lookup, "ADMIN_TOKEN", ""),
		StripeSecretKey: strings.TrimSpace(getString(lookup, "STRIPE_SECRET_KEY", "")),
		StripeCurrency:  getString(lookup, "STRIPE_CURRENCY", defaultStripeCurrency),
		SMTPHost:        getString(lookup, "SMTP_HOST", ""),
		SMTPPort:        getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		SMTPUser:        getString(lookup, "SMTP_USER", ""),
		SMTPPassword:    getString(lookup, "SMTP_PASSWORD", ""),
		EmailFrom:       getString(lookup, "EMAIL_FROM", ""),
		AdminEmails:     getList(lookup, "ADMIN_EMAIL"),
		AMQPURL:         getString(lookup, "AMQP_URL", ""),
		AMQPExchange:    getString(lookup, "AMQP_EXCHANGE", defaultAMQPExchange),
		KafkaBrokers:    getList(lookup, "KAFKA_BROKERS"),
		KafkaTopic:      getString(lookup, "KAFKA_TOPIC", defaultKafkaTopic),
		NotifyWorkers:   getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifyQueueSize: getInt(lookup, "NOTIFY_QUEUE", defaultNotifyQueueSize),
		OrphanOrderTTL:  getDuration(lookup, "ORPHAN_ORDER_TTL", defaultOrphanOrderTTL),
		SweepInterval:   getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
	}

	fs := flag.NewFlagSet("eatsprint", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		orphanTTLStr       = cfg.OrphanOrderTTL.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for carts")
	fs.StringVar(&cfg.FrontendURL, "frontend", cfg.FrontendURL, "Storefront base URL for payment redirects")
	fs.StringVar(&cfg.AuthStrategy, "auth", cfg.AuthStrategy, "Token strategy: jwt or hmac")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AdminToken, "admin-token", cfg.AdminToken, "Secret guarding admin endpoints")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of notification workers")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Auth token lifetime")
	fs.StringVar(&orphanTTLStr, "orphan-ttl", orphanTTLStr, "Age after which unpaid online orders are purged")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between orphan order sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.OrphanOrderTTL, err = time.ParseDuration(orphanTTLStr); err != nil {
		return nil, fmt.Errorf("invalid orphan ttl: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.SMTPUser
	}

	if cfg.SMTPPort <= 0 {
		cfg.SMTPPort = defaultSMTPPort
	}

	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}

	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = defaultNotifyQueueSize
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.OrphanOrderTTL <= 0 {
		cfg.OrphanOrderTTL = defaultOrphanOrderTTL
	}

	if cfg.OrphanOrderTTL < MinOrphanOrderTTL {
		return nil, fmt.Errorf("orphan ttl %v is shorter than checkout session lifetime %v", cfg.OrphanOrderTTL, MinOrphanOrderTTL)
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	cfg.AuthStrategy = strings.ToLower(strings.TrimSpace(cfg.AuthStrategy))
	if cfg.AuthStrategy != "jwt" && cfg.AuthStrategy != "hmac" {
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.AuthStrategy)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
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

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getList(lookup envLookup, key string) []string {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
