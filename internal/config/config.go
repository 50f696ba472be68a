// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends selectable with STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StoreBackend selects where planner data lives: memory, postgres or redis.
	StoreBackend string

	// DatabaseURL is the Postgres connection string. Required for the postgres backend.
	DatabaseURL string

	// RedisURL is the Redis connection URL. Required for the redis backend;
	// with any backend it also relays change events between processes.
	RedisURL string

	// StoreQuotaBytes caps the memory backend. Defaults to 5 MiB.
	StoreQuotaBytes int

	// JWTSecret signs identity tokens. Required.
	JWTSecret string

	// TokenTTL is the lifetime of issued tokens. Defaults to 24h.
	TokenTTL time.Duration

	// UnsplashAccessKey enables landmark cover photos. Optional.
	UnsplashAccessKey string

	// GeoapifyAPIKey enables geocoding and nearby places. Optional.
	GeoapifyAPIKey string

	// ExternalTimeout bounds each outbound API call. Defaults to 5s.
	ExternalTimeout time.Duration

	// ExternalRatePerSec limits outbound calls per client. Defaults to 5.
	ExternalRatePerSec float64

	// MaxBodyBytes limits request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RateLimitPerSec and RateLimitBurst throttle requests per client address.
	// Defaults are 20 and 40; a zero rate disables the limiter.
	RateLimitPerSec float64
	RateLimitBurst  int
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is loaded first when present; it never
// overrides variables already set. Returns an error listing every required
// variable that is not set and every value that cannot be parsed.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: reading .env: %w", err)
	}

	p := parser{}
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StoreBackend:       strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		StoreQuotaBytes:    p.int("STORE_QUOTA_BYTES", 5<<20),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTL:           p.duration("TOKEN_TTL", 24*time.Hour),
		UnsplashAccessKey:  os.Getenv("UNSPLASH_ACCESS_KEY"),
		GeoapifyAPIKey:     os.Getenv("GEOAPIFY_API_KEY"),
		ExternalTimeout:    p.duration("EXTERNAL_TIMEOUT", 5*time.Second),
		ExternalRatePerSec: p.float("EXTERNAL_RATE_PER_SEC", 5),
		MaxBodyBytes:       int64(p.int("MAX_BODY_BYTES", 1<<20)),
		RateLimitPerSec:    p.float("RATE_LIMIT_PER_SEC", 20),
		RateLimitBurst:     p.int("RATE_LIMIT_BURST", 40),
	}

	var missing []string
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case BackendRedis:
		if cfg.RedisURL == "" {
			missing = append(missing, "REDIS_URL")
		}
	default:
		p.invalid = append(p.invalid, fmt.Sprintf("STORE_BACKEND=%q (want memory, postgres or redis)", cfg.StoreBackend))
	}

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	if len(p.invalid) > 0 {
		problems = append(problems, "invalid environment variables: "+strings.Join(p.invalid, ", "))
	}
	if len(problems) > 0 {
		return Config{}, errors.New(strings.Join(problems, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parser reads typed variables and collects the ones that fail to parse.
type parser struct {
	invalid []string
}

func (p *parser) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		p.invalid = append(p.invalid, fmt.Sprintf("%s=%q", key, v))
		return fallback
	}
	return n
}

func (p *parser) float(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		p.invalid = append(p.invalid, fmt.Sprintf("%s=%q", key, v))
		return fallback
	}
	return f
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		p.invalid = append(p.invalid, fmt.Sprintf("%s=%q", key, v))
		return fallback
	}
	return d
}
