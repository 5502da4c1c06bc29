package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetcher   FetcherConfig
	Scraper   ScraperConfig
	Contact   ContactConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetcherConfig controls outbound HTTP fetching.
type FetcherConfig struct {
	// Timeout is the per-request deadline.
	Timeout time.Duration // default: 20s

	// HostInterval is the minimum spacing between requests to one host.
	HostInterval time.Duration // default: 1s
}

// ScraperConfig controls sponsor page discovery and extraction.
type ScraperConfig struct {
	// MaxPages caps how many pages are visited per club site.
	MaxPages int // default: 5

	// ExtraSelectors is a list of extra CSS selectors to scan for
	// sponsor sections, for sites with unusual markup.
	ExtraSelectors []string
}

// ContactConfig controls the contact discovery engine.
type ContactConfig struct {
	// APIKey enables the enrichment API strategies when set.
	APIKey string

	// APIBaseURL overrides the enrichment API endpoint (for testing).
	APIBaseURL string

	// APITimeout is the deadline for enrichment API calls.
	APITimeout time.Duration // default: 10s
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CacheConfig controls the scrape result cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached results.
	MaxEntries int // default: 1000

	// TTL is how long a cached result stays fresh.
	TTL time.Duration // default: 24h
}

// WebhookConfig controls async completion callbacks.
type WebhookConfig struct {
	// Secret signs webhook payloads when set.
	Secret string

	// Timeout is the deadline for webhook delivery.
	Timeout time.Duration // default: 10s

	// MaxRetries is how many times delivery is retried.
	MaxRetries int // default: 3
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SCOUT_HOST", "0.0.0.0"),
			Port: envIntOr("SCOUT_PORT", 8080),
			Mode: envOr("SCOUT_MODE", "release"),
		},
		Fetcher: FetcherConfig{
			Timeout:      envDurationOr("SCOUT_FETCH_TIMEOUT", 20*time.Second),
			HostInterval: envDurationOr("SCOUT_HOST_INTERVAL", time.Second),
		},
		Scraper: ScraperConfig{
			MaxPages:       envIntOr("SCOUT_MAX_PAGES", 5),
			ExtraSelectors: envSliceOr("SCOUT_EXTRA_SELECTORS", nil),
		},
		Contact: ContactConfig{
			APIKey:     os.Getenv("SCOUT_ENRICH_API_KEY"),
			APIBaseURL: os.Getenv("SCOUT_ENRICH_BASE_URL"),
			APITimeout: envDurationOr("SCOUT_ENRICH_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("SCOUT_AUTH_ENABLED", true),
			APIKeys: envSliceOr("SCOUT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SCOUT_RATE_RPS", 5.0),
			Burst:             envIntOr("SCOUT_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("SCOUT_CACHE_MAX_ENTRIES", 1000),
			TTL:        envDurationOr("SCOUT_CACHE_TTL", 24*time.Hour),
		},
		Webhook: WebhookConfig{
			Secret:     os.Getenv("SCOUT_WEBHOOK_SECRET"),
			Timeout:    envDurationOr("SCOUT_WEBHOOK_TIMEOUT", 10*time.Second),
			MaxRetries: envIntOr("SCOUT_WEBHOOK_RETRIES", 3),
		},
		Log: LogConfig{
			Level:  envOr("SCOUT_LOG_LEVEL", "info"),
			Format: envOr("SCOUT_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
