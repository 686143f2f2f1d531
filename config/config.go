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
	Browser   BrowserConfig
	Crawler   CrawlerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent crawl sessions).
	MaxPages int // default: 5

	// Proxy is the proxy URL for all browser traffic.
	Proxy string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// UserAgent overrides the browser's user agent string.
	UserAgent string

	// BlockedResourceTypes lists resource types the hijack router blocks.
	// Image requests stay enabled: blocked images keep their src attribute
	// but Naver occasionally lazy-injects menu photos after load.
	// default: ["Font", "Media"]
	BlockedResourceTypes []string
}

// CrawlerConfig controls navigation and extraction behavior.
type CrawlerConfig struct {
	// LoadSettle is the fixed delay after navigation. The map page gives
	// no reliable ready signal, so this is an unconditional sleep.
	LoadSettle time.Duration // default: 3s

	// MenuSettle is the fixed delay after clicking the menu tab, giving
	// the dynamically injected menu list time to render.
	MenuSettle time.Duration // default: 2s

	// FrameWait bounds how long to wait for each content-frame candidate.
	FrameWait time.Duration // default: 5s

	// MenuLimit caps how many menu items are extracted per store.
	MenuLimit int // default: 30

	// MaxTimeout bounds one whole crawl, settles included. Zero disables
	// the deadline.
	MaxTimeout time.Duration // default: 60s
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per API key.
	Burst int // default: 5
}

// CatalogConfig controls the onboarded-store catalog.
type CatalogConfig struct {
	// Path is the SQLite database file.
	Path string // default: "storecrawl.db"

	// PreviewBaseURL, when set, is used to build the direct-order preview
	// link returned after onboarding.
	PreviewBaseURL string
}

// CacheConfig controls the crawl result cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached crawl results.
	MaxEntries int // default: 500

	// TTL is how long a cached crawl result stays valid. Zero disables
	// the cache entirely.
	TTL time.Duration // default: 10m
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
			Host: envOr("STORECRAWL_HOST", "0.0.0.0"),
			Port: envIntOr("STORECRAWL_PORT", 8080),
			Mode: envOr("STORECRAWL_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("STORECRAWL_HEADLESS", true),
			MaxPages:   envIntOr("STORECRAWL_MAX_PAGES", 5),
			Proxy:      os.Getenv("STORECRAWL_PROXY"),
			NoSandbox:  envBoolOr("STORECRAWL_NO_SANDBOX", false),
			BrowserBin: os.Getenv("STORECRAWL_BROWSER_BIN"),
			UserAgent:  os.Getenv("STORECRAWL_USER_AGENT"),
			BlockedResourceTypes: envSliceOr("STORECRAWL_BLOCKED_RESOURCES", []string{
				"Font", "Media",
			}),
		},
		Crawler: CrawlerConfig{
			LoadSettle: envDurationOr("STORECRAWL_LOAD_SETTLE", 3*time.Second),
			MenuSettle: envDurationOr("STORECRAWL_MENU_SETTLE", 2*time.Second),
			FrameWait:  envDurationOr("STORECRAWL_FRAME_WAIT", 5*time.Second),
			MenuLimit:  envIntOr("STORECRAWL_MENU_LIMIT", 30),
			MaxTimeout: envDurationOr("STORECRAWL_MAX_TIMEOUT", 60*time.Second),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("STORECRAWL_AUTH_ENABLED", false),
			APIKeys: envSliceOr("STORECRAWL_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("STORECRAWL_RATE_RPS", 2.0),
			Burst:             envIntOr("STORECRAWL_RATE_BURST", 5),
		},
		Catalog: CatalogConfig{
			Path:           envOr("STORECRAWL_DB_PATH", "storecrawl.db"),
			PreviewBaseURL: os.Getenv("STORECRAWL_PREVIEW_BASE_URL"),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("STORECRAWL_CACHE_MAX_ENTRIES", 500),
			TTL:        envDurationOr("STORECRAWL_CACHE_TTL", 10*time.Minute),
		},
		Log: LogConfig{
			Level:  envOr("STORECRAWL_LOG_LEVEL", "info"),
			Format: envOr("STORECRAWL_LOG_FORMAT", "json"),
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
