package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 5, cfg.Browser.MaxPages)
	assert.Equal(t, []string{"Font", "Media"}, cfg.Browser.BlockedResourceTypes)

	assert.Equal(t, 3*time.Second, cfg.Crawler.LoadSettle)
	assert.Equal(t, 2*time.Second, cfg.Crawler.MenuSettle)
	assert.Equal(t, 5*time.Second, cfg.Crawler.FrameWait)
	assert.Equal(t, 30, cfg.Crawler.MenuLimit)
	assert.Equal(t, 60*time.Second, cfg.Crawler.MaxTimeout)

	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, 2.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, "storecrawl.db", cfg.Catalog.Path)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORECRAWL_PORT", "9090")
	t.Setenv("STORECRAWL_HEADLESS", "false")
	t.Setenv("STORECRAWL_LOAD_SETTLE", "500ms")
	t.Setenv("STORECRAWL_MENU_LIMIT", "10")
	t.Setenv("STORECRAWL_API_KEYS", "key-a, key-b")
	t.Setenv("STORECRAWL_BLOCKED_RESOURCES", "Image,Font")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 500*time.Millisecond, cfg.Crawler.LoadSettle)
	assert.Equal(t, 10, cfg.Crawler.MenuLimit)
	assert.Equal(t, []string{"key-a", "key-b"}, cfg.Auth.APIKeys)
	assert.Equal(t, []string{"Image", "Font"}, cfg.Browser.BlockedResourceTypes)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("STORECRAWL_PORT", "not-a-number")
	t.Setenv("STORECRAWL_LOAD_SETTLE", "soon")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Crawler.LoadSettle)
}
