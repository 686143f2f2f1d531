package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/onboardify/storecrawl/api/handler"
	"github.com/onboardify/storecrawl/api/middleware"
	"github.com/onboardify/storecrawl/cache"
	"github.com/onboardify/storecrawl/config"
	"github.com/onboardify/storecrawl/crawler"
	"github.com/onboardify/storecrawl/store"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(cr *crawler.Crawler, st *store.Store, cc *cache.Cache, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(cr, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Crawl
	protected.POST("/crawl", handler.Crawl(cr, cc))

	// Onboard
	protected.POST("/onboard", handler.Onboard(st, cfg.Catalog))

	// Catalog
	protected.GET("/stores", handler.ListStores(st))
	protected.GET("/stores/:id", handler.GetStore(st))
	protected.DELETE("/stores/:id", handler.DeleteStore(st))
	protected.GET("/menus", handler.ListMenus(st))
	protected.GET("/categories", handler.Categories())

	return r
}
