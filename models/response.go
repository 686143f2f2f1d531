package models

// CrawlResponse is the response for POST /api/v1/crawl.
type CrawlResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`

	// Store is populated on success; nil when the crawl produced nothing.
	Store *StoreRecord `json:"store,omitempty"`

	// CacheStatus indicates whether the record was served from the crawl
	// cache. Values: "hit", "miss", or empty (caching disabled).
	CacheStatus string `json:"cache_status,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// OnboardResponse is the response for POST /api/v1/onboard.
type OnboardResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	StoreID    string `json:"store_id,omitempty"`
	MenuCount  int    `json:"menu_count"`
	PreviewURL string `json:"preview_url,omitempty"`

	Error *ErrorDetail `json:"error,omitempty"`
}

// Category is one selectable delivery category.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status    string    `json:"status"` // "healthy" or "degraded"
	Uptime    string    `json:"uptime"`
	PoolStats PoolStats `json:"pool_stats"`
	Version   string    `json:"version"`
}

// PoolStats reports the state of the browser page pool.
type PoolStats struct {
	MaxPages    int `json:"max_pages"`
	ActivePages int `json:"active_pages"`
}
