package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/onboardify/storecrawl/models"
)

// StatsSource reports browser pool utilisation for the health endpoint.
type StatsSource interface {
	Stats() models.PoolStats
}

// Health returns a handler for GET /api/v1/health.
//
// Reports pool utilisation and degrades status when > 80% of pages are active.
func Health(src StatsSource, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := src.Stats()

		status := "healthy"
		if stats.MaxPages > 0 && stats.ActivePages > int(float64(stats.MaxPages)*0.8) {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:    status,
			Uptime:    time.Since(startTime).Round(time.Second).String(),
			PoolStats: stats,
			Version:   "0.1.0",
		})
	}
}
