package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/onboardify/storecrawl/cache"
	"github.com/onboardify/storecrawl/crawler"
	"github.com/onboardify/storecrawl/models"
)

// Crawler is the single capability this layer consumes from the crawl core.
type Crawler interface {
	Crawl(ctx context.Context, url string) (*models.StoreRecord, error)
}

// Crawl returns a handler for POST /api/v1/crawl.
//
// Flow: validate the URL is a Naver Map link → serve from the crawl cache
// when fresh → run the browser crawl → shape the response. A crawl that
// completes but resolves no store name is reported as a failure so agents
// don't onboard empty records.
func Crawl(cr Crawler, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CrawlRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.CrawlResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		if !strings.Contains(req.NaverMapURL, "map.naver.com") {
			c.JSON(http.StatusOK, models.CrawlResponse{
				Success: false,
				Message: "not a valid Naver Map URL (map.naver.com)",
			})
			return
		}

		cacheKey := cache.Key(crawler.NormalizeURL(req.NaverMapURL))
		if cc != nil {
			if rec, hit := cc.Get(cacheKey); hit {
				c.JSON(http.StatusOK, models.CrawlResponse{
					Success:     true,
					Message:     crawlSummary(rec),
					Store:       rec,
					CacheStatus: "hit",
				})
				return
			}
		}

		rec, err := cr.Crawl(c.Request.Context(), req.NaverMapURL)
		if err != nil {
			respondError(c, err)
			return
		}

		if rec.Name == "" {
			c.JSON(http.StatusOK, models.CrawlResponse{
				Success: false,
				Message: "store name not found; check that the URL is a store detail page",
			})
			return
		}

		resp := models.CrawlResponse{
			Success: true,
			Message: crawlSummary(rec),
			Store:   rec,
		}
		if cc != nil {
			cc.Set(cacheKey, rec)
			resp.CacheStatus = "miss"
		}
		c.JSON(http.StatusOK, resp)
	}
}

func crawlSummary(rec *models.StoreRecord) string {
	return fmt.Sprintf("crawled '%s' with %d menu items", rec.Name, len(rec.Menus))
}
