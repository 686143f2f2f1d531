package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onboardify/storecrawl/models"
)

// errorResponse is the generic error body for non-crawl endpoints.
type errorResponse struct {
	Success bool                `json:"success"`
	Error   *models.ErrorDetail `json:"error"`
}

// respondError maps a CrawlError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, err error) {
	var crawlErr *models.CrawlError
	if !errors.As(err, &crawlErr) {
		crawlErr = models.NewCrawlError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(crawlErr), errorResponse{
		Success: false,
		Error:   crawlErr.ToDetail(),
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.CrawlError) int {
	switch e.Code {
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation, models.ErrCodeBrowserCrash:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeNotFound:
		return http.StatusNotFound // 404
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
