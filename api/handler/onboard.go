package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onboardify/storecrawl/config"
	"github.com/onboardify/storecrawl/models"
	"github.com/onboardify/storecrawl/onboard"
	"github.com/onboardify/storecrawl/store"
)

// Onboard returns a handler for POST /api/v1/onboard.
//
// Maps the crawled category onto the catalog taxonomy, filters out menu
// items without a name or a positive price, and writes the store with its
// menu set in one transaction. Re-onboarding replaces the previous menus.
func Onboard(st *store.Store, cfg config.CatalogConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.OnboardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.OnboardResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		category := req.CategoryMapping
		if category == "" {
			category = onboard.MapCategory(req.Store.Category)
		}
		storeID := onboard.StoreID(req.Store.Name)

		menus := make([]store.MenuRow, 0, len(req.Store.Menus))
		for _, m := range req.Store.Menus {
			if m.Name == "" || m.Price <= 0 {
				continue
			}
			menus = append(menus, onboard.BuildMenuRow(req.Store, m, category, storeID))
		}

		if len(menus) == 0 {
			c.JSON(http.StatusOK, models.OnboardResponse{
				Success:   false,
				Message:   "no onboardable menus: each item needs a name and a positive price",
				MenuCount: 0,
			})
			return
		}

		row := store.StoreRow{
			ID:             storeID,
			Name:           req.Store.Name,
			Address:        req.Store.Address,
			Phone:          req.Store.Phone,
			Category:       category,
			ImageURL:       req.Store.ImageURL,
			BusinessNumber: req.BusinessNumber,
		}

		if err := st.Upsert(c.Request.Context(), row, menus); err != nil {
			respondError(c, models.NewCrawlError(
				models.ErrCodeStorage,
				"failed to persist onboarded store",
				err,
			))
			return
		}

		resp := models.OnboardResponse{
			Success:   true,
			Message:   fmt.Sprintf("store '%s' onboarded", req.Store.Name),
			StoreID:   storeID,
			MenuCount: len(menus),
		}
		if cfg.PreviewBaseURL != "" {
			resp.PreviewURL = cfg.PreviewBaseURL + "/restaurant/" + storeID
		}
		c.JSON(http.StatusOK, resp)
	}
}
