package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onboardify/storecrawl/models"
	"github.com/onboardify/storecrawl/onboard"
	"github.com/onboardify/storecrawl/store"
)

// ListStores returns a handler for GET /api/v1/stores.
func ListStores(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		stores, err := st.List(c.Request.Context())
		if err != nil {
			respondError(c, models.NewCrawlError(models.ErrCodeStorage, "failed to list stores", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"stores":  stores,
			"count":   len(stores),
		})
	}
}

// GetStore returns a handler for GET /api/v1/stores/:id.
func GetStore(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, menus, err := st.Get(c.Request.Context(), c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, models.NewCrawlError(models.ErrCodeNotFound, "store not found", err))
			return
		}
		if err != nil {
			respondError(c, models.NewCrawlError(models.ErrCodeStorage, "failed to load store", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"store":   row,
			"menus":   menus,
		})
	}
}

// DeleteStore returns a handler for DELETE /api/v1/stores/:id.
func DeleteStore(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		err := st.Delete(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, models.NewCrawlError(models.ErrCodeNotFound, "store not found", err))
			return
		}
		if err != nil {
			respondError(c, models.NewCrawlError(models.ErrCodeStorage, "failed to delete store", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "store '" + id + "' deleted",
		})
	}
}

// ListMenus returns a handler for GET /api/v1/menus?category=.
func ListMenus(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		menus, err := st.ListMenus(c.Request.Context(), c.Query("category"))
		if err != nil {
			respondError(c, models.NewCrawlError(models.ErrCodeStorage, "failed to list menus", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"menus":   menus,
			"count":   len(menus),
		})
	}
}

// Categories returns a handler for GET /api/v1/categories.
func Categories() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"categories": onboard.Categories(),
		})
	}
}
