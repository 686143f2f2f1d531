// Package onboard maps crawled Naver store data onto the delivery catalog:
// category translation, identifier generation, and catalog row construction.
package onboard

import (
	"strings"

	"github.com/google/uuid"
	"github.com/onboardify/storecrawl/models"
	"github.com/onboardify/storecrawl/store"
)

// categoryMapping pairs a Korean category keyword with its catalog value.
// Matching is substring-based against the crawled Naver category and the
// first hit wins, so more specific keywords come first.
type categoryMapping struct {
	keyword string
	value   string
}

var categoryMappings = []categoryMapping{
	{"치킨", "chicken"},
	{"피자", "pizza"},
	{"한식", "korean"},
	{"중식", "chinese"},
	{"중국집", "chinese"},
	{"일식", "japanese"},
	{"일본음식", "japanese"},
	{"양식", "western"},
	{"분식", "snack"},
	{"카페", "cafe"},
	{"디저트", "cafe"},
	{"패스트푸드", "fastfood"},
	{"햄버거", "fastfood"},
}

// defaultCategory is used when the Naver category is empty or unmapped.
const defaultCategory = "korean"

// placeholderImageURL stands in for menus crawled without a photo.
const placeholderImageURL = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=400&h=300&fit=crop"

// MapCategory translates a crawled Naver category string into a catalog
// category value.
func MapCategory(naverCategory string) string {
	if naverCategory == "" {
		return defaultCategory
	}
	for _, m := range categoryMappings {
		if strings.Contains(naverCategory, m.keyword) {
			return m.value
		}
	}
	return defaultCategory
}

// Categories lists the selectable catalog categories for the frontend.
func Categories() []models.Category {
	return []models.Category{
		{Value: "chicken", Label: "치킨", Emoji: "🍗"},
		{Value: "pizza", Label: "피자", Emoji: "🍕"},
		{Value: "korean", Label: "한식", Emoji: "🍚"},
		{Value: "chinese", Label: "중식", Emoji: "🥡"},
		{Value: "japanese", Label: "일식", Emoji: "🍣"},
		{Value: "western", Label: "양식", Emoji: "🍝"},
		{Value: "snack", Label: "분식", Emoji: "🍜"},
		{Value: "cafe", Label: "카페/디저트", Emoji: "☕"},
		{Value: "fastfood", Label: "패스트푸드", Emoji: "🍔"},
	}
}

// StoreID slugs a store name into a stable catalog identifier: lowercase,
// separators to hyphens, parentheses dropped, capped at 30 characters.
func StoreID(name string) string {
	id := strings.ToLower(name)
	id = strings.ReplaceAll(id, " ", "-")
	id = strings.ReplaceAll(id, "/", "-")
	id = strings.ReplaceAll(id, "(", "")
	id = strings.ReplaceAll(id, ")", "")

	runes := []rune(id)
	if len(runes) > 30 {
		runes = runes[:30]
	}
	return string(runes)
}

// MenuID generates a fresh catalog menu identifier.
func MenuID() string {
	return "menu-" + uuid.NewString()[:8]
}

// BuildMenuRow shapes one crawled menu item into a catalog menu row.
// original_price carries the assumed delivery-app markup the direct-order
// flow saves the customer.
func BuildMenuRow(rec models.StoreRecord, menu models.MenuRecord, category, storeID string) store.MenuRow {
	imageURL := menu.ImageURL
	if imageURL == "" {
		imageURL = placeholderImageURL
	}

	phone := rec.Phone
	if phone == "" {
		phone = "미등록"
	}

	description := menu.Description
	if description == "" {
		description = rec.Name + "의 " + menu.Name
	}

	return store.MenuRow{
		ID:             MenuID(),
		RestaurantID:   storeID,
		RestaurantName: rec.Name,
		MenuName:       menu.Name,
		Price:          menu.Price,
		OriginalPrice:  int(float64(menu.Price) * 1.15),
		ImageURL:       imageURL,
		Category:       category,
		PhoneNumber:    phone,
		Description:    description,
		Address:        rec.Address,
	}
}
