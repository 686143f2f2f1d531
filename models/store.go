package models

// StoreRecord is the result of one crawl: the store's scalar fields plus its
// menu list in DOM order. Records are built fresh per crawl and never mutated
// after the orchestrator hands them to the caller.
type StoreRecord struct {
	// Name may be empty when no selector candidate resolved it.
	Name string `json:"name"`

	// Address may be empty when no selector candidate resolved it.
	Address string `json:"address"`

	// Phone is the raw visible text, or the tel: link target with the
	// scheme stripped when the element carries no text.
	Phone string `json:"phone,omitempty"`

	Category string `json:"category,omitempty"`

	// BusinessHours is reserved; the crawler never sets it.
	BusinessHours string `json:"business_hours,omitempty"`

	ImageURL string `json:"image_url,omitempty"`

	// Menus preserves DOM order and is capped by the crawler config.
	Menus []MenuRecord `json:"menus"`
}

// MenuRecord is one extracted menu item. Items whose name could not be
// resolved are dropped before they reach the StoreRecord.
type MenuRecord struct {
	Name string `json:"name"`

	// Price is the digits-only parse of the price text; 0 when the text
	// carries no digits (e.g. "가격문의"). Filtering of zero-priced items
	// happens at onboarding, not here.
	Price int `json:"price"`

	Description string `json:"description,omitempty"`

	// ImageURL is empty when the item image was an inline data: URI
	// (placeholder icons, not real content).
	ImageURL string `json:"image_url,omitempty"`
}
