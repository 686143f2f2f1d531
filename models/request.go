package models

// CrawlRequest is the payload for POST /api/v1/crawl.
type CrawlRequest struct {
	// NaverMapURL is the store page to crawl. Any known Naver Map URL
	// shape is accepted; normalization happens inside the crawler.
	NaverMapURL string `json:"naver_map_url" binding:"required"`

	// BusinessNumber is carried through for later onboarding; the crawl
	// itself does not use it.
	BusinessNumber string `json:"business_number,omitempty"`
}

// OnboardRequest is the payload for POST /api/v1/onboard.
type OnboardRequest struct {
	// Store is a previously crawled record, usually edited by the sales
	// agent before submission.
	Store StoreRecord `json:"store" binding:"required"`

	BusinessNumber string `json:"business_number,omitempty"`

	// CategoryMapping overrides the automatic Naver-category mapping.
	CategoryMapping string `json:"category_mapping,omitempty"`
}
