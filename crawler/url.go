package crawler

import (
	"net/url"
	"regexp"
	"strings"
)

// placeIDPatterns extract the numeric place identifier from the URL shapes
// Naver Map produces: search-result links, entry links, restaurant deep
// links. First match wins.
var placeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/place/(\d+)`),
	regexp.MustCompile(`/restaurant/(\d+)`),
	regexp.MustCompile(`/entry/place/(\d+)`),
}

// safeQueryParams are the only query parameters kept when no place ID is
// found. Everything else (placePath and other nested serialized state)
// breaks navigation and is dropped.
var safeQueryParams = []string{"c", "searchCoord"}

// NormalizeURL converts any Naver Map URL variant into a form the browser
// can navigate reliably. It is total: malformed input comes back trimmed
// but otherwise unchanged, never an error.
//
// URLs carrying a place ID collapse to the canonical entry shape:
//
//	https://map.naver.com/p/entry/place/<id>
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)

	for _, re := range placeIDPatterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			return "https://map.naver.com/p/entry/place/" + m[1]
		}
	}

	// No place ID: structural cleanup only.
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return raw
	}

	q := u.Query()
	kept := url.Values{}
	for _, k := range safeQueryParams {
		if v := q.Get(k); v != "" {
			kept.Set(k, v)
		}
	}

	clean := u.Scheme + "://" + u.Host + u.Path
	if enc := kept.Encode(); enc != "" {
		clean += "?" + enc
	}
	return clean
}
