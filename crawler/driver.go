package crawler

import "time"

// The crawler core drives the browser through this capability surface only,
// never through rod directly. Tests substitute fake DOMs; production uses
// the rod-backed implementation in rod.go.

// QueryRoot is any scope a CSS query can run under: the session's current
// document (or content frame), or a single element's subtree.
type QueryRoot interface {
	// Query returns every element matching the CSS expression under this
	// root. No match is ([], nil); an invalid or unsupported expression
	// returns an error, which resolution treats as a miss.
	Query(expr string) ([]Element, error)
}

// Element is an opaque handle to one DOM element. Handles stay valid only
// while the owning Session is open; none may be retained past Close.
type Element interface {
	QueryRoot

	// Text returns the element's visible text.
	Text() (string, error)

	// Attr returns the named attribute's value, or "" when absent.
	Attr(name string) (string, error)

	// Click activates the element.
	Click() error
}

// Session is one exclusive browser context owned by a single crawl call.
type Session interface {
	QueryRoot

	// Navigate loads the given URL in the session's page.
	Navigate(url string) error

	// SwitchFrame rescopes Query to the subtree of the first frame
	// matching expr, waiting up to timeout for it to appear.
	SwitchFrame(expr string, timeout time.Duration) error

	// Close releases the session. Idempotent.
	Close() error
}
