package crawler

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// fakeElement is a scripted Element for driver-level tests.
type fakeElement struct {
	text     string
	textErr  error
	attrs    map[string]string
	children map[string][]Element
	clickErr error
	clicks   int
}

func (e *fakeElement) Query(expr string) ([]Element, error) {
	return e.children[expr], nil
}

func (e *fakeElement) Text() (string, error) {
	return e.text, e.textErr
}

func (e *fakeElement) Attr(name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) Click() error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicks++
	return nil
}

func textEl(text string) *fakeElement {
	return &fakeElement{text: text}
}

// fakeRoot is a scripted QueryRoot: expression → canned results or error.
type fakeRoot struct {
	results map[string][]Element
	errs    map[string]error
	queried []string
}

func (r *fakeRoot) Query(expr string) ([]Element, error) {
	r.queried = append(r.queried, expr)
	if err := r.errs[expr]; err != nil {
		return nil, err
	}
	return r.results[expr], nil
}

// fakeSession is a scripted Session. SwitchFrame rescopes queries to the
// named frame's root when one is scripted, mirroring the rod session.
type fakeSession struct {
	top        *fakeRoot
	scope      *fakeRoot
	frames     map[string]*fakeRoot
	navErr     error
	navigated  []string
	switched   []string
	closeCount int
}

func newFakeSession(top *fakeRoot) *fakeSession {
	if top == nil {
		top = &fakeRoot{}
	}
	return &fakeSession{top: top, scope: top}
}

func (s *fakeSession) Query(expr string) ([]Element, error) {
	return s.scope.Query(expr)
}

func (s *fakeSession) Navigate(url string) error {
	if s.navErr != nil {
		return s.navErr
	}
	s.navigated = append(s.navigated, url)
	return nil
}

func (s *fakeSession) SwitchFrame(expr string, _ time.Duration) error {
	frame, ok := s.frames[expr]
	if !ok {
		return errFrameNotFound
	}
	s.switched = append(s.switched, expr)
	s.scope = frame
	return nil
}

func (s *fakeSession) Close() error {
	s.closeCount++
	return nil
}

var errFrameNotFound = &frameNotFoundError{}

type frameNotFoundError struct{}

func (*frameNotFoundError) Error() string { return "frame not found" }

// gqRoot backs extractor tests with a real HTML DOM via goquery, so the
// fixtures can mirror actual place-page markup.
type gqRoot struct {
	sel *goquery.Selection
}

func newGQDoc(t *testing.T, html string) gqRoot {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return gqRoot{sel: doc.Selection}
}

func (r gqRoot) Query(expr string) ([]Element, error) {
	found := r.sel.Find(expr)
	out := make([]Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, gqElement{sel: s})
	})
	return out, nil
}

type gqElement struct {
	sel *goquery.Selection
}

func (e gqElement) Query(expr string) ([]Element, error) {
	found := e.sel.Find(expr)
	out := make([]Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, gqElement{sel: s})
	})
	return out, nil
}

func (e gqElement) Text() (string, error) {
	return e.sel.Text(), nil
}

func (e gqElement) Attr(name string) (string, error) {
	return e.sel.AttrOr(name, ""), nil
}

func (e gqElement) Click() error {
	return nil
}
