package crawler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/onboardify/storecrawl/models"
	"github.com/ysmood/gson"
)

// rodSession implements Session over one pooled rod page. The raw page
// reference (without request context) is kept for cleanup so releasing the
// session still works after the request context has expired.
type rodSession struct {
	raw     *rod.Page // unbound, cleanup only
	page    *rod.Page // context-bound top-level page
	scope   *rod.Page // page, or content frame after SwitchFrame
	release func()
	closed  bool
}

func (s *rodSession) Navigate(url string) error {
	return s.page.Navigate(url)
}

func (s *rodSession) Query(expr string) ([]Element, error) {
	els, err := s.scope.Elements(expr)
	if err != nil {
		return nil, err
	}
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = rodElement{el}
	}
	return out, nil
}

func (s *rodSession) SwitchFrame(expr string, timeout time.Duration) error {
	el, err := s.scope.Timeout(timeout).Element(expr)
	if err != nil {
		return err
	}
	frame, err := el.Frame()
	if err != nil {
		return err
	}
	// Frame() clones the element's page, which is the bounded lookup above.
	// Drop that deadline before adopting the frame as the query scope: the
	// timeout covers the frame appearing, not every query that follows.
	s.scope = frame.CancelTimeout()
	return nil
}

// Close navigates the raw page to about:blank (drops the DOM, preventing
// tab memory growth across pool reuses) and returns it to the pool.
func (s *rodSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.raw.Navigate("about:blank"); err != nil {
		slog.Warn("cleanup: failed to navigate to about:blank", "error", err)
	}
	s.release()
	return nil
}

// rodElement adapts *rod.Element to the Element capability surface.
type rodElement struct {
	el *rod.Element
}

func (e rodElement) Query(expr string) ([]Element, error) {
	els, err := e.el.Elements(expr)
	if err != nil {
		return nil, err
	}
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = rodElement{el}
	}
	return out, nil
}

func (e rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e rodElement) Attr(name string) (string, error) {
	val, err := e.el.Attribute(name)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil
	}
	return *val, nil
}

func (e rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

// newRodSession borrows a page from the pool and prepares it for one crawl:
// stealth injection and UA override before navigation, hijack router for
// resource blocking. The returned session owns the page until Close.
func (c *Crawler) newRodSession(ctx context.Context) (Session, error) {
	c.activePages.Add(1)

	page, err := c.pagePool.Get(func() (*rod.Page, error) {
		return c.browser.Page(proto.TargetCreateTarget{})
	})
	if err != nil {
		c.activePages.Add(-1)
		return nil, models.NewCrawlError(
			models.ErrCodeBrowserCrash,
			"failed to acquire page from pool",
			err,
		)
	}

	// Stealth must be installed before navigation to take effect.
	if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without stealth",
			"error", evalErr,
		)
	}

	if c.browserCfg.UserAgent != "" {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: proto.NetworkHeaders{
				"User-Agent": gson.New(c.browserCfg.UserAgent),
			},
		}.Call(page)
	}

	router := setupHijack(page, c.browserCfg.BlockedResourceTypes)

	bound := page.Context(ctx)
	release := func() {
		if router != nil {
			_ = router.Stop()
		}
		c.pagePool.Put(page)
		c.activePages.Add(-1)
	}

	return &rodSession{
		raw:     page,
		page:    bound,
		scope:   bound,
		release: release,
	}, nil
}

// configToProto maps human-readable config strings to Rod protocol resource types.
var configToProto = map[string]proto.NetworkResourceType{
	"Image":      proto.NetworkResourceTypeImage,
	"Stylesheet": proto.NetworkResourceTypeStylesheet,
	"Font":       proto.NetworkResourceTypeFont,
	"Media":      proto.NetworkResourceTypeMedia,
	"Script":     proto.NetworkResourceTypeScript,
}

// setupHijack installs a request interceptor blocking the configured
// resource types. Returns the running router so the session can stop it on
// release, or nil when there is nothing to block.
func setupHijack(page *rod.Page, blockedTypes []string) *rod.HijackRouter {
	blocked := make(map[proto.NetworkResourceType]struct{}, len(blockedTypes))
	for _, name := range blockedTypes {
		if rt, ok := configToProto[name]; ok {
			blocked[rt] = struct{}{}
		}
	}
	if len(blocked) == 0 {
		return nil
	}

	router := page.HijackRequests()
	_ = router.Add("*", "", func(ctx *rod.Hijack) {
		if _, shouldBlock := blocked[ctx.Request.Type()]; shouldBlock {
			ctx.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		ctx.ContinueRequest(&proto.FetchContinueRequest{})
	})

	// router.Run() blocks, so it must live in its own goroutine.
	go router.Run()

	return router
}
