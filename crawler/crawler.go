package crawler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/onboardify/storecrawl/config"
	"github.com/onboardify/storecrawl/models"
)

// sessionFactory produces one exclusive browser session per crawl.
// Production binds this to newRodSession; tests inject fakes.
type sessionFactory func(ctx context.Context) (Session, error)

// Crawler manages the global browser lifecycle and the page pool, and runs
// the end-to-end crawl sequence. It is safe for concurrent use: each Crawl
// call owns an independent session.
type Crawler struct {
	browser     *rod.Browser
	pagePool    rod.Pool[rod.Page]
	browserCfg  config.BrowserConfig
	crawlCfg    config.CrawlerConfig
	activePages atomic.Int32

	newSession sessionFactory
	sleep      sleepFunc
}

// New launches a headless browser and initialises the reusable page pool.
func New(browserCfg config.BrowserConfig, crawlCfg config.CrawlerConfig) (*Crawler, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}
	if browserCfg.Proxy != "" {
		l = l.Proxy(browserCfg.Proxy)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewCrawlError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewCrawlError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	pool := rod.NewPagePool(browserCfg.MaxPages)
	slog.Info("page pool created", "maxPages", browserCfg.MaxPages)

	c := &Crawler{
		browser:    browser,
		pagePool:   pool,
		browserCfg: browserCfg,
		crawlCfg:   crawlCfg,
		sleep:      time.Sleep,
	}
	c.newSession = c.newRodSession
	return c, nil
}

// Stats returns a snapshot of the pool's current state.
func (c *Crawler) Stats() models.PoolStats {
	return models.PoolStats{
		MaxPages:    c.browserCfg.MaxPages,
		ActivePages: int(c.activePages.Load()),
	}
}

// Close drains the page pool and kills the browser process.
// Call this on graceful shutdown to prevent zombie Chrome processes.
func (c *Crawler) Close() {
	slog.Info("crawler shutting down: draining page pool")
	c.pagePool.Cleanup(func(p *rod.Page) {
		_ = p.Close()
	})
	slog.Info("crawler shutting down: closing browser")
	c.browser.MustClose()
	slog.Info("crawler shutdown complete")
}

// Crawl runs the full extraction sequence for one store URL:
//
//  1. Normalize URL        – collapse every known variant to a stable shape
//  2. Acquire session      – exclusive page, released on every exit path
//  3. Navigate + settle    – fixed delay, the page has no ready signal
//  4. Frame switch         – entryIframe/searchIframe, non-fatal on miss
//  5. Store info           – scalar fields, each independently optional
//  6. Menu tab + settle    – click when present, non-fatal on miss
//  7. Menu extraction      – capped list, per-item fault isolation
//
// Partial tolerance lives inside steps 4–7; a fault at the top level
// (navigation, driver crash) returns a nil record and a typed error after
// the session is released.
func (c *Crawler) Crawl(ctx context.Context, rawURL string) (*models.StoreRecord, error) {
	target := NormalizeURL(rawURL)
	slog.Info("crawl started", "url", target)

	if c.crawlCfg.MaxTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.crawlCfg.MaxTimeout)
		defer cancel()
	}

	sess, err := c.newSession(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	nav := newNavigator(sess, c.crawlCfg, c.sleep)

	if err := nav.open(target); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, models.NewCrawlError(
				models.ErrCodeTimeout,
				"crawl exceeded the configured timeout",
				err,
			)
		}
		return nil, models.NewCrawlError(
			models.ErrCodeNavigation,
			"navigation to store page failed",
			err,
		)
	}

	nav.switchToContentFrame()

	record := extractStoreInfo(sess)
	slog.Info("store info extracted", "name", record.Name)

	nav.activateMenuTab()
	record.Menus = extractMenus(sess, c.crawlCfg.MenuLimit)
	slog.Info("crawl finished", "name", record.Name, "menus", len(record.Menus))

	return record, nil
}
