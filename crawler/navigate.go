package crawler

import (
	"log/slog"
	"strings"
	"time"

	"github.com/onboardify/storecrawl/config"
)

// sleepFunc is the settling-delay primitive. Production uses time.Sleep;
// tests inject a zero-delay variant.
type sleepFunc func(time.Duration)

// navigator walks the session through the page states:
//
//	Loaded → FrameSwitched (optional) → TabActivated (optional) → Ready
//
// Frame and tab misses are non-fatal: extraction then runs against the
// top-level document, or without menu content.
type navigator struct {
	sess  Session
	cfg   config.CrawlerConfig
	sleep sleepFunc
}

func newNavigator(sess Session, cfg config.CrawlerConfig, sleep sleepFunc) *navigator {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &navigator{sess: sess, cfg: cfg, sleep: sleep}
}

// open navigates to the target URL and waits the fixed post-load settle.
// The page exposes no reliable ready signal, so this is an unconditional
// sleep, not a condition poll.
func (n *navigator) open(url string) error {
	if err := n.sess.Navigate(url); err != nil {
		return err
	}
	n.sleep(n.cfg.LoadSettle)
	return nil
}

// switchToContentFrame tries the known content-frame ids in order, each
// with a bounded wait. Place details usually render inside entryIframe;
// when no candidate appears the crawl proceeds against the top document.
func (n *navigator) switchToContentFrame() {
	for _, sel := range frameCandidates {
		if err := n.sess.SwitchFrame(sel, n.cfg.FrameWait); err == nil {
			slog.Info("switched into content frame", "selector", sel)
			return
		}
	}
	slog.Warn("no content frame found, extracting from top-level document")
}

// activateMenuTab clicks the menu tab when one exists, then waits the fixed
// post-click settle for the injected menu list. A missing tab is not an
// error; menu items may simply be absent.
func (n *navigator) activateMenuTab() {
	if !n.clickMenuTab() {
		slog.Warn("menu tab not found, menu items may be absent")
		return
	}
	n.sleep(n.cfg.MenuSettle)
}

// clickMenuTab first tries the catalog candidates filtered by label text,
// then falls back to scanning every interactive element for an exact label
// match. Returns whether a click landed.
func (n *navigator) clickMenuTab() bool {
	for _, tab := range resolveMany(n.sess, catalog[FieldMenuTab]) {
		txt, err := tab.Text()
		if err != nil {
			continue
		}
		if strings.Contains(strings.TrimSpace(txt), menuTabLabel) {
			if err := tab.Click(); err != nil {
				slog.Warn("menu tab click failed", "error", err)
				continue
			}
			slog.Info("menu tab activated")
			return true
		}
	}

	// Tab markup drifts often; scan everything clickable for the exact label.
	els, err := n.sess.Query(interactiveElements)
	if err != nil {
		return false
	}
	for _, el := range els {
		txt, err := el.Text()
		if err != nil {
			continue
		}
		if strings.TrimSpace(txt) != menuTabLabel {
			continue
		}
		if err := el.Click(); err == nil {
			slog.Info("menu tab activated via exhaustive scan")
			return true
		}
	}
	return false
}
