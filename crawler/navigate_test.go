package crawler

import (
	"errors"
	"testing"
	"time"

	"github.com/onboardify/storecrawl/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCrawlerConfig() config.CrawlerConfig {
	return config.CrawlerConfig{
		LoadSettle: 3 * time.Second,
		MenuSettle: 2 * time.Second,
		FrameWait:  5 * time.Second,
		MenuLimit:  30,
	}
}

// sleepRecorder collects requested settle delays without actually sleeping.
func sleepRecorder(slept *[]time.Duration) sleepFunc {
	return func(d time.Duration) {
		*slept = append(*slept, d)
	}
}

func TestNavigatorOpen_NavigatesThenSettles(t *testing.T) {
	sess := newFakeSession(nil)
	var slept []time.Duration
	nav := newNavigator(sess, testCrawlerConfig(), sleepRecorder(&slept))

	err := nav.open("https://map.naver.com/p/entry/place/1")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://map.naver.com/p/entry/place/1"}, sess.navigated)
	assert.Equal(t, []time.Duration{3 * time.Second}, slept)
}

func TestNavigatorOpen_NavigationErrorSkipsSettle(t *testing.T) {
	sess := newFakeSession(nil)
	sess.navErr = errors.New("net::ERR_NAME_NOT_RESOLVED")
	var slept []time.Duration
	nav := newNavigator(sess, testCrawlerConfig(), sleepRecorder(&slept))

	err := nav.open("https://map.naver.com/p/entry/place/1")

	require.Error(t, err)
	assert.Empty(t, slept)
}

func TestSwitchToContentFrame_SecondCandidateFound(t *testing.T) {
	frame := &fakeRoot{results: map[string][]Element{
		"span.GHAhO": {textEl("프레임속가게")},
	}}
	sess := newFakeSession(nil)
	sess.frames = map[string]*fakeRoot{"iframe#searchIframe": frame}
	nav := newNavigator(sess, testCrawlerConfig(), sleepRecorder(new([]time.Duration)))

	nav.switchToContentFrame()

	assert.Equal(t, []string{"iframe#searchIframe"}, sess.switched)

	// Extraction queries now run against the frame subtree.
	rec := extractStoreInfo(sess)
	assert.Equal(t, "프레임속가게", rec.Name)
}

func TestSwitchToContentFrame_NoFrameFallsBackToTopDocument(t *testing.T) {
	top := &fakeRoot{results: map[string][]Element{
		"span.GHAhO": {textEl("탑레벨가게")},
	}}
	sess := newFakeSession(top)
	nav := newNavigator(sess, testCrawlerConfig(), sleepRecorder(new([]time.Duration)))

	nav.switchToContentFrame()

	assert.Empty(t, sess.switched)

	// Extraction still completes against the top-level document.
	rec := extractStoreInfo(sess)
	assert.Equal(t, "탑레벨가게", rec.Name)
}

func TestActivateMenuTab_ClicksCatalogCandidateWithLabel(t *testing.T) {
	home := textEl("홈")
	menu := textEl("메뉴")
	top := &fakeRoot{results: map[string][]Element{
		"a.tpj9w": {home, menu},
	}}
	sess := newFakeSession(top)
	var slept []time.Duration
	nav := newNavigator(sess, testCrawlerConfig(), sleepRecorder(&slept))

	nav.activateMenuTab()

	assert.Equal(t, 0, home.clicks)
	assert.Equal(t, 1, menu.clicks)
	assert.Equal(t, []time.Duration{2 * time.Second}, slept, "post-click settle must run")
}

func TestActivateMenuTab_ExhaustiveScanExactMatch(t *testing.T) {
	review := textEl("리뷰")
	menuish := textEl("메뉴보기") // contains the label but is not an exact match
	menu := textEl(" 메뉴 ")    // exact after trimming
	top := &fakeRoot{results: map[string][]Element{
		"a, button, span": {review, menuish, menu},
	}}
	sess := newFakeSession(top)
	var slept []time.Duration
	nav := newNavigator(sess, testCrawlerConfig(), sleepRecorder(&slept))

	nav.activateMenuTab()

	assert.Equal(t, 0, review.clicks)
	assert.Equal(t, 0, menuish.clicks)
	assert.Equal(t, 1, menu.clicks)
	assert.Len(t, slept, 1)
}

func TestActivateMenuTab_NoTabIsNotFatal(t *testing.T) {
	sess := newFakeSession(nil)
	var slept []time.Duration
	nav := newNavigator(sess, testCrawlerConfig(), sleepRecorder(&slept))

	nav.activateMenuTab()

	assert.Empty(t, slept, "no settle without a click")
}

func TestActivateMenuTab_ClickFailureFallsThrough(t *testing.T) {
	broken := &fakeElement{text: "메뉴", clickErr: errors.New("element detached")}
	working := textEl("메뉴")
	top := &fakeRoot{results: map[string][]Element{
		"a.tpj9w": {broken, working},
	}}
	sess := newFakeSession(top)
	var slept []time.Duration
	nav := newNavigator(sess, testCrawlerConfig(), sleepRecorder(&slept))

	nav.activateMenuTab()

	assert.Equal(t, 1, working.clicks)
	assert.Len(t, slept, 1)
}
