package crawler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/onboardify/storecrawl/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCrawler(factory sessionFactory) *Crawler {
	return &Crawler{
		crawlCfg:   testCrawlerConfig(),
		newSession: factory,
		sleep:      func(time.Duration) {},
	}
}

func TestCrawl_NavigationFailureReturnsAbsentAndReleasesOnce(t *testing.T) {
	sess := newFakeSession(nil)
	sess.navErr = errors.New("net::ERR_CONNECTION_REFUSED")
	cr := newTestCrawler(func(ctx context.Context) (Session, error) {
		return sess, nil
	})

	rec, err := cr.Crawl(context.Background(), "https://map.naver.com/p/entry/place/1")

	assert.Nil(t, rec)
	require.Error(t, err)
	var crawlErr *models.CrawlError
	require.ErrorAs(t, err, &crawlErr)
	assert.Equal(t, models.ErrCodeNavigation, crawlErr.Code)
	assert.Equal(t, 1, sess.closeCount, "session must be released exactly once")
}

func TestCrawl_DeadlineExceededMapsToTimeout(t *testing.T) {
	sess := newFakeSession(nil)
	sess.navErr = context.DeadlineExceeded
	cr := newTestCrawler(func(ctx context.Context) (Session, error) {
		return sess, nil
	})

	rec, err := cr.Crawl(context.Background(), "https://map.naver.com/p/entry/place/1")

	assert.Nil(t, rec)
	var crawlErr *models.CrawlError
	require.ErrorAs(t, err, &crawlErr)
	assert.Equal(t, models.ErrCodeTimeout, crawlErr.Code)
	assert.Equal(t, 1, sess.closeCount)
}

func TestCrawl_SessionFactoryFailurePropagates(t *testing.T) {
	wantErr := models.NewCrawlError(models.ErrCodeBrowserCrash, "failed to acquire page from pool", nil)
	cr := newTestCrawler(func(ctx context.Context) (Session, error) {
		return nil, wantErr
	})

	rec, err := cr.Crawl(context.Background(), "https://map.naver.com/p/entry/place/1")

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, wantErr)
}

func TestCrawl_HappyPath(t *testing.T) {
	item1 := &fakeElement{children: map[string][]Element{
		".lPzHi": {textEl("불고기")},
		".GXS1X": {textEl("15,000원")},
	}}
	item2 := &fakeElement{children: map[string][]Element{
		".GXS1X": {textEl("5,000원")}, // no name anywhere: dropped
	}}
	menuTab := textEl("메뉴")

	top := &fakeRoot{results: map[string][]Element{
		"span.GHAhO": {textEl("김밥천국")},
		"span.lnJFt": {textEl("분식")},
		"span.LDgIH": {textEl("서울 마포구 1")},
		"span.xlx7Q": {textEl("02-111-2222")},
		"a.tpj9w":    {menuTab},
		"li.E2jtL":   {item1, item2},
	}}
	sess := newFakeSession(top)
	cr := newTestCrawler(func(ctx context.Context) (Session, error) {
		return sess, nil
	})

	rec, err := cr.Crawl(context.Background(), "https://map.naver.com/p/search/김밥/place/123?foo=bar")

	require.NoError(t, err)
	require.NotNil(t, rec)

	// The session navigated to the canonical URL, not the raw input.
	assert.Equal(t, []string{"https://map.naver.com/p/entry/place/123"}, sess.navigated)

	assert.Equal(t, "김밥천국", rec.Name)
	assert.Equal(t, "분식", rec.Category)
	assert.Equal(t, "서울 마포구 1", rec.Address)
	assert.Equal(t, "02-111-2222", rec.Phone)

	assert.Equal(t, 1, menuTab.clicks)
	require.Len(t, rec.Menus, 1)
	assert.Equal(t, "불고기", rec.Menus[0].Name)
	assert.Equal(t, 15000, rec.Menus[0].Price)

	assert.Equal(t, 1, sess.closeCount)
}

func TestCrawl_NoFrameNoTabStillCompletes(t *testing.T) {
	top := &fakeRoot{results: map[string][]Element{
		"span.GHAhO": {textEl("프레임없는집")},
	}}
	sess := newFakeSession(top)
	cr := newTestCrawler(func(ctx context.Context) (Session, error) {
		return sess, nil
	})

	rec, err := cr.Crawl(context.Background(), "https://map.naver.com/p/entry/place/777")

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "프레임없는집", rec.Name)
	assert.Empty(t, rec.Menus)
	assert.Equal(t, 1, sess.closeCount)
}
