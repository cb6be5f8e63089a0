package crawler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopscan/internal/models"
	"shopscan/pkg/artifact"
	"shopscan/pkg/browser"
	"shopscan/pkg/config"
	"shopscan/pkg/pager"
	"shopscan/pkg/store"
)

const listingPage = `<html><body><main>
<a href="/shops/1"><div><h3>맛있는 식당</h3><p>서울특별시 강남구 테헤란로 1</p><span>식당/카페</span><p>VERY 단가 1,200원 결제비율 50%</p></div></a>
<a href="/shops/2"><div><h3>헤어살롱</h3><p>서울 마포구 와우산로 2</p><span>미용</span></div></a>
<a href="/shops/3"><div><h3>맛있는 식당</h3><p>서울특별시 강남구 테헤란로 1</p><span>식당/카페</span></div></a>
<a href="/shops/4"><div><h3>Kopi Kenangan</h3><p>Jl. Sudirman, Jakarta, Indonesia</p></div></a>
<a href="/shops/5"><div><h3>해운대 횟집</h3><p>부산광역시 해운대구 우동 5</p><span>식당/카페</span></div></a>
<button>더보기</button>
</main></body></html>`

type fakeBrowser struct {
	html       string
	height     int64
	moreClicks int // clicks before the button disappears

	pages    map[string]string // detail pages by URL
	pageErrs map[string]error
	visits   []string

	navErr    error
	htmlErr   error
	shotErr   error
	findErr   error
	clicks    int
	closed    bool
	navigated string
}

func (b *fakeBrowser) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	b.navigated = url
	b.visits = append(b.visits, url)
	if err, ok := b.pageErrs[url]; ok {
		return err
	}
	return b.navErr
}

func (b *fakeBrowser) ScrollToBottom(ctx context.Context) error { return nil }

func (b *fakeBrowser) ScrollHeight(ctx context.Context) (int64, error) { return b.height, nil }

func (b *fakeBrowser) FindMore(ctx context.Context, phrases []string) (bool, error) {
	if b.findErr != nil {
		return false, b.findErr
	}
	return b.clicks < b.moreClicks, nil
}

func (b *fakeBrowser) ClickMore(ctx context.Context, phrases []string) (bool, error) {
	b.clicks++
	b.height += 500
	return true, nil
}

func (b *fakeBrowser) HTML(ctx context.Context) (string, error) {
	if b.htmlErr != nil {
		return "", b.htmlErr
	}
	if page, ok := b.pages[b.navigated]; ok {
		return page, nil
	}
	return b.html, nil
}

func (b *fakeBrowser) Screenshot(ctx context.Context) ([]byte, error) {
	if b.shotErr != nil {
		return nil, b.shotErr
	}
	return []byte("png"), nil
}

func (b *fakeBrowser) Close() error {
	b.closed = true
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Browser.TargetURL = "https://example.com/shops"
	cfg.Output.DatasetPath = filepath.Join(dir, "data", "shops.json")
	cfg.Output.ScreenshotPath = filepath.Join(dir, "debug-screenshot.png")
	cfg.Output.HTMLPath = filepath.Join(dir, "debug-page.html")
	return cfg
}

func newTestCrawler(cfg *config.Config, b *fakeBrowser, opts ...Option) *Crawler {
	opts = append([]Option{
		WithLauncher(func(ctx context.Context, _ browser.Options) (Browser, error) { return b, nil }),
		WithWait(func(ctx context.Context, _ time.Duration) error { return ctx.Err() }),
	}, opts...)
	return New(cfg, opts...)
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	b := &fakeBrowser{html: listingPage, height: 1000, moreClicks: 2}

	res, err := newTestCrawler(cfg, b).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, b.closed, "session must be released")
	assert.Equal(t, "https://example.com/shops", b.navigated)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 2, res.Clicks)
	assert.Equal(t, pager.StopNoButton, res.StopReason)
	assert.Equal(t, 5, res.Extracted)
	assert.Equal(t, 4, res.Unique)
	assert.Equal(t, 4, res.Classified)
	assert.Zero(t, res.Detailed, "detail pages are opt-in")
	assert.Len(t, b.visits, 1)

	shops, err := artifact.ReadDataset(cfg.Output.DatasetPath)
	require.NoError(t, err)
	require.Len(t, shops, 4)

	first := shops[0]
	assert.Equal(t, "맛있는 식당", first.Name)
	assert.Equal(t, "식당/카페", first.Category)
	assert.Equal(t, "1,200원", first.VeryPrice)
	assert.Equal(t, "50%", first.PaymentRatio)
	assert.Equal(t, "/shops/1", first.Link, "first occurrence wins")

	for _, s := range shops {
		if strings.Contains(s.Address, "서울") {
			assert.Equal(t, "대한민국", s.Country, s.Address)
			assert.Equal(t, "서울특별시", s.State, s.Address)
		}
	}
	assert.Equal(t, "마포구", shops[1].City)
	assert.Equal(t, "인도네시아", shops[2].Country)
	assert.Equal(t, "부산광역시", shops[3].State)

	assert.FileExists(t, cfg.Output.ScreenshotPath)
	assert.FileExists(t, cfg.Output.HTMLPath)
	require.NotNil(t, res.Summary)
	assert.Equal(t, 4, res.Summary.Total)
}

func TestRunCollectsShopDetails(t *testing.T) {
	cfg := testConfig(t)
	cfg.Detail.Enabled = true
	cfg.Detail.RatePerSecond = 1000
	b := &fakeBrowser{
		html: listingPage,
		pages: map[string]string{
			"https://example.com/shops/1": `<html><body><h1>맛있는 식당</h1><p>오리불고기 전문점</p><p>문의 010-1234-5678</p></body></html>`,
			"https://example.com/shops/2": `<html><body></body></html>`,
			"https://example.com/shops/4": `<html><body><p>Hours</p><p>08:00 - 20:00</p></body></html>`,
		},
		pageErrs: map[string]error{
			"https://example.com/shops/5": fmt.Errorf("%w: timed out", browser.ErrNavigation),
		},
	}

	res, err := newTestCrawler(cfg, b).Run(context.Background())
	require.NoError(t, err, "a failing detail page must not fail the run")

	assert.Equal(t, []string{
		"https://example.com/shops",
		"https://example.com/shops/1",
		"https://example.com/shops/2",
		"https://example.com/shops/4",
		"https://example.com/shops/5",
	}, b.visits)
	assert.Equal(t, 2, res.Detailed)
	assert.True(t, b.closed)

	shops, err := artifact.ReadDataset(cfg.Output.DatasetPath)
	require.NoError(t, err)
	require.Len(t, shops, 4)
	assert.Equal(t, "010-1234-5678", shops[0].Phone)
	assert.Equal(t, "오리불고기 전문점\n문의 010-1234-5678", shops[0].Description)
	assert.Equal(t, "1,200원", shops[0].VeryPrice, "listing fields are kept")
	assert.Equal(t, "Hours 08:00 - 20:00", shops[2].Hours)
	assert.True(t, shops[3].ShopDetail.IsZero())
}

func TestRunNavigationFailureIsFatal(t *testing.T) {
	cfg := testConfig(t)
	b := &fakeBrowser{navErr: fmt.Errorf("%w: timed out", browser.ErrNavigation)}

	_, err := newTestCrawler(cfg, b).Run(context.Background())

	assert.ErrorIs(t, err, browser.ErrNavigation)
	assert.True(t, b.closed)
	assert.NoFileExists(t, cfg.Output.DatasetPath)
}

func TestRunLaunchFailure(t *testing.T) {
	cfg := testConfig(t)
	c := New(cfg, WithLauncher(func(context.Context, browser.Options) (Browser, error) {
		return nil, fmt.Errorf("%w: chrome not found", browser.ErrLaunch)
	}))

	_, err := c.Run(context.Background())

	assert.ErrorIs(t, err, browser.ErrLaunch)
	assert.NoFileExists(t, cfg.Output.DatasetPath)
}

func TestRunSnapshotFailure(t *testing.T) {
	cfg := testConfig(t)
	b := &fakeBrowser{html: listingPage, htmlErr: errors.New("target closed")}

	_, err := newTestCrawler(cfg, b).Run(context.Background())

	assert.ErrorIs(t, err, ErrSnapshot)
	assert.True(t, b.closed)
}

func TestRunPaginationErrorIsRecoverable(t *testing.T) {
	cfg := testConfig(t)
	b := &fakeBrowser{html: listingPage, findErr: errors.New("execution context was destroyed")}

	res, err := newTestCrawler(cfg, b).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, pager.StopError, res.StopReason)
	assert.Equal(t, 4, res.Unique)
}

func TestRunDebugArtifactsAreBestEffort(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg.Output.ScreenshotPath = filepath.Join(blocker, "shot.png")
	b := &fakeBrowser{html: listingPage, shotErr: errors.New("capture failed")}

	_, err := newTestCrawler(cfg, b).Run(context.Background())

	require.NoError(t, err)
	assert.FileExists(t, cfg.Output.DatasetPath)
}

func TestRunWriteFailureIsFatal(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg.Output.DatasetPath = filepath.Join(blocker, "shops.json")
	b := &fakeBrowser{html: listingPage}

	_, err := newTestCrawler(cfg, b).Run(context.Background())

	assert.ErrorIs(t, err, artifact.ErrWrite)
	assert.True(t, b.closed)
}

func TestRunEmptyPageWritesEmptyDataset(t *testing.T) {
	cfg := testConfig(t)
	b := &fakeBrowser{html: `<html><body><p>점검 중</p></body></html>`}

	res, err := newTestCrawler(cfg, b).Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, res.Unique)
	shops, err := artifact.ReadDataset(cfg.Output.DatasetPath)
	require.NoError(t, err)
	assert.Empty(t, shops)
}

func TestRunFromHTML(t *testing.T) {
	cfg := testConfig(t)
	c := New(cfg, WithLauncher(func(context.Context, browser.Options) (Browser, error) {
		t.Fatal("replay must not launch a browser")
		return nil, nil
	}))

	res, err := c.RunFromHTML(context.Background(), "debug-page.html", strings.NewReader(listingPage))

	require.NoError(t, err)
	assert.Equal(t, "debug-page.html", res.Source)
	assert.Equal(t, 4, res.Unique)
	assert.FileExists(t, cfg.Output.DatasetPath)
}

type fakeMirror struct {
	started   []string
	completed *store.RunResult
	failed    error
	upserted  int
}

func (m *fakeMirror) StartRun(ctx context.Context, runID, targetURL string) (*models.CrawlRun, error) {
	m.started = append(m.started, runID)
	return &models.CrawlRun{RunID: runID, TargetURL: targetURL}, nil
}

func (m *fakeMirror) CompleteRun(ctx context.Context, run *models.CrawlRun, res store.RunResult) error {
	m.completed = &res
	return nil
}

func (m *fakeMirror) FailRun(ctx context.Context, run *models.CrawlRun, cause error) error {
	m.failed = cause
	return nil
}

func (m *fakeMirror) UpsertShops(ctx context.Context, runID string, shops []models.Shop) (*store.UpsertResult, error) {
	m.upserted += len(shops)
	return &store.UpsertResult{TotalRecords: len(shops)}, nil
}

func TestRunMirrorsResults(t *testing.T) {
	cfg := testConfig(t)
	m := &fakeMirror{}
	b := &fakeBrowser{html: listingPage, moreClicks: 1}

	res, err := newTestCrawler(cfg, b, WithMirror(m)).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{res.RunID}, m.started)
	assert.Equal(t, 4, m.upserted)
	require.NotNil(t, m.completed)
	assert.Equal(t, 1, m.completed.Clicks)
	assert.Equal(t, "no_button", m.completed.StopReason)
	assert.Contains(t, string(m.completed.Summary), `"total":4`)
}

func TestRunMirrorsFailures(t *testing.T) {
	cfg := testConfig(t)
	m := &fakeMirror{}
	b := &fakeBrowser{navErr: browser.ErrNavigation}

	_, err := newTestCrawler(cfg, b, WithMirror(m)).Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, m.failed, browser.ErrNavigation)
	assert.Nil(t, m.completed)
	assert.Zero(t, m.upserted)
}
