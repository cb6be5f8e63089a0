// Package crawler runs the acquisition pipeline: browse, paginate, extract,
// deduplicate, classify and write the dataset.
package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopscan/internal/models"
	"shopscan/pkg/artifact"
	"shopscan/pkg/browser"
	"shopscan/pkg/config"
	"shopscan/pkg/dedup"
	"shopscan/pkg/detail"
	"shopscan/pkg/extract"
	"shopscan/pkg/logger"
	"shopscan/pkg/pager"
	"shopscan/pkg/region"
	"shopscan/pkg/report"
	"shopscan/pkg/store"
)

// Crawler owns one configuration and runs the pipeline on demand
type Crawler struct {
	cfg       *config.Config
	launch    Launcher
	mirror    Mirror
	extractor *extract.Extractor
	wait      func(ctx context.Context, d time.Duration) error
}

// Option customizes a Crawler
type Option func(*Crawler)

// WithLauncher replaces the Chrome launcher
func WithLauncher(l Launcher) Option {
	return func(c *Crawler) { c.launch = l }
}

// WithMirror enables mirroring runs into m
func WithMirror(m Mirror) Option {
	return func(c *Crawler) { c.mirror = m }
}

// WithWait replaces the settle delay implementation
func WithWait(wait func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Crawler) { c.wait = wait }
}

// New creates a Crawler for cfg
func New(cfg *config.Config, opts ...Option) *Crawler {
	c := &Crawler{
		cfg:       cfg,
		launch:    ChromeLauncher,
		extractor: extract.New(extract.Options{ShopRoute: cfg.Extract.ShopRoute}),
		wait:      pager.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run crawls the configured listing page and writes the dataset.
func (c *Crawler) Run(ctx context.Context) (*Result, error) {
	res := c.newResult(c.cfg.Browser.TargetURL)
	ctx = logger.WithRunID(ctx, res.RunID)
	log := logger.FromContext(ctx)
	log.Info("Starting crawl", zap.String("url", res.Source))

	run := c.startMirror(ctx, res)

	var shops []models.Shop
	err := c.withSession(ctx, func(b Browser) error {
		page, err := c.browse(ctx, b, res)
		if err != nil {
			return err
		}
		if shops, err = c.collect(ctx, strings.NewReader(page), res); err != nil {
			return err
		}
		return c.enrich(ctx, b, shops, res)
	})
	if err == nil {
		err = c.publish(ctx, shops, res)
	}

	c.finishMirror(ctx, run, res, err)
	if err != nil {
		log.Error("Crawl failed", zap.Error(err))
		return res, err
	}
	log.Info("Crawl completed",
		zap.Int("clicks", res.Clicks),
		zap.Int("unique", res.Unique),
		zap.Int("classified", res.Classified),
		zap.Int("detailed", res.Detailed),
		zap.Duration("duration", res.Duration))
	return res, nil
}

// RunFromHTML replays extraction onwards on a saved page snapshot.
func (c *Crawler) RunFromHTML(ctx context.Context, source string, r io.Reader) (*Result, error) {
	res := c.newResult(source)
	ctx = logger.WithRunID(ctx, res.RunID)
	logger.FromContext(ctx).Info("Replaying saved snapshot", zap.String("source", source))

	run := c.startMirror(ctx, res)
	shops, err := c.collect(ctx, r, res)
	if err == nil {
		err = c.publish(ctx, shops, res)
	}
	c.finishMirror(ctx, run, res, err)
	return res, err
}

func (c *Crawler) newResult(source string) *Result {
	return &Result{
		RunID:       uuid.NewString(),
		Source:      source,
		DatasetPath: c.cfg.Output.DatasetPath,
		StartedAt:   time.Now(),
	}
}

// withSession launches a browser for fn and always closes it.
func (c *Crawler) withSession(ctx context.Context, fn func(Browser) error) error {
	b, err := c.launch(ctx, c.browserOptions())
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			logger.FromContext(ctx).Warn("Failed to close browser", zap.Error(err))
		}
	}()
	return fn(b)
}

func (c *Crawler) browserOptions() browser.Options {
	opts := browser.DefaultOptions()
	opts.Headless = c.cfg.Browser.Headless
	opts.ChromePath = c.cfg.Browser.ChromePath
	opts.UserAgent = c.cfg.Browser.UserAgent
	opts.AcceptLanguage = c.cfg.Browser.AcceptLanguage
	return opts
}

// browse loads the page, exhausts pagination and returns the serialized document.
func (c *Crawler) browse(ctx context.Context, b Browser, res *Result) (string, error) {
	bc := c.cfg.Browser
	log := logger.FromContext(logger.WithStage(ctx, "navigate"))

	if err := b.Navigate(ctx, bc.TargetURL, bc.NavigationTimeoutDuration()); err != nil {
		return "", err
	}
	log.Info("Page loaded", zap.Duration("settle", bc.InitialSettle()))
	if err := c.wait(ctx, bc.InitialSettle()); err != nil {
		return "", err
	}
	if err := b.ScrollToBottom(ctx); err != nil {
		// Pagination still works from the top of the page.
		log.Warn("Initial scroll failed", zap.Error(err))
	}
	if err := c.wait(ctx, bc.ScrollSettle()); err != nil {
		return "", err
	}

	pc := c.cfg.Pagination
	driver := pager.NewDriver(b, pager.Options{
		Phrases:         pc.Phrases,
		SettleDelay:     pc.ClickSettle(),
		StagnationLimit: pc.StagnationLimit,
		MaxClicks:       pc.MaxClicks,
	})
	pr := driver.Run(logger.WithStage(ctx, "paginate"))
	res.Clicks = pr.Clicks
	res.StopReason = pr.Reason
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := b.HTML(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSnapshot, err)
	}
	c.saveDebug(logger.WithStage(ctx, "debug"), b, page)
	return page, nil
}

func (c *Crawler) saveDebug(ctx context.Context, b Browser, page string) {
	out := c.cfg.Output
	if out.ScreenshotPath == "" && out.HTMLPath == "" {
		return
	}

	var d artifact.Debug
	d.HTML = page
	if out.ScreenshotPath != "" {
		shot, err := b.Screenshot(ctx)
		if err != nil {
			logger.FromContext(ctx).Warn("Failed to capture screenshot", zap.Error(err))
		}
		d.Screenshot = shot
	}
	artifact.WriteDebug(ctx, out.ScreenshotPath, out.HTMLPath, d)
}

// collect extracts, deduplicates and classifies the records of a page snapshot.
func (c *Crawler) collect(ctx context.Context, page io.Reader, res *Result) ([]models.Shop, error) {
	extracted, err := c.extractor.Extract(logger.WithStage(ctx, "extract"), page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtract, err)
	}
	res.Extracted = len(extracted.Shops)

	shops := dedup.Unique(extracted.Shops)
	res.Unique = len(shops)
	logger.FromContext(ctx).Info("Removed duplicate records",
		zap.Int("before", res.Extracted),
		zap.Int("after", res.Unique))

	res.Classified = region.ClassifyAll(logger.WithStage(ctx, "classify"), shops)
	return shops, nil
}

// enrich visits each shop's own page when detail crawling is enabled. Pages that
// fail are skipped; only cancellation is returned.
func (c *Crawler) enrich(ctx context.Context, b Browser, shops []models.Shop, res *Result) error {
	dc := c.cfg.Detail
	if dc == nil || !dc.Enabled || len(shops) == 0 {
		return nil
	}

	e := detail.New(b, detail.Options{
		BaseURL:       c.cfg.Browser.TargetURL,
		RatePerSecond: dc.RatePerSecond,
		Burst:         dc.Burst,
		Settle:        dc.Settle(),
		PageTimeout:   dc.PageTimeoutDuration(),
		MaxShops:      dc.MaxShops,
		Wait:          c.wait,
	})
	dr, err := e.Enrich(logger.WithStage(ctx, "detail"), shops)
	res.Detailed = dr.Enriched
	return err
}

// publish writes the dataset and computes its summary.
func (c *Crawler) publish(ctx context.Context, shops []models.Shop, res *Result) error {
	res.Shops = shops
	if err := artifact.WriteDataset(c.cfg.Output.DatasetPath, shops); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Dataset written",
		zap.String("path", c.cfg.Output.DatasetPath),
		logger.CountField(len(shops)))

	res.Summary = report.Build(shops)
	res.Duration = time.Since(res.StartedAt)
	return nil
}

func (c *Crawler) startMirror(ctx context.Context, res *Result) *models.CrawlRun {
	if c.mirror == nil {
		return nil
	}
	run, err := c.mirror.StartRun(ctx, res.RunID, res.Source)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to record run start", zap.Error(err))
		return nil
	}
	return run
}

// finishMirror records the outcome. Mirror failures never fail the crawl; the
// dataset file is the primary output.
func (c *Crawler) finishMirror(ctx context.Context, run *models.CrawlRun, res *Result, cause error) {
	if c.mirror == nil || run == nil {
		return
	}
	log := logger.FromContext(logger.WithStage(ctx, "store"))

	if cause != nil {
		if err := c.mirror.FailRun(ctx, run, cause); err != nil {
			log.Warn("Failed to record run failure", zap.Error(err))
		}
		return
	}

	if _, err := c.mirror.UpsertShops(ctx, res.RunID, res.Shops); err != nil {
		log.Warn("Failed to mirror shops", zap.Error(err))
	}

	var summary []byte
	if res.Summary != nil {
		summary, _ = json.Marshal(res.Summary)
	}
	err := c.mirror.CompleteRun(ctx, run, store.RunResult{
		Clicks:     res.Clicks,
		StopReason: string(res.StopReason),
		Extracted:  res.Extracted,
		Unique:     res.Unique,
		Classified: res.Classified,
		Summary:    summary,
	})
	if err != nil {
		log.Warn("Failed to record run completion", zap.Error(err))
	}
}
