// Package detail visits each shop's own page and fills the fields the listing
// does not show.
package detail

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"shopscan/internal/models"
	"shopscan/pkg/logger"
	"shopscan/pkg/pager"
)

// Page is the browser capability the detail stage drives
type Page interface {
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	HTML(ctx context.Context) (string, error)
}

// Options configures one enrichment pass
type Options struct {
	BaseURL       string  // resolves relative shop links
	RatePerSecond float64 // page visits per second; <= 0 means unlimited
	Burst         int
	Settle        time.Duration
	PageTimeout   time.Duration
	MaxShops      int // 0 visits every linked shop

	// Wait replaces the settle delay; defaults to pager.Sleep
	Wait func(ctx context.Context, d time.Duration) error
}

// Result counts the outcome of one pass
type Result struct {
	Visited  int `json:"visited"`
	Enriched int `json:"enriched"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"` // no link, or beyond MaxShops
}

// Enricher fills shop detail fields from their pages, one page at a time
type Enricher struct {
	page    Page
	opts    Options
	limiter *rate.Limiter
}

// New creates an Enricher over page
func New(page Page, opts Options) *Enricher {
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}
	if opts.Wait == nil {
		opts.Wait = pager.Sleep
	}
	return &Enricher{
		page:    page,
		opts:    opts,
		limiter: rate.NewLimiter(limit, opts.Burst),
	}
}

// Enrich updates shops in place. A page that fails is logged and skipped; only
// cancellation of ctx ends the pass early.
func (e *Enricher) Enrich(ctx context.Context, shops []models.Shop) (Result, error) {
	log := logger.FromContext(ctx)
	var res Result

	for i := range shops {
		shop := &shops[i]
		if shop.Link == "" || (e.opts.MaxShops > 0 && res.Visited >= e.opts.MaxShops) {
			res.Skipped++
			continue
		}
		if err := e.limiter.Wait(ctx); err != nil {
			return res, err
		}

		res.Visited++
		d, err := e.fetch(ctx, *shop)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Failed++
			log.Warn("Skipping shop detail",
				zap.String("shop_id", shop.ID()),
				zap.String("name", shop.Name),
				zap.Error(err))
			continue
		}
		if d.IsZero() {
			continue
		}
		shop.ShopDetail = d
		res.Enriched++
	}

	log.Info("Shop details collected",
		zap.Int("visited", res.Visited),
		zap.Int("enriched", res.Enriched),
		zap.Int("failed", res.Failed),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

func (e *Enricher) fetch(ctx context.Context, shop models.Shop) (models.ShopDetail, error) {
	target, err := ResolveLink(e.opts.BaseURL, shop.Link)
	if err != nil {
		return models.ShopDetail{}, err
	}
	if err := e.page.Navigate(ctx, target, e.opts.PageTimeout); err != nil {
		return models.ShopDetail{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if err := e.opts.Wait(ctx, e.opts.Settle); err != nil {
		return models.ShopDetail{}, err
	}
	page, err := e.page.HTML(ctx)
	if err != nil {
		return models.ShopDetail{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return Parse(strings.NewReader(page), shop)
}

// ResolveLink turns a shop link into an absolute URL against base.
func ResolveLink(base, link string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", fmt.Errorf("%w: bad link %q: %w", ErrFetch, link, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return "", fmt.Errorf("%w: relative link %q needs an absolute base URL", ErrFetch, link)
	}
	return b.ResolveReference(ref).String(), nil
}
