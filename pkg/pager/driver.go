// Package pager exhausts "load more" pagination on a live page.
package pager

import (
	"context"
	"time"

	"go.uber.org/zap"

	"shopscan/pkg/logger"
)

// Page is the part of a browser session the driver needs
type Page interface {
	// FindMore reports whether a "load more" element is present and scrolls it into view
	FindMore(ctx context.Context, phrases []string) (bool, error)
	// ClickMore clicks the element FindMore located
	ClickMore(ctx context.Context, phrases []string) (bool, error)
	// ScrollHeight returns the total document height
	ScrollHeight(ctx context.Context) (int64, error)
}

// StopReason explains why the driver reached Done
type StopReason string

const (
	StopNoButton  StopReason = "no_button"
	StopStagnated StopReason = "stagnated"
	StopMaxClicks StopReason = "max_clicks"
	StopError     StopReason = "error"
)

// Options tunes the loop
type Options struct {
	Phrases         []string
	SettleDelay     time.Duration
	StagnationLimit int
	MaxClicks       int
}

// DefaultOptions mirrors the crawler defaults
func DefaultOptions() Options {
	return Options{
		Phrases:         []string{"더보기", "more", "load more", "더 보기"},
		SettleDelay:     2 * time.Second,
		StagnationLimit: 3,
		MaxClicks:       50,
	}
}

// Result summarizes one pagination run
type Result struct {
	Clicks int
	Reason StopReason
	Height int64
	Err    error // set when Reason is StopError
}

// Driver clicks "load more" until the page stops growing
type Driver struct {
	page Page
	opts Options
	wait func(ctx context.Context, d time.Duration) error
}

// NewDriver creates a driver for page
func NewDriver(page Page, opts Options) *Driver {
	if opts.StagnationLimit < 1 {
		opts.StagnationLimit = 1
	}
	if opts.MaxClicks < 1 {
		opts.MaxClicks = 1
	}
	return &Driver{page: page, opts: opts, wait: Sleep}
}

// Sleep waits for d or until ctx is done
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run drives the Searching -> Click -> Measure loop. It never fails: evaluation errors
// end the loop with StopError so the caller can extract whatever was loaded.
func (d *Driver) Run(ctx context.Context) Result {
	log := logger.FromContext(ctx)

	clicks := 0
	stagnation := 0

	previous, err := d.page.ScrollHeight(ctx)
	if err != nil {
		return d.stop(log, Result{Reason: StopError, Err: err})
	}

	for {
		found, err := d.page.FindMore(ctx, d.opts.Phrases)
		if err != nil {
			return d.stop(log, Result{Clicks: clicks, Reason: StopError, Height: previous, Err: err})
		}
		if !found {
			return d.stop(log, Result{Clicks: clicks, Reason: StopNoButton, Height: previous})
		}

		clicked, err := d.page.ClickMore(ctx, d.opts.Phrases)
		if err != nil {
			return d.stop(log, Result{Clicks: clicks, Reason: StopError, Height: previous, Err: err})
		}
		if !clicked {
			// The element vanished between probe and click.
			return d.stop(log, Result{Clicks: clicks, Reason: StopNoButton, Height: previous})
		}
		clicks++
		log.Debug("Clicked load more", zap.Int("clicks", clicks))

		if err := d.wait(ctx, d.opts.SettleDelay); err != nil {
			return d.stop(log, Result{Clicks: clicks, Reason: StopError, Height: previous, Err: err})
		}

		current, err := d.page.ScrollHeight(ctx)
		if err != nil {
			return d.stop(log, Result{Clicks: clicks, Reason: StopError, Height: previous, Err: err})
		}

		if current == previous {
			stagnation++
			if stagnation >= d.opts.StagnationLimit {
				return d.stop(log, Result{Clicks: clicks, Reason: StopStagnated, Height: current})
			}
		} else {
			stagnation = 0
			previous = current
		}

		if clicks >= d.opts.MaxClicks {
			return d.stop(log, Result{Clicks: clicks, Reason: StopMaxClicks, Height: current})
		}
	}
}

func (d *Driver) stop(log *zap.Logger, res Result) Result {
	fields := []zap.Field{
		zap.Int("clicks", res.Clicks),
		zap.String("reason", string(res.Reason)),
		zap.Int64("height", res.Height),
	}
	switch res.Reason {
	case StopError:
		log.Warn("Pagination stopped on page error, continuing with loaded content",
			append(fields, zap.Error(res.Err))...)
	case StopMaxClicks:
		log.Warn("Pagination reached click ceiling", fields...)
	default:
		log.Info("Pagination exhausted", fields...)
	}
	return res
}
