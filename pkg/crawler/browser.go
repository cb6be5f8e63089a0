package crawler

import (
	"context"
	"time"

	"shopscan/pkg/browser"
	"shopscan/pkg/pager"
)

// Browser is the page capability the pipeline drives
type Browser interface {
	pager.Page
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	ScrollToBottom(ctx context.Context) error
	HTML(ctx context.Context) (string, error)
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

// Launcher opens a browser session
type Launcher func(ctx context.Context, opts browser.Options) (Browser, error)

// ChromeLauncher launches a local Chrome through chromedp
func ChromeLauncher(ctx context.Context, opts browser.Options) (Browser, error) {
	s, err := browser.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s, nil
}
