package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"shopscan/pkg/logger"
)

// Session owns one headless Chrome tab. Operations are serialized; callers must not
// share a Session across goroutines expecting parallelism.
type Session struct {
	opts Options

	tabCtx      context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// Open launches Chrome and prepares an empty tab with the configured client identity
func Open(ctx context.Context, opts Options) (*Session, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), AllocatorOptions(opts)...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Sugar.Debugf),
		chromedp.WithErrorf(logger.Sugar.Debugf),
	)

	s := &Session{
		opts:        opts,
		tabCtx:      tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}

	startTimeout := opts.StartTimeout
	if startTimeout <= 0 {
		startTimeout = 30 * time.Second
	}

	// The first Run on the tab context starts the browser process. It must not carry
	// a deadline of its own or the browser dies with it, so the bound is applied here.
	err := awaitLaunch(ctx, startTimeout, func() error { return chromedp.Run(tabCtx) })
	if err != nil {
		s.Close()
		return nil, err
	}

	actions := []chromedp.Action{network.Enable()}
	if opts.AcceptLanguage != "" {
		actions = append(actions, network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": opts.AcceptLanguage,
		}))
	}
	if err = s.run(ctx, startTimeout, actions...); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	logger.Debug("Browser session opened",
		zap.Bool("headless", opts.Headless),
		zap.String("user_agent", opts.UserAgent))
	return s, nil
}

// awaitLaunch waits for start to finish, giving up after timeout or when ctx ends.
// An abandoned start returns once the caller cancels the browser contexts.
func awaitLaunch(ctx context.Context, timeout time.Duration, start func() error) error {
	done := make(chan error, 1)
	go func() { done <- start() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLaunch, err)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("%w: browser did not start within %v", ErrLaunch, timeout)
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrLaunch, ctx.Err())
	}
}

// run executes actions on the tab, bounded by timeout (if positive) and by ctx
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	var runCtx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(s.tabCtx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(s.tabCtx)
	}
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// Navigate loads url and waits for the document to finish loading within timeout
func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	err := s.run(ctx, timeout,
		chromedp.Navigate(url),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		chromedp.Poll(readyStateScript, nil,
			chromedp.WithPollingInterval(250*time.Millisecond),
			chromedp.WithPollingTimeout(timeout),
		),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s not loaded within %v", ErrNavigation, url, timeout)
		}
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	return nil
}

// Evaluate runs a side-effect free or DOM-mutating expression and decodes its result into res.
// res may be nil when the result is not needed.
func (s *Session) Evaluate(ctx context.Context, expression string, res any) error {
	if err := s.run(ctx, 0, chromedp.Evaluate(expression, res)); err != nil {
		return fmt.Errorf("%w: %w", ErrEvaluate, err)
	}
	return nil
}

// ScrollToBottom scrolls the window to the current end of the document
func (s *Session) ScrollToBottom(ctx context.Context) error {
	return s.Evaluate(ctx, scrollToBottomScript, nil)
}

// ScrollHeight returns document.body.scrollHeight
func (s *Session) ScrollHeight(ctx context.Context) (int64, error) {
	var height float64
	if err := s.Evaluate(ctx, scrollHeightScript, &height); err != nil {
		return 0, err
	}
	return int64(height), nil
}

// FindMore reports whether a "load more" element matching phrases exists, scrolling it into view
func (s *Session) FindMore(ctx context.Context, phrases []string) (bool, error) {
	var found bool
	if err := s.Evaluate(ctx, moreButtonScript(phrases, false), &found); err != nil {
		return false, err
	}
	return found, nil
}

// ClickMore clicks the first "load more" element matching phrases
func (s *Session) ClickMore(ctx context.Context, phrases []string) (bool, error) {
	var clicked bool
	if err := s.Evaluate(ctx, moreButtonScript(phrases, true), &clicked); err != nil {
		return false, err
	}
	return clicked, nil
}

// HTML serializes the current document
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, 0, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEvaluate, err)
	}
	return html, nil
}

// Screenshot captures the full page as PNG
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := s.run(ctx, 0, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEvaluate, err)
	}
	return buf, nil
}

// Close shuts down the tab and the browser process. Safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.cancelTab != nil {
		s.cancelTab()
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
	}
	logger.Debug("Browser session closed")
	return nil
}
