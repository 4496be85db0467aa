package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"
)

// BrowserFetcher renders pages in headless Chrome before returning their HTML.
// Use it when the site builds the schedule table with JavaScript.
type BrowserFetcher struct {
	browserCtx context.Context
	cancel     context.CancelFunc
	limiter    *rate.Limiter
	timeout    time.Duration
}

// NewBrowserFetcher starts a headless browser that lives until Close. Every
// Get opens a tab in that one browser.
func NewBrowserFetcher(ctx context.Context, userAgent string, timeout time.Duration, perSecond float64) (*BrowserFetcher, error) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	if userAgent != "" {
		opts = append(opts, chromedp.UserAgent(userAgent))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	cancel := func() {
		cancelBrowser()
		cancelAlloc()
	}

	// Running with no actions allocates the browser. It must not carry a
	// timeout, or the deadline would stop the whole browser.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("starting headless browser: %w", err)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	return &BrowserFetcher{
		browserCtx: browserCtx,
		cancel:     cancel,
		limiter:    rate.NewLimiter(limit, 1),
		timeout:    timeout,
	}, nil
}

// Get opens url in a new tab and returns the rendered document.
func (b *BrowserFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	tabCtx, cancelTab := chromedp.NewContext(b.browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
	defer cancelTimeout()

	// The tab context does not inherit ctx, so propagate cancellation by hand.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html string
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("%w: rendering %s: %v", ErrNetworkError, url, err)
	}

	return []byte(html), nil
}

// Close shuts the browser down.
func (b *BrowserFetcher) Close() error {
	b.cancel()
	return nil
}
