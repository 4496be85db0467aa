package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Fetcher retrieves the raw HTML of a page.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

const (
	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit keeps the scrape polite: two pages per second.
	DefaultRateLimit = 2.0
)

// HTTPFetcher is a rate-limited resty client.
type HTTPFetcher struct {
	client  *resty.Client
	limiter *rate.Limiter
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.client.SetHeader("User-Agent", ua)
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.client.SetTimeout(d)
		}
	}
}

// WithRateLimit sets the number of requests allowed per second.
// A non-positive value disables limiting.
func WithRateLimit(perSecond float64) FetcherOption {
	return func(f *HTTPFetcher) {
		if perSecond <= 0 {
			f.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		f.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewHTTPFetcher creates a fetcher with sensible defaults.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	client := resty.New()
	client.SetTimeout(DefaultTimeout)
	client.SetHeader("Accept", "text/html,application/xhtml+xml")

	f := &HTTPFetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Get waits for the limiter, then fetches url.
func (f *HTTPFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	if res.IsError() {
		return nil, &FetchError{URL: url, StatusCode: res.StatusCode()}
	}

	return res.Body(), nil
}
