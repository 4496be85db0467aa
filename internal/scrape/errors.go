package scrape

import (
	"errors"
	"fmt"
)

// Common errors returned while scraping.
var (
	// ErrNoRoster indicates the teams page had no recognisable team links.
	ErrNoRoster = errors.New("no teams found on roster page")

	// ErrNoRecord indicates a schedule page had no season record.
	ErrNoRecord = errors.New("no season record on schedule page")

	// ErrNetworkError indicates the request never produced a response.
	ErrNetworkError = errors.New("network error")
)

// FetchError reports a page that answered with a non-success status.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.StatusCode)
}

// IsNotFound returns true if the error is a 404 from the site.
func IsNotFound(err error) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.StatusCode == 404
	}
	return false
}
