// Package fetcher handles web page fetching.
package fetcher

import (
	"context"
	"time"
)

// Content represents a fetched page.
type Content struct {
	URL         string
	HTML        string
	StatusCode  int
	ContentType string
	UserAgent   string // The user agent that succeeded
	FetchedAt   time.Time
}

// Options controls fetching behavior.
type Options struct {
	UserAgents []string // Tried in order; rotated on 403 responses
	Timeout    time.Duration
	Headers    map[string]string
}

// UserAgents is the default rotation pool. Team pages commonly sit
// behind WAFs that reject unfamiliar agents with 403, so each entry is
// a real browser string.
var UserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgents: UserAgents,
		Timeout:    30 * time.Second,
	}
}

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources.
	Close() error

	// Type identifies the fetching strategy.
	Type() string
}
