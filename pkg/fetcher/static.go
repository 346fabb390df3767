package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/jmylchreest/teamscan/internal/logger"
)

// StaticFetcher uses Colly for static HTML fetching. When a site
// rejects a request with 403 Forbidden it retries with the next user
// agent in the pool before giving up.
type StaticFetcher struct {
	defaults Options
}

var _ Fetcher = (*StaticFetcher)(nil)

// NewStaticFetcher creates a new static fetcher.
func NewStaticFetcher(opts Options) *StaticFetcher {
	if len(opts.UserAgents) == 0 {
		opts.UserAgents = DefaultOptions().UserAgents
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	return &StaticFetcher{defaults: opts}
}

// Fetch retrieves page content, rotating user agents on 403.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	agents := opts.UserAgents
	if len(agents) == 0 {
		agents = f.defaults.UserAgents
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.defaults.Timeout
	}

	var last Content
	var lastErr error
	for i, agent := range agents {
		if err := ctx.Err(); err != nil {
			return last, err
		}

		content, err := f.fetchOnce(targetURL, agent, timeout, opts.Headers)
		if err == nil {
			return content, nil
		}
		last, lastErr = content, err

		if content.StatusCode != http.StatusForbidden {
			return content, err
		}
		if i < len(agents)-1 {
			logger.Warn("got 403, retrying with next user agent",
				"url", targetURL, "attempt", i+1)
		}
	}

	return last, fmt.Errorf("all %d user agents rejected: %w", len(agents), lastErr)
}

func (f *StaticFetcher) fetchOnce(targetURL, agent string, timeout time.Duration, headers map[string]string) (Content, error) {
	result := Content{
		URL:       targetURL,
		UserAgent: agent,
		FetchedAt: time.Now(),
	}

	// A fresh collector per attempt so cookies and caches from a
	// rejected request do not leak into the retry.
	c := colly.NewCollector(colly.UserAgent(agent))
	c.SetRequestTimeout(timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
		if u, err := url.Parse(targetURL); err == nil && u.Host != "" {
			r.Headers.Set("Referer", u.Scheme+"://"+u.Host+"/")
		}
		for k, v := range headers {
			r.Headers.Set(k, v)
		}
	})

	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		result.ContentType = r.Headers.Get("Content-Type")
		result.HTML = string(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			result.StatusCode = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetch error: %w", err)
	})

	if err := c.Visit(targetURL); err != nil {
		return result, fmt.Errorf("failed to visit URL: %w", err)
	}
	if fetchErr != nil {
		return result, fetchErr
	}

	return result, nil
}

// Close releases resources.
func (f *StaticFetcher) Close() error {
	return nil
}

// Type returns the fetcher type.
func (f *StaticFetcher) Type() string {
	return "static"
}
