// Package crawler discovers likely team-page URLs on a site. It
// prefers the sitemap when one exists and falls back to scanning the
// homepage for links, keeping only same-host URLs whose path matches a
// discovery keyword.
package crawler

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/jmylchreest/teamscan/internal/logger"
	"github.com/jmylchreest/teamscan/pkg/fetcher"
)

// Options tunes discovery.
type Options struct {
	Keywords  []string // Matched against the URL, earlier entries rank higher
	Limit     int      // Max candidates per site (0 = unlimited)
	Timeout   time.Duration
	UserAgent string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Limit:     10,
		Timeout:   20 * time.Second,
		UserAgent: fetcher.UserAgents[0],
	}
}

// Discoverer finds candidate team pages.
type Discoverer struct {
	opts Options
}

// New creates a Discoverer.
func New(opts Options) *Discoverer {
	def := DefaultOptions()
	if opts.Timeout == 0 {
		opts.Timeout = def.Timeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	return &Discoverer{opts: opts}
}

// Discover returns candidate URLs for a site, best match first. The
// site may be given without a scheme ("example.com").
func (d *Discoverer) Discover(ctx context.Context, site string) ([]string, error) {
	base, err := normalizeSite(site)
	if err != nil {
		return nil, err
	}

	links := d.fromSitemap(ctx, base)
	if len(links) == 0 {
		logger.Debug("no sitemap candidates, scanning homepage", "site", base.Host)
		links, err = d.fromHomepage(ctx, base)
		if err != nil {
			return nil, err
		}
	}

	candidates := d.rank(base, links)
	if d.opts.Limit > 0 && len(candidates) > d.opts.Limit {
		candidates = candidates[:d.opts.Limit]
	}
	logger.Info("discovered candidates", "site", base.Host, "count", len(candidates))
	return candidates, nil
}

// fromSitemap collects <loc> entries from /sitemap.xml. Any failure is
// treated as "no sitemap" so the homepage fallback can run.
func (d *Discoverer) fromSitemap(ctx context.Context, base *url.URL) []string {
	if ctx.Err() != nil {
		return nil
	}

	var links []string

	c := d.collector()
	c.OnXML("//loc", func(e *colly.XMLElement) {
		if loc := strings.TrimSpace(e.Text); loc != "" {
			links = append(links, loc)
		}
	})

	sitemapURL := base.Scheme + "://" + base.Host + "/sitemap.xml"
	if err := c.Visit(sitemapURL); err != nil {
		logger.Debug("sitemap not available", "url", sitemapURL, "error", err)
		return nil
	}
	c.Wait()
	return links
}

// fromHomepage collects anchor hrefs from the site root.
func (d *Discoverer) fromHomepage(ctx context.Context, base *url.URL) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var links []string

	c := d.collector()
	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Request.AbsoluteURL(e.Attr("href"))
		if href != "" {
			links = append(links, href)
		}
	})

	if err := c.Visit(base.String()); err != nil {
		return nil, fmt.Errorf("failed to scan homepage: %w", err)
	}
	c.Wait()
	return links, nil
}

func (d *Discoverer) collector() *colly.Collector {
	c := colly.NewCollector(colly.UserAgent(d.opts.UserAgent))
	c.SetRequestTimeout(d.opts.Timeout)
	return c
}

// rank filters links to same-host keyword matches and orders them by
// keyword priority, deduplicated, original order preserved within a
// priority band.
func (d *Discoverer) rank(base *url.URL, links []string) []string {
	type scored struct {
		url  string
		rank int
	}

	seen := make(map[string]struct{})
	var matches []scored
	for _, link := range links {
		u, err := url.Parse(link)
		if err != nil || !strings.EqualFold(u.Host, base.Host) {
			continue
		}
		clean := u.Scheme + "://" + u.Host + u.Path
		if _, ok := seen[clean]; ok {
			continue
		}

		rank := keywordRank(strings.ToLower(u.Path), d.opts.Keywords)
		if rank < 0 {
			continue
		}
		seen[clean] = struct{}{}
		matches = append(matches, scored{url: clean, rank: rank})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.url
	}
	return out
}

// keywordRank returns the index of the first matching keyword, or -1.
func keywordRank(path string, keywords []string) int {
	for i, kw := range keywords {
		if strings.Contains(path, strings.ToLower(kw)) {
			return i
		}
	}
	return -1
}

func normalizeSite(site string) (*url.URL, error) {
	site = strings.TrimSpace(site)
	if site == "" {
		return nil, fmt.Errorf("empty site")
	}
	if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
		site = "https://" + site
	}
	u, err := url.Parse(site)
	if err != nil {
		return nil, fmt.Errorf("invalid site %q: %w", site, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid site %q: no host", site)
	}
	return u, nil
}
