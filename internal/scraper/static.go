package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// StaticFetcher uses Colly for plain HTTP fetching. Most carrier pricing
// pages render client-side, so this path mainly serves saved pages and
// fixtures, but it is cheap enough to try first when a carrier is known
// to server-render.
type StaticFetcher struct {
	config FetcherConfig
}

// NewStaticFetcher creates a new static fetcher.
func NewStaticFetcher(cfg FetcherConfig) *StaticFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultFetcherConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultFetcherConfig().Timeout
	}
	return &StaticFetcher{config: cfg}
}

// Fetch retrieves page content over HTTP.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string, opts FetchOptions) (PageContent, error) {
	result := PageContent{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	c := colly.NewCollector(
		colly.UserAgent(coalesce(opts.UserAgent, f.config.UserAgent)),
	)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	c.SetRequestTimeout(timeout)

	if len(opts.Headers) > 0 {
		c.OnRequest(func(r *colly.Request) {
			for k, v := range opts.Headers {
				r.Headers.Set(k, v)
			}
		})
	}

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

	if result.HTML != "" {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML)); err == nil {
			result.Title = strings.TrimSpace(doc.Find("title").First().Text())
		}
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

// coalesce returns the first non-empty string.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
