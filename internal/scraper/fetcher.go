// Package scraper fetches carrier pricing pages. Carrier pages are
// JavaScript-heavy storefronts, so the primary path is a headless browser;
// a static fetcher exists for saved pages and the rare carrier that
// renders server-side.
package scraper

import (
	"context"
	"fmt"
	"time"
)

// PageContent is a fetched pricing page. The reducer consumes the raw
// HTML; Title and StatusCode exist for logging and sanity checks.
type PageContent struct {
	URL         string
	HTML        string
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// FetchOptions controls one fetch.
type FetchOptions struct {
	UserAgent       string
	Timeout         time.Duration
	WaitForSelector string        // CSS selector to wait for (dynamic only)
	WaitDuration    time.Duration // Additional settle time after load
	Headers         map[string]string
}

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts FetchOptions) (PageContent, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns "static" or "dynamic".
	Type() string
}

// FetchMode determines how pages are fetched.
type FetchMode string

const (
	FetchModeStatic  FetchMode = "static"
	FetchModeDynamic FetchMode = "dynamic"
)

// FetcherConfig holds common fetcher configuration.
type FetcherConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// DefaultFetcherConfig returns sensible defaults.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Timeout:   45 * time.Second,
	}
}

// NewFetcher creates a fetcher for the given mode.
func NewFetcher(mode FetchMode, cfg FetcherConfig) (Fetcher, error) {
	switch mode {
	case FetchModeStatic:
		return NewStaticFetcher(cfg), nil
	case FetchModeDynamic:
		return NewDynamicFetcher(cfg)
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s", mode)
	}
}
