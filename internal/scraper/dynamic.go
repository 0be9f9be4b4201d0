package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/planwatch/planwatch/internal/logger"
)

// DynamicFetcher renders pages in headless Chrome. The carrier storefronts
// build their plan tiles client-side, so this is the fetcher the pipeline
// uses for live pages. One browser allocator is shared; each Fetch gets
// its own tab context.
type DynamicFetcher struct {
	config    FetcherConfig
	allocCtx  context.Context
	cancelCtx context.CancelFunc
}

// NewDynamicFetcher creates a dynamic fetcher with a browser allocator.
func NewDynamicFetcher(cfg FetcherConfig) (*DynamicFetcher, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultFetcherConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultFetcherConfig().Timeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	logger.Debug("browser allocator created", "user_agent", cfg.UserAgent, "timeout", cfg.Timeout)

	return &DynamicFetcher{
		config:    cfg,
		allocCtx:  allocCtx,
		cancelCtx: cancelAlloc,
	}, nil
}

// Fetch retrieves page content using a headless browser. The caller's
// WaitForSelector should be the carrier's plan-tile selector so the fetch
// returns after tiles exist, not merely after page load.
func (f *DynamicFetcher) Fetch(ctx context.Context, targetURL string, opts FetchOptions) (PageContent, error) {
	result := PageContent{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx)
	defer cancelBrowser()

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html, title string

	actions := []chromedp.Action{chromedp.Navigate(targetURL)}
	if opts.WaitForSelector != "" {
		actions = append(actions, chromedp.WaitVisible(opts.WaitForSelector, chromedp.ByQuery))
	} else {
		actions = append(actions, chromedp.WaitVisible("body", chromedp.ByQuery))
	}
	if opts.WaitDuration > 0 {
		actions = append(actions, chromedp.Sleep(opts.WaitDuration))
	}
	actions = append(actions,
		chromedp.OuterHTML("html", &html),
		chromedp.Title(&title),
	)

	logger.Debug("dynamic fetch starting",
		"url", targetURL,
		"wait_selector", opts.WaitForSelector,
		"timeout", timeout)

	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		return result, fmt.Errorf("browser automation failed: %w", err)
	}

	logger.Debug("dynamic fetch complete", "url", targetURL, "html_size", len(html), "title", title)

	result.HTML = html
	result.Title = title
	result.StatusCode = 200 // chromedp doesn't expose status codes
	return result, nil
}

// Close releases browser resources.
func (f *DynamicFetcher) Close() error {
	if f.cancelCtx != nil {
		f.cancelCtx()
	}
	return nil
}

// Type returns the fetcher type.
func (f *DynamicFetcher) Type() string {
	return "dynamic"
}
