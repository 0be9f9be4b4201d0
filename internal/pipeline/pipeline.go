// Package pipeline orchestrates the full run for a set of carriers:
// fetch the pricing page, reduce it to minimal plan markup, and optionally
// extract structured plans through the LLM stage.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/planwatch/planwatch/internal/extract"
	"github.com/planwatch/planwatch/internal/logger"
	"github.com/planwatch/planwatch/internal/scraper"
	"github.com/planwatch/planwatch/pkg/reduce"
)

// CarrierResult is the outcome for one carrier in a run. Error is set and
// the other fields are partial when a stage failed; a failed carrier never
// aborts the run.
type CarrierResult struct {
	Carrier   string                  `json:"carrier" yaml:"carrier"`
	URL       string                  `json:"url" yaml:"url"`
	FetchedAt time.Time               `json:"fetched_at" yaml:"fetched_at"`
	Stats     reduce.Stats            `json:"stats" yaml:"stats"`
	Markup    string                  `json:"markup,omitempty" yaml:"markup,omitempty"`
	Plans     []extract.ExtractedPlan `json:"plans,omitempty" yaml:"plans,omitempty"`
	Error     string                  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Config controls a pipeline run.
type Config struct {
	Carriers      []reduce.Carrier
	FetchMode     scraper.FetchMode
	FetcherConfig scraper.FetcherConfig
	IncludeMarkup bool // Carry reduced markup into results
	SkipExtract   bool // Stop after reduction
}

// Pipeline runs the fetch-reduce-extract sequence for configured carriers.
type Pipeline struct {
	config    Config
	fetcher   scraper.Fetcher
	extractor *extract.Extractor
}

// New creates a pipeline. extractor may be nil when cfg.SkipExtract is
// set.
func New(cfg Config, extractor *extract.Extractor) (*Pipeline, error) {
	if len(cfg.Carriers) == 0 {
		cfg.Carriers = reduce.Carriers()
	}
	if cfg.FetchMode == "" {
		cfg.FetchMode = scraper.FetchModeDynamic
	}
	if !cfg.SkipExtract && extractor == nil {
		return nil, fmt.Errorf("extraction enabled but no extractor configured")
	}

	fetcher, err := scraper.NewFetcher(cfg.FetchMode, cfg.FetcherConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetcher: %w", err)
	}

	return &Pipeline{
		config:    cfg,
		fetcher:   fetcher,
		extractor: extractor,
	}, nil
}

// Run processes every configured carrier in order and returns one result
// per carrier. Per-carrier failures are recorded in the result, not
// returned; the only errors Run itself returns come from context
// cancellation.
func (p *Pipeline) Run(ctx context.Context) ([]CarrierResult, error) {
	results := make([]CarrierResult, 0, len(p.config.Carriers))

	for _, carrier := range p.config.Carriers {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, p.runCarrier(ctx, carrier))
	}
	return results, nil
}

// Close releases the fetcher's resources.
func (p *Pipeline) Close() error {
	return p.fetcher.Close()
}

func (p *Pipeline) runCarrier(ctx context.Context, carrier reduce.Carrier) CarrierResult {
	log := logger.With("carrier", carrier.String())
	result := CarrierResult{Carrier: carrier.String()}

	page, ok := carrierPages[carrier]
	if !ok {
		result.Error = fmt.Sprintf("no pricing page registered for carrier %s", carrier)
		return result
	}
	result.URL = page.URL

	log.Info("fetching pricing page", "url", page.URL)
	content, err := p.fetcher.Fetch(ctx, page.URL, scraper.FetchOptions{
		WaitForSelector: page.WaitSelector,
		WaitDuration:    page.SettleTime,
	})
	if err != nil {
		result.Error = fmt.Sprintf("fetch failed: %v", err)
		log.Error("fetch failed", "error", err)
		return result
	}
	result.FetchedAt = content.FetchedAt

	reduced := reduce.Reduce(content.HTML, carrier)
	result.Stats = reduced.Stats
	if p.config.IncludeMarkup {
		result.Markup = reduced.Markup
	}
	log.Info("reduction complete", "stats", reduced.Stats.String())

	if reduced.Stats.PlanCount == 0 {
		log.Warn("no plan tiles found, skipping extraction")
		return result
	}
	if p.config.SkipExtract {
		return result
	}

	extracted, err := p.extractor.Extract(ctx, carrier.String(), reduced.Markup, reduced.Stats.PlanCount)
	if err != nil {
		result.Error = fmt.Sprintf("extraction failed: %v", err)
		log.Error("extraction failed", "error", err)
		return result
	}

	result.Plans = extracted.Extraction.Plans
	log.Info("extraction complete",
		"plans", len(result.Plans),
		"input_tokens", extracted.Usage.InputTokens,
		"output_tokens", extracted.Usage.OutputTokens,
		"retries", extracted.RetryCount)
	return result
}
