package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/planwatch/planwatch/internal/llm"
	"github.com/planwatch/planwatch/internal/logger"
)

// Result holds a validated extraction plus run metadata.
type Result struct {
	Extraction  *Extraction
	Raw         string
	Usage       llm.Usage
	RetryCount  int
	LLMDuration time.Duration
}

// Config holds extractor settings.
type Config struct {
	MaxRetries  int
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns sensible defaults. Temperature stays low: this is
// transcription, not generation.
func DefaultConfig() Config {
	return Config{
		MaxRetries:  3,
		Temperature: 0.1,
		MaxTokens:   8192,
	}
}

// Option configures the extractor.
type Option func(*Config)

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(n int) Option {
	return func(c *Config) { c.MaxRetries = n }
}

// WithTemperature sets the LLM temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) { c.Temperature = t }
}

// WithMaxTokens sets the maximum tokens for responses.
func WithMaxTokens(n int) Option {
	return func(c *Config) { c.MaxTokens = n }
}

// Extractor performs LLM-based plan extraction from reduced markup.
type Extractor struct {
	provider llm.Provider
	config   Config
}

// New creates an Extractor on the given provider.
func New(provider llm.Provider, opts ...Option) *Extractor {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Extractor{provider: provider, config: cfg}
}

// Extract runs the extraction loop: prompt, parse, validate, and retry
// with the validation error folded into the next prompt. planCount anchors
// the expected number of plans; pass 0 when unknown.
func (e *Extractor) Extract(ctx context.Context, carrier, markup string, planCount int) (Result, error) {
	log := logger.With("carrier", carrier, "provider", e.provider.Name())
	log.Debug("extraction starting", "markup_size", len(markup), "plan_count", planCount)

	var (
		lastErr    error
		totalUsage llm.Usage
		duration   time.Duration
	)

	for attempt := 0; attempt <= e.config.MaxRetries; attempt++ {
		start := time.Now()
		resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
			Messages: []llm.Message{
				{Role: llm.RoleSystem, Content: systemPrompt},
				{Role: llm.RoleUser, Content: BuildPrompt(carrier, markup, planCount, lastErr)},
			},
			MaxTokens:   e.config.MaxTokens,
			Temperature: e.config.Temperature,
			JSONSchema:  planSchema(),
		})
		duration += time.Since(start)
		totalUsage.Add(resp.Usage)

		if err != nil {
			// Provider errors are not improved by reprompting.
			return Result{Usage: totalUsage, RetryCount: attempt, LLMDuration: duration},
				fmt.Errorf("completion failed: %w", err)
		}

		extraction, err := parseExtraction(resp.Content)
		if err == nil {
			if extraction.Carrier == "" {
				extraction.Carrier = carrier
			}
			err = extraction.Validate()
			if err == nil {
				log.Debug("extraction complete",
					"plans", len(extraction.Plans),
					"attempts", attempt+1,
					"input_tokens", totalUsage.InputTokens,
					"output_tokens", totalUsage.OutputTokens)
				return Result{
					Extraction:  extraction,
					Raw:         resp.Content,
					Usage:       totalUsage,
					RetryCount:  attempt,
					LLMDuration: duration,
				}, nil
			}
		}

		lastErr = err
		log.Debug("extraction attempt failed", "attempt", attempt+1, "error", err)
	}

	return Result{Usage: totalUsage, RetryCount: e.config.MaxRetries, LLMDuration: duration},
		fmt.Errorf("extraction failed after %d attempts: %w", e.config.MaxRetries+1, lastErr)
}
