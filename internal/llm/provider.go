// Package llm provides a unified interface over the LLM backends used for
// structured plan extraction.
package llm

import (
	"context"
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a chat message.
type Message struct {
	Role    Role
	Content string
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Add accumulates usage from another response, for multi-attempt
// extraction runs.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// CompletionRequest represents a request to the LLM.
type CompletionRequest struct {
	Messages    []Message
	MaxTokens   int
	Temperature float64
	JSONSchema  map[string]any // Structured-output schema, nil for free text
	StrictMode  bool           // Strict schema adherence where supported
}

// CompletionResponse represents the LLM response.
type CompletionResponse struct {
	Content      string
	FinishReason string
	Usage        Usage
	Model        string
}

// Provider is the core abstraction over LLM backends.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)

	// Name returns the provider identifier.
	Name() string

	// SupportsJSONSchema returns true if the provider has native
	// structured output.
	SupportsJSONSchema() bool
}

// ProviderConfig holds common configuration for providers.
type ProviderConfig struct {
	APIKey     string
	BaseURL    string // For OpenRouter or custom endpoints
	Model      string
	MaxRetries int
	Timeout    time.Duration
}

// DefaultProviderConfig returns sensible defaults.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		MaxRetries: 3,
		Timeout:    120 * time.Second,
	}
}
