package llm

import (
	"fmt"
	"os"
	"sort"
)

// ProviderFactory creates providers.
type ProviderFactory func(cfg ProviderConfig) (Provider, error)

// DefaultModels maps provider names to the model used when none is
// configured.
var DefaultModels = map[string]string{
	"anthropic":  "claude-sonnet-4-20250514",
	"openai":     "gpt-4o-mini",
	"openrouter": "xiaomi/mimo-v2-flash:free",
	"ollama":     "llama3.2",
}

var registry = map[string]ProviderFactory{}

// RegisterProvider adds a provider factory. Providers self-register from
// their init functions.
func RegisterProvider(name string, factory ProviderFactory) {
	registry[name] = factory
}

// NewProvider creates a provider by name.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s (available: %v)", name, AvailableProviders())
	}
	return factory(cfg)
}

// AvailableProviders returns the registered provider names, sorted.
func AvailableProviders() []string {
	providers := make([]string, 0, len(registry))
	for name := range registry {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

// DetectProvider picks a provider from the API keys present in the
// environment. Priority: OPENROUTER_API_KEY, ANTHROPIC_API_KEY,
// OPENAI_API_KEY, then Ollama (no key needed).
func DetectProvider() (provider string, apiKey string) {
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		return "openrouter", key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return "anthropic", key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return "openai", key
	}
	return "ollama", ""
}

// GetDefaultModel returns the default model for a provider.
func GetDefaultModel(provider string) string {
	return DefaultModels[provider]
}
