// Package output serializes pipeline results to JSON, JSONL, or YAML.
package output

import (
	"fmt"
	"io"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatJSONL, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %q (json, jsonl, yaml)", s)
	}
}

// Writer handles output serialization. JSON and YAML writers buffer until
// Flush so a run's results come out as one document; JSONL streams.
type Writer interface {
	// Write outputs a single result.
	Write(data any) error

	// Flush ensures all data is written.
	Flush() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
}

// WithPretty enables or disables pretty-printing for JSON.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{pretty: true, indent: "  "}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatJSON:
		return newJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatJSONL:
		return newJSONLWriter(w), nil
	case FormatYAML:
		return newYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
