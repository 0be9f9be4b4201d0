package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlWriter buffers items and flushes them as one YAML document.
type yamlWriter struct {
	w     *bufio.Writer
	items []any
}

func newYAMLWriter(w io.Writer) *yamlWriter {
	return &yamlWriter{w: bufio.NewWriter(w)}
}

func (w *yamlWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

func (w *yamlWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	var doc any
	if len(w.items) == 1 {
		doc = w.items[0]
	} else {
		doc = w.items
	}

	if err := encoder.Encode(doc); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	return w.w.Flush()
}
