package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// jsonWriter buffers items and flushes them as one JSON document. A single
// item is emitted directly; multiple items come out as an array.
type jsonWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
	items  []any
}

func newJSONWriter(w io.Writer, pretty bool, indent string) *jsonWriter {
	return &jsonWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
	}
}

func (w *jsonWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

func (w *jsonWriter) Flush() error {
	var doc any
	if len(w.items) == 1 {
		doc = w.items[0]
	} else {
		doc = w.items
	}

	var out []byte
	var err error
	if w.pretty {
		out, err = json.MarshalIndent(doc, "", w.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// jsonlWriter writes newline-delimited JSON, one item per line, flushed
// immediately so long runs stream.
type jsonlWriter struct {
	w *bufio.Writer
}

func newJSONLWriter(w io.Writer) *jsonlWriter {
	return &jsonlWriter{w: bufio.NewWriter(w)}
}

func (w *jsonlWriter) Write(data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *jsonlWriter) Flush() error {
	return w.w.Flush()
}
