package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type testResult struct {
	Carrier   string `json:"carrier" yaml:"carrier"`
	PlanCount int    `json:"plan_count" yaml:"plan_count"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"jsonl", FormatJSONL, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestJSONWriter_SingleItem(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Write(testResult{Carrier: "telus", PlanCount: 6}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	var got testResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a single JSON object: %v\n%s", err, buf.String())
	}
	if got.Carrier != "telus" || got.PlanCount != 6 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestJSONWriter_MultipleItems_Array(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}

	w.Write(testResult{Carrier: "rogers", PlanCount: 4})
	w.Write(testResult{Carrier: "bell", PlanCount: 5})
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	var got []testResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, buf.String())
	}
	if len(got) != 2 || got[0].Carrier != "rogers" || got[1].Carrier != "bell" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestJSONWriter_Compact(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatJSON, WithPretty(false))
	if err != nil {
		t.Fatal(err)
	}

	w.Write(testResult{Carrier: "fido", PlanCount: 3})
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	if strings.Contains(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		t.Errorf("compact output should be one line, got %q", buf.String())
	}
}

func TestJSONLWriter_OneLinePerItem(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatJSONL)
	if err != nil {
		t.Fatal(err)
	}

	w.Write(testResult{Carrier: "koodo", PlanCount: 7})
	w.Write(testResult{Carrier: "virgin", PlanCount: 5})
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		var got testResult
		if err := json.Unmarshal([]byte(line), &got); err != nil {
			t.Errorf("line is not valid JSON: %v\n%s", err, line)
		}
	}
}

func TestYAMLWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatYAML)
	if err != nil {
		t.Fatal(err)
	}

	w.Write(testResult{Carrier: "freedom", PlanCount: 8})
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "carrier: freedom") {
		t.Errorf("expected YAML carrier field, got %q", out)
	}
	if !strings.Contains(out, "plan_count: 8") {
		t.Errorf("expected YAML plan_count field, got %q", out)
	}
}
