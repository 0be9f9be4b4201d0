package reduce

import (
	"strings"
	"testing"
)

func TestRenderRecords(t *testing.T) {
	records := []*PlanRecord{
		{
			Name:         "Essentials",
			Price:        "$70",
			RegularPrice: "$80",
			Data:         "60 GB",
			Network:      "5G network access",
			Features:     []string{"Unlimited Canada-wide calling"},
			Discounts:    []string{"$10 bundle discount"},
		},
	}

	out := renderRecords(records)

	for _, want := range []string{
		`<div class="plan">`,
		"<h2>Essentials</h2>",
		`<p class="regular-price">Regular price: $80</p>`,
		`<p class="price">Current price: $70</p>`,
		`<p class="data">Data: 60 GB</p>`,
		`<p class="network">5G network access</p>`,
		`<ul class="features">`,
		"<li>Unlimited Canada-wide calling</li>",
		`<ul class="discounts">`,
		"<li>$10 bundle discount</li>",
		"</div>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRecords_FieldOmission(t *testing.T) {
	tests := []struct {
		name     string
		record   *PlanRecord
		excludes []string
	}{
		{
			name:     "regular price equal to price omitted",
			record:   &PlanRecord{Name: "P", Price: "$50", RegularPrice: "$50", Data: "10 GB"},
			excludes: []string{"regular-price"},
		},
		{
			name:     "unknown price omitted",
			record:   &PlanRecord{Name: "P", Price: ValueUnknown, Data: "10 GB"},
			excludes: []string{"Current price"},
		},
		{
			name:     "unknown data omitted",
			record:   &PlanRecord{Name: "P", Price: "$50", Data: ValueUnknown},
			excludes: []string{`class="data"`},
		},
		{
			name:     "empty lists omitted",
			record:   &PlanRecord{Name: "P", Price: "$50", Data: "10 GB"},
			excludes: []string{"<ul", "features", "discounts", "promotions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderRecords([]*PlanRecord{tt.record})
			for _, exclude := range tt.excludes {
				if strings.Contains(out, exclude) {
					t.Errorf("output should not contain %q:\n%s", exclude, out)
				}
			}
		})
	}
}

func TestRenderRecords_Escaping(t *testing.T) {
	out := renderRecords([]*PlanRecord{
		{Name: "Talk & Text <Special>", Price: "$25", Data: DataPayPerUse},
	})

	if !strings.Contains(out, "<h2>Talk &amp; Text &lt;Special&gt;</h2>") {
		t.Errorf("name not escaped:\n%s", out)
	}
	if strings.Contains(out, "<Special>") {
		t.Errorf("raw markup leaked into output:\n%s", out)
	}
}

func TestRenderRecords_Deterministic(t *testing.T) {
	records := []*PlanRecord{
		{Name: "A", Price: "$50", Data: "20 GB", Features: []string{"f1", "f2 text"}},
		{Name: "B", Price: "$60", Data: "50 GB", Promotions: []string{"bonus offer text"}},
	}

	first := renderRecords(records)
	second := renderRecords(records)
	if first != second {
		t.Error("identical input produced different output")
	}

	if strings.Count(first, `<div class="plan">`) != 2 {
		t.Errorf("expected 2 plan blocks:\n%s", first)
	}
	if strings.Index(first, "<h2>A</h2>") > strings.Index(first, "<h2>B</h2>") {
		t.Error("record order not preserved")
	}
}
