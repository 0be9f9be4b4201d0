package reduce

import (
	"strings"
	"testing"
)

func TestStats_Finish(t *testing.T) {
	raw := strings.Repeat("x", 400)
	stats := newStats(raw)

	if stats.OriginalSizeBytes != 400 {
		t.Errorf("OriginalSizeBytes = %d, want 400", stats.OriginalSizeBytes)
	}
	if stats.OriginalTokensApprox != 100 {
		t.Errorf("OriginalTokensApprox = %d, want 100", stats.OriginalTokensApprox)
	}

	stats.finish(strings.Repeat("y", 100), 3)

	if stats.StrippedSizeBytes != 100 {
		t.Errorf("StrippedSizeBytes = %d, want 100", stats.StrippedSizeBytes)
	}
	if stats.StrippedTokensApprox != 25 {
		t.Errorf("StrippedTokensApprox = %d, want 25", stats.StrippedTokensApprox)
	}
	if stats.TokensSaved != 75 {
		t.Errorf("TokensSaved = %d, want 75", stats.TokensSaved)
	}
	if stats.ReductionPercent != 75.0 {
		t.Errorf("ReductionPercent = %v, want 75.0", stats.ReductionPercent)
	}
	if stats.PlanCount != 3 {
		t.Errorf("PlanCount = %d, want 3", stats.PlanCount)
	}
}

func TestStats_FinishEmptyInput(t *testing.T) {
	stats := newStats("")
	stats.finish("", 0)

	if stats.ReductionPercent != 0 {
		t.Errorf("ReductionPercent = %v, want 0 for empty input", stats.ReductionPercent)
	}
	if stats.TokensSaved != 0 {
		t.Errorf("TokensSaved = %d, want 0", stats.TokensSaved)
	}
}

func TestStats_PercentRounding(t *testing.T) {
	stats := newStats(strings.Repeat("x", 3))
	stats.finish("x", 0)

	// 2/3 saved rounds to two decimal places
	if stats.ReductionPercent != 66.67 {
		t.Errorf("ReductionPercent = %v, want 66.67", stats.ReductionPercent)
	}
}

func TestStats_String(t *testing.T) {
	stats := newStats(strings.Repeat("x", 400))
	stats.TilesBeforeDedup = 5
	stats.TilesAfterDedup = 2
	stats.finish("tiny", 2)

	s := stats.String()
	for _, want := range []string{"plans 2", "tiles 5 -> 2", "400"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
