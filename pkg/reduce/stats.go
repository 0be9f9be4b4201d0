package reduce

import (
	"fmt"
	"math"
)

// Stats captures what a single reduction did. All counters describe one
// Reduce call; nothing is accumulated across calls.
type Stats struct {
	OriginalSizeBytes    int     `json:"original_size_bytes"`
	StrippedSizeBytes    int     `json:"stripped_size_bytes"`
	OriginalTokensApprox int     `json:"original_tokens_approx"`
	StrippedTokensApprox int     `json:"stripped_tokens_approx"`
	TokensSaved          int     `json:"tokens_saved"`
	ReductionPercent     float64 `json:"reduction_percent"`
	PlanCount            int     `json:"plan_count"`
	TilesBeforeDedup     int     `json:"tiles_before_dedup"`
	TilesAfterDedup      int     `json:"tiles_after_dedup"`
}

// approxTokens estimates token count from byte size at roughly four bytes
// per token, which tracks how LLM tokenizers treat English HTML.
func approxTokens(sizeBytes int) int {
	return sizeBytes / 4
}

// newStats seeds the size counters from the raw input.
func newStats(rawMarkup string) Stats {
	size := len(rawMarkup)
	return Stats{
		OriginalSizeBytes:    size,
		OriginalTokensApprox: approxTokens(size),
	}
}

// finish fills the output-side counters once the final markup is known.
func (s *Stats) finish(markup string, planCount int) {
	s.StrippedSizeBytes = len(markup)
	s.StrippedTokensApprox = approxTokens(s.StrippedSizeBytes)
	s.TokensSaved = s.OriginalTokensApprox - s.StrippedTokensApprox
	s.PlanCount = planCount
	if s.OriginalSizeBytes > 0 {
		pct := float64(s.OriginalSizeBytes-s.StrippedSizeBytes) / float64(s.OriginalSizeBytes) * 100
		s.ReductionPercent = math.Round(pct*100) / 100
	}
}

// String returns a one-line human-readable summary.
func (s Stats) String() string {
	return fmt.Sprintf("size %d -> %d bytes (%.1f%% reduction), tokens %d -> %d (%d saved), tiles %d -> %d, plans %d",
		s.OriginalSizeBytes, s.StrippedSizeBytes, s.ReductionPercent,
		s.OriginalTokensApprox, s.StrippedTokensApprox, s.TokensSaved,
		s.TilesBeforeDedup, s.TilesAfterDedup, s.PlanCount)
}
