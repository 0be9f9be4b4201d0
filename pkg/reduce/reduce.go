// Package reduce turns a rendered carrier pricing page into a minimal,
// carrier-agnostic markup fragment listing the distinct plan offers on the
// page. Seven carrier strategies locate plan tiles, deduplicate them by
// identity, and normalize each survivor into a canonical record; a
// deterministic renderer serializes the record list for the downstream
// structured-extraction stage.
//
// Reduce is a pure function of its inputs: it performs no I/O, holds no
// state between calls, and never fails — malformed input degrades to the
// noise-stripped document with zero plan records.
package reduce

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Result is the outcome of one reduction.
type Result struct {
	// Markup is the minimal fragment for the extraction stage, or the
	// noise-stripped document when no plan tiles were found.
	Markup string `json:"markup"`
	Stats  Stats  `json:"stats"`
}

// Reduce runs the full reduction for one page: locate candidate tiles with
// the carrier's strategy, deduplicate by identity key (first occurrence in
// document order wins), normalize each unique tile, and render the minimal
// markup. Strategy execution always completes before any generic noise
// stripping; several carriers locate tiles through attributes the stripper
// removes.
func Reduce(rawMarkup string, carrier Carrier) Result {
	stats := newStats(rawMarkup)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawMarkup))
	if err != nil {
		// net/html parses almost anything; a reader error still must
		// not escape. Empty fallback, zero records.
		stats.finish("", 0)
		return Result{Stats: stats}
	}

	strat, ok := strategyFor(carrier)
	if !ok {
		return fallback(&harvest{doc: doc}, stats)
	}

	candidates := strat.Locate(doc)
	unique := dedupe(strat, candidates)

	records := make([]*PlanRecord, 0, len(unique))
	for _, c := range unique {
		if rec := strat.Normalize(c); rec != nil {
			records = append(records, rec)
		}
	}

	h := &harvest{
		doc:     doc,
		records: records,
		before:  len(candidates),
		after:   len(unique),
	}
	stats.TilesBeforeDedup = h.before
	stats.TilesAfterDedup = h.after

	if len(records) == 0 {
		return fallback(h, stats)
	}

	markup := renderRecords(records)
	stats.finish(markup, len(records))
	return Result{Markup: markup, Stats: stats}
}

// fallback produces the degraded result for pages with no strategy or no
// located tiles: the noise-stripped document and a zero plan count.
func fallback(h *harvest, stats Stats) Result {
	markup := newStripper().cleanedFallback(h)
	stats.finish(markup, 0)
	return Result{Markup: markup, Stats: stats}
}
