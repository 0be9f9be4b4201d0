package reduce

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// harvest is the completed first phase of a reduction: tiles located,
// identity keys computed, and every unique tile normalized. The stripper
// only accepts a harvest, never a bare document, so generic noise removal
// can never run ahead of strategy execution on carriers whose selectors
// depend on attributes the stripper removes.
type harvest struct {
	doc     *goquery.Document
	records []*PlanRecord
	before  int
	after   int
}

// boilerplatePhrases are text fragments whose containing node carries no
// plan information: legal disclaimers, activation clauses, and navigation
// labels seen across the carrier pages.
var boilerplatePhrases = []string{
	"New activations only",
	"Offer ends",
	"Available 7 days a week",
	"View more plans",
	"Bring your own phone",
	"Full plan details",
	"See details",
	"Skip to",
	"Find a store",
	"Book an appointment",
	"Log in",
}

// nonSemanticAttrPrefixes are attribute families that never carry plan
// content: test hooks, accessibility metadata, and layout helpers.
var nonSemanticAttrPrefixes = []string{"data-", "aria-", "dir"}

// stripper performs carrier-independent noise removal on a document that
// has already yielded its extracted records. Its output is only used as
// the degraded fallback when a reduction produced no plan records.
type stripper struct {
	phrases  []string
	prefixes []string
}

// newStripper returns a stripper with the default boilerplate phrase list
// and attribute prefix set.
func newStripper() *stripper {
	return &stripper{
		phrases:  boilerplatePhrases,
		prefixes: nonSemanticAttrPrefixes,
	}
}

// cleanedFallback strips the harvested document and serializes what is
// left. Malformed or empty documents come out as whatever cleaned markup
// remains, possibly the empty string.
func (st *stripper) cleanedFallback(h *harvest) string {
	st.strip(h.doc)

	body := h.doc.Find("body")
	out, err := body.Html()
	if err != nil || strings.TrimSpace(out) == "" {
		out, err = h.doc.Html()
		if err != nil {
			return ""
		}
	}
	return strings.TrimSpace(out)
}

// strip applies the generic removal passes in a fixed order: interactive
// controls and footnote markers first, then attribute noise, boilerplate
// text, and finally empty containers opened up by the earlier passes.
func (st *stripper) strip(doc *goquery.Document) {
	sel := doc.Selection

	doc.Find("button, sup, script, style, noscript").Remove()
	doc.Find("nav, header, footer, form").Remove()

	removeAttrsWithPrefix(sel, st.prefixes...)

	st.removeBoilerplate(doc)
	st.flattenCallouts(doc)
	st.removeEmptyContainers(doc)
}

// removeBoilerplate drops nodes whose text matches a configured phrase.
func (st *stripper) removeBoilerplate(doc *goquery.Document) {
	patterns := make([]*regexp.Regexp, len(st.phrases))
	for i, phrase := range st.phrases {
		patterns[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(phrase))
	}

	doc.Find("div, p, span, li, a").Each(func(_ int, s *goquery.Selection) {
		text := textOf(s)
		if text == "" {
			return
		}
		for _, re := range patterns {
			if re.MatchString(text) && len(text) < 200 {
				s.Remove()
				return
			}
		}
	})
}

// flattenCallouts collapses decorative wrapper nodes that only exist to
// style a short badge or note, keeping their text.
func (st *stripper) flattenCallouts(doc *goquery.Document) {
	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		text := textOf(s)
		if text == "" || len(text) > 60 {
			return
		}
		if s.Children().Length() > 1 && s.Find("div, span").Length() == s.Children().Length() {
			replaceWithText(s, text)
		}
	})
}

// removeEmptyContainers drops nodes with no text and no children. Removing
// a child can empty its parent, so the pass repeats until stable (bounded).
func (st *stripper) removeEmptyContainers(doc *goquery.Document) {
	for pass := 0; pass < 3; pass++ {
		removed := 0
		doc.Find("div, span, section, ul, li, p").Each(func(_ int, s *goquery.Selection) {
			if textOf(s) == "" && s.Children().Length() == 0 {
				s.Remove()
				removed++
			}
		})
		if removed == 0 {
			break
		}
	}
}
