package reduce

import (
	"regexp"
	"strings"
)

// Sentinel values for fields that could not be confidently parsed or that
// stand for a known non-numeric plan characteristic.
const (
	ValueUnknown   = "unknown"
	DataUnlimited  = "Unlimited"
	DataPayPerUse  = "pay per use"
	maxNameLength  = 50
	maxFeatures    = 12
	maxDiscounts   = 10
	maxPromotions  = 5
	minFeatureText = 5
)

var (
	priceRe     = regexp.MustCompile(`\$\s*\d+(?:\.\d+)?`)
	priceQualRe = regexp.MustCompile(`(?i)\$\s*(\d+(?:\.\d+)?)(?:\s*/?\s*mo\.?|\s+per\s+mo(?:nth)?\.?)`)
	dataRe      = regexp.MustCompile(`(?i)(\d+)\s?(GB|MB)`)
	unlimitedRe = regexp.MustCompile(`(?i)\bunlimited\b`)
	payPerUseRe = regexp.MustCompile(`(?i)pay\s*per\s*use`)
	wsRe        = regexp.MustCompile(`\s+`)
	trailNumRe  = regexp.MustCompile(`\s*\b\d+\s*$`)
	bulletRe    = regexp.MustCompile(`^\s*[•\-\*]\s*`)
	zeroFracRe  = regexp.MustCompile(`\.0+$`)
)

// Keyword sets splitting feature-like text into discounts and promotions.
// Anything matching neither stays a generic feature.
var (
	discountKeywords  = []string{"discount", "savings", "price lock", "bundle", "per line", "autopay", "credit"}
	promotionKeywords = []string{"offer", "bonus", "included", "promo"}
)

// canonicalPrice reduces a price string to "$" + digits with an optional
// decimal part, dropping "per month" / "/mo" qualifiers and an all-zero
// decimal part. Returns the unknown sentinel when no $-prefixed amount is
// present.
func canonicalPrice(text string) string {
	m := priceRe.FindString(text)
	if m == "" {
		return ValueUnknown
	}
	return tidyPrice(m)
}

// canonicalQualifiedPrice behaves like canonicalPrice but only accepts
// amounts followed by a monthly qualifier, so decorative dollar figures
// (device credits, one-time fees) are skipped.
func canonicalQualifiedPrice(text string) string {
	m := priceQualRe.FindStringSubmatch(text)
	if m == nil {
		return ValueUnknown
	}
	return tidyPrice("$" + m[1])
}

func tidyPrice(raw string) string {
	p := strings.ReplaceAll(raw, " ", "")
	if strings.Contains(p, ".") {
		p = zeroFracRe.ReplaceAllString(p, "")
	}
	return p
}

// canonicalData extracts the first data allowance from text: "N GB"/"N MB"
// with original spacing collapsed, or the Unlimited / pay-per-use sentinels
// when qualifying text is present without a numeric match.
func canonicalData(text string) string {
	if m := dataRe.FindString(text); m != "" {
		return wsRe.ReplaceAllString(strings.TrimSpace(m), " ")
	}
	if unlimitedRe.MatchString(text) {
		return DataUnlimited
	}
	if payPerUseRe.MatchString(text) {
		return DataPayPerUse
	}
	return ValueUnknown
}

// cleanSnippet normalizes a feature-like text fragment: whitespace collapsed,
// leading bullet markers and trailing footnote digits removed.
func cleanSnippet(s string) string {
	s = wsRe.ReplaceAllString(s, " ")
	s = bulletRe.ReplaceAllString(s, "")
	s = trailNumRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// containsAny reports whether the lowercase form of s contains any keyword.
func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// dedupeStrings drops exact duplicates while preserving first-occurrence
// order, truncating at max.
func dedupeStrings(values []string, max int) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == max {
			break
		}
	}
	return out
}

// classified holds the outcome of splitting raw feature text by keyword.
type classified struct {
	features   []string
	discounts  []string
	promotions []string
}

// classifySnippets cleans, deduplicates, and routes feature-like snippets
// into discounts, promotions, or generic features.
func classifySnippets(snippets []string) classified {
	var c classified
	for _, raw := range snippets {
		s := cleanSnippet(raw)
		if len(s) <= minFeatureText {
			continue
		}
		switch {
		case containsAny(s, discountKeywords):
			c.discounts = append(c.discounts, s)
		case containsAny(s, promotionKeywords):
			c.promotions = append(c.promotions, s)
		default:
			c.features = append(c.features, s)
		}
	}
	c.features = dedupeStrings(c.features, maxFeatures)
	c.discounts = dedupeStrings(c.discounts, maxDiscounts)
	c.promotions = dedupeStrings(c.promotions, maxPromotions)
	return c
}

// validName reports whether a candidate name is usable: non-empty, short
// enough to be a plan label, and not on the shared denylist of non-plan
// text.
func validName(name string, denylist []string) bool {
	if name == "" || len(name) > maxNameLength {
		return false
	}
	lower := strings.ToLower(name)
	for _, deny := range denylist {
		if strings.Contains(lower, deny) {
			return false
		}
	}
	return true
}
