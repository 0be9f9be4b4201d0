package reduce

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// virginStrategy targets an AngularJS page: plan-container custom
// elements when the markup still has them, otherwise a heuristic scan for
// divs that read like a plan card (a dollar amount plus a data or
// talk-and-text mention, at card-sized text length). Candidates whose
// price never resolves are dropped rather than rendered as unknown.
type virginStrategy struct{}

var (
	virginDollarRe      = regexp.MustCompile(`\$\d+`)
	virginDataMentionRe = regexp.MustCompile(`(?i)\d+\s*(GB|MB)|pay\s*per\s*use|talk\s*and\s*text`)
	virginTalkBasicRe   = regexp.MustCompile(`(?i)talk\s*and\s*text|basic`)
	virginQualPriceRe   = regexp.MustCompile(`(?i)\$(\d+(?:\.\d+)?)\s*(?:/|per)\s*mo`)
	virginTightDataRe   = regexp.MustCompile(`(?i)\d+(GB|MB)`)
	virginTalkTextRe    = regexp.MustCompile(`(?i)talk\s*and\s*text`)
	virginPriceOnlyRe   = regexp.MustCompile(`(?i)^\$?\d+.*mo`)
	virginSplitRe       = regexp.MustCompile(`\s{3,}`)
)

var virginHeadingSkips = []string{
	"warning", "get", "affordable", "find", "data, talk and text",
	"all plans include", "all plans", "plans include", "new activations only",
	"internet members", "members only",
}

var virginFeatureSkips = []string{
	"new activations only", "tooltip", "view rates", "suspicious call detection",
}

func (virginStrategy) Locate(doc *goquery.Document) []*Candidate {
	var candidates []*Candidate

	doc.Find("plan-container").Each(func(_ int, pc *goquery.Selection) {
		inner := pc.Find("div.plan").First()
		if inner.Length() > 0 {
			candidates = append(candidates, &Candidate{Sel: inner})
			return
		}
		candidates = append(candidates, &Candidate{Sel: pc})
	})
	if len(candidates) > 0 {
		return candidates
	}

	doc.Find("div").Each(func(_ int, div *goquery.Selection) {
		text := textOf(div)
		if len(text) <= 100 || len(text) >= 3000 {
			return
		}
		if !virginDollarRe.MatchString(text) {
			return
		}
		if !virginDataMentionRe.MatchString(text) && !virginTalkBasicRe.MatchString(text) {
			return
		}
		// A card-sized parent separates real tiles from page wrappers.
		if parent := div.Parent(); parent.Length() > 0 && len(parent.Text()) >= 10000 {
			return
		}
		candidates = append(candidates, &Candidate{Sel: div})
	})
	return candidates
}

func (st virginStrategy) Identity(c *Candidate) IdentityKey {
	return IdentityKey{
		Name:  st.name(c.Sel),
		Price: st.price(c.Sel),
		Data:  st.data(c.Sel),
	}
}

func (st virginStrategy) Normalize(c *Candidate) *PlanRecord {
	price := st.price(c.Sel)
	name := st.name(c.Sel)
	if !validName(name, nil) || price == ValueUnknown {
		return nil
	}

	rec := &PlanRecord{
		Name:  name,
		Price: price,
		Data:  st.data(c.Sel),
	}

	cls := classifySnippets(st.featureTexts(c.Sel))
	rec.Features = cls.features
	rec.Discounts = cls.discounts
	rec.Promotions = cls.promotions
	return rec
}

func (virginStrategy) price(tile *goquery.Selection) string {
	priceEl := firstByAttrMatch(tile, "id", regexp.MustCompile(`(?i)^accss-monthlyPrice-`))
	if priceEl != nil {
		if p := canonicalPrice(priceEl.Text()); p != ValueUnknown {
			return p
		}
	}
	text := tile.Text()
	if m := virginQualPriceRe.FindStringSubmatch(text); m != nil {
		return tidyPrice("$" + m[1])
	}
	return canonicalPrice(text)
}

// dataSpan finds the allowance description span, preferring the Angular
// binding classes over a content scan.
func (virginStrategy) dataSpan(tile *goquery.Selection) *goquery.Selection {
	span := tile.Find(`span[class*="planFeatures"], span[class*="RP_DATA"]`).First()
	if span.Length() > 0 {
		return span
	}
	var found *goquery.Selection
	tile.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := textOf(s)
		if dataRe.MatchString(text) || strings.Contains(strings.ToLower(text), "talk") {
			found = s
			return false
		}
		return true
	})
	return found
}

func (st virginStrategy) data(tile *goquery.Selection) string {
	if span := st.dataSpan(tile); span != nil {
		text := textOf(span)
		if d := canonicalData(text); d != ValueUnknown && d != DataUnlimited {
			return d
		}
		if virginTalkTextRe.MatchString(text) && !dataRe.MatchString(text) {
			return DataPayPerUse
		}
	}

	text := tile.Text()
	if d := canonicalData(text); d != ValueUnknown && d != DataUnlimited {
		return d
	}
	if payPerUseRe.MatchString(text) {
		return DataPayPerUse
	}
	if virginTalkTextRe.MatchString(text) && !dataRe.MatchString(text) {
		return DataPayPerUse
	}
	return ValueUnknown
}

func (st virginStrategy) name(tile *goquery.Selection) string {
	if span := st.dataSpan(tile); span != nil {
		text := textOf(span)
		if m := virginTightDataRe.FindString(strings.ReplaceAll(text, " ", "")); m != "" {
			return strings.ToUpper(m)
		}
		if virginTalkTextRe.MatchString(text) && !dataRe.MatchString(text) {
			return "Talk and Text"
		}
	}

	var name string
	tile.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := textOf(h)
		if text == "" || len(text) >= maxNameLength {
			return true
		}
		if containsAny(text, virginHeadingSkips) {
			return true
		}
		name = text
		return false
	})
	if name != "" {
		return name
	}

	switch d := st.data(tile); d {
	case ValueUnknown:
	case DataPayPerUse:
		return "Talk and Text"
	default:
		return strings.ReplaceAll(d, " ", "")
	}
	return ""
}

func (virginStrategy) featureTexts(tile *goquery.Selection) []string {
	var texts []string
	tile.Find("ul").EachWithBreak(func(_ int, ul *goquery.Selection) bool {
		clone := ul.Clone()
		clone.Find("sup").Remove()
		clone.Find("li").Each(func(_ int, li *goquery.Selection) {
			text := textOf(li)
			if len(text) <= minFeatureText || virginPriceOnlyRe.MatchString(text) {
				return
			}
			if containsAny(text, virginFeatureSkips) {
				return
			}
			for _, part := range virginSplitRe.Split(text, -1) {
				part = strings.TrimSpace(wsRe.ReplaceAllString(part, " "))
				if len(part) > minFeatureText {
					texts = append(texts, part)
				}
			}
		})
		return len(texts) == 0
	})
	return texts
}
