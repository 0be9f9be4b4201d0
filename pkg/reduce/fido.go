package reduce

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fidoStrategy has no tile attribute to anchor on. Plan name spans carry
// a title typography class; the tile boundary is recovered by walking up
// from each name span to the nearest ancestor that also holds a price
// element.
type fidoStrategy struct{}

const fidoAncestorWalkDepth = 6

var (
	fidoNameMarkers = []string{"byop", "talk & text", "gb", "complete"}
	fidoQualPriceRe = regexp.MustCompile(`(?i)\$(\d+(?:\.\d+)?)\s*(?:per\s*mo|/mo)`)
)

func (fidoStrategy) Locate(doc *goquery.Document) []*Candidate {
	var candidates []*Candidate
	doc.Find(`span[class*="text-title-5"]`).Each(func(_ int, span *goquery.Selection) {
		text := textOf(span)
		if !containsAny(text, fidoNameMarkers) {
			return
		}
		tile := closestAncestor(span, fidoAncestorWalkDepth, func(s *goquery.Selection) bool {
			switch goquery.NodeName(s) {
			case "div", "article", "section":
				return s.Find(`[class*="ds-price"]`).Length() > 0
			}
			return false
		})
		if tile != nil {
			candidates = append(candidates, &Candidate{Sel: tile})
		}
	})
	return candidates
}

func (st fidoStrategy) Identity(c *Candidate) IdentityKey {
	return IdentityKey{
		Name:  st.name(c.Sel),
		Price: st.price(c.Sel),
		Data:  canonicalData(c.Sel.Text()),
	}
}

func (st fidoStrategy) Normalize(c *Candidate) *PlanRecord {
	name := st.name(c.Sel)
	if !validName(name, nil) {
		return nil
	}

	rec := &PlanRecord{
		Name:  name,
		Price: st.price(c.Sel),
		Data:  canonicalData(c.Sel.Text()),
	}

	cls := classifySnippets(st.featureTexts(c.Sel))
	rec.Features = cls.features
	rec.Discounts = cls.discounts
	rec.Promotions = cls.promotions
	return rec
}

// name strips the "- BYOP Plan" suffix the title span carries on
// bring-your-own-phone tiles.
func (fidoStrategy) name(tile *goquery.Selection) string {
	span := tile.Find(`span[class*="text-title-5"]`).First()
	if span.Length() > 0 {
		name := strings.TrimSpace(strings.ReplaceAll(textOf(span), "- BYOP Plan", ""))
		if name != "" {
			return name
		}
	}

	var name string
	tile.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := textOf(h)
		if text == "" || len(text) >= maxNameLength {
			return true
		}
		name = strings.TrimSpace(strings.ReplaceAll(text, "- BYOP Plan", ""))
		return false
	})
	return name
}

func (fidoStrategy) price(tile *goquery.Selection) string {
	priceEl := tile.Find(`[class*="ds-price"]`).First()
	if priceEl.Length() > 0 {
		if p := canonicalPrice(priceEl.Text()); p != ValueUnknown {
			return p
		}
	}
	if m := fidoQualPriceRe.FindStringSubmatch(tile.Text()); m != nil {
		return tidyPrice("$" + m[1])
	}
	return ValueUnknown
}

func (fidoStrategy) featureTexts(tile *goquery.Selection) []string {
	var texts []string
	tile.Find("ul").EachWithBreak(func(_ int, ul *goquery.Selection) bool {
		clone := ul.Clone()
		clone.Find("sup").Remove()
		clone.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := textOf(li); len(text) > minFeatureText {
				texts = append(texts, text)
			}
		})
		return len(texts) == 0
	})
	return texts
}
