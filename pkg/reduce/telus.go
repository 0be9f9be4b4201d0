package reduce

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// telusStrategy keys off the rate-plan micro-frontend's data-testid
// attributes. When the testid convention is absent, tiles are recovered by
// grouping around h3 headings: the nearest ancestor div that contains
// exactly one h3 is taken as the tile boundary.
type telusStrategy struct{}

const telusHeadingWalkDepth = 3

var telusNameDenylist = map[string]bool{
	"features":            true,
	"unlock these offers": true,
	"mobility plans":      true,
	"talk & text":         true,
}

var telusRibbons = map[string]bool{
	"only at telus":        true,
	"mobility plan":        true,
	"roaming destinations": true,
}

func (telusStrategy) Locate(doc *goquery.Document) []*Candidate {
	var candidates []*Candidate
	collect := func(_ int, s *goquery.Selection) {
		candidates = append(candidates, &Candidate{Sel: s})
	}

	doc.Find(`[data-testid*="mfe-rate-plan-tile-"][data-testid*="-container"]`).Each(collect)
	if len(candidates) > 0 {
		return candidates
	}

	doc.Find(`[data-testid*="mfe-rate-plan-card-id-"]`).Each(collect)
	if len(candidates) > 0 {
		return candidates
	}

	// Heading fallback: walk up from each plan h3 to a container owning
	// just that heading, deduplicating shared ancestors by node identity.
	var seenNodes []*goquery.Selection
	doc.Find("h3").Each(func(_ int, h *goquery.Selection) {
		if telusNameDenylist[strings.ToLower(textOf(h))] {
			return
		}
		tile := closestAncestor(h, telusHeadingWalkDepth, func(s *goquery.Selection) bool {
			return goquery.NodeName(s) == "div" && s.Find("h3").Length() == 1
		})
		if tile == nil {
			return
		}
		for _, prior := range seenNodes {
			if prior.Nodes[0] == tile.Nodes[0] {
				return
			}
		}
		seenNodes = append(seenNodes, tile)
		candidates = append(candidates, &Candidate{Sel: tile})
	})
	return candidates
}

func (st telusStrategy) Identity(c *Candidate) IdentityKey {
	return IdentityKey{
		Name:  st.name(c.Sel),
		Price: st.price(c.Sel),
		Data:  st.data(c.Sel),
	}
}

func (st telusStrategy) Normalize(c *Candidate) *PlanRecord {
	name := st.name(c.Sel)
	if !validName(name, nil) {
		return nil
	}

	rec := &PlanRecord{
		Name:         name,
		Price:        st.price(c.Sel),
		RegularPrice: st.regularPrice(c.Sel),
		Data:         st.data(c.Sel),
		Ribbon:       st.ribbon(c.Sel),
	}

	cls := classifySnippets(st.featureTexts(c.Sel))
	rec.Features = cls.features
	rec.Discounts = cls.discounts
	rec.Promotions = cls.promotions
	return rec
}

func (telusStrategy) name(tile *goquery.Selection) string {
	for _, sel := range []string{"h3", "h2", "h4"} {
		h := tile.Find(sel).First()
		if h.Length() == 0 {
			continue
		}
		text := textOf(h)
		if text != "" && !telusNameDenylist[strings.ToLower(text)] {
			return text
		}
	}
	return ""
}

func (telusStrategy) price(tile *goquery.Selection) string {
	lockup := tile.Find(`[data-testid*="plan-price-lockup"], [class*="price-lockup"]`).First()
	if lockup.Length() > 0 {
		if p := canonicalPrice(textWithout(lockup, "s, del")); p != ValueUnknown {
			return p
		}
	}
	return canonicalPrice(textWithout(tile, "s, del"))
}

func (telusStrategy) regularPrice(tile *goquery.Selection) string {
	before := tile.Find(`[data-testid*="plan-price-before-discounts"]`).First()
	if before.Length() > 0 {
		if p := canonicalPrice(before.Text()); p != ValueUnknown {
			return p
		}
	}
	struck := tile.Find("s, del").First()
	if struck.Length() > 0 {
		if p := canonicalPrice(struck.Text()); p != ValueUnknown {
			return p
		}
	}
	return ""
}

// data combines the bucket amount with its speed tier when both are
// tagged.
func (telusStrategy) data(tile *goquery.Selection) string {
	amount := tile.Find(`[data-testid*="data-bucket-amount"]`).First()
	if amount.Length() == 0 {
		return canonicalData(tile.Text())
	}
	d := canonicalData(amount.Text())
	if d == ValueUnknown {
		return d
	}

	speed := tile.Find(`[data-testid*="data-bucket-speed"], [data-testid*="speedAllowance"]`).First()
	if speed.Length() > 0 {
		if s := textOf(speed); s != "" {
			return d + " " + s
		}
	}
	return d
}

func (telusStrategy) ribbon(tile *goquery.Selection) string {
	var ribbon string
	tile.Find("span, div, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := textOf(s)
		if telusRibbons[strings.ToLower(text)] {
			ribbon = text
			return false
		}
		return true
	})
	return ribbon
}

func (telusStrategy) featureTexts(tile *goquery.Selection) []string {
	var texts []string
	tile.Find("li").Each(func(_ int, li *goquery.Selection) {
		texts = append(texts, textOf(li))
	})
	if len(texts) > 0 {
		return texts
	}
	tile.Find(`[data-testid*="allowance-description"]`).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, textOf(s))
	})
	return texts
}
