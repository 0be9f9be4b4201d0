package reduce

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// rogersStrategy locates plan tiles by the design-system vertical-tile
// class convention. Plan names are not attribute-tagged, so the first
// short capitalized paragraph that is neither a price nor a known label
// is taken as the name.
type rogersStrategy struct{}

const rogersTileSelector = `[class*="dsa-vertical-tile"], [class*="ds-tile"], ds-tile, dsa-vertical-tile`

// rogersLabelText is paragraph text that looks like a name slot but never
// is one.
var rogersLabelText = map[string]bool{
	"features":   true,
	"plan perks": true,
	"get 3% cash back value with a rogers red credit card": true,
	"after auto-pay":            true,
	"price before incentives":   true,
	"rogers satellite included": true,
}

func (rogersStrategy) Locate(doc *goquery.Document) []*Candidate {
	var candidates []*Candidate
	doc.Find(rogersTileSelector).Each(func(_ int, s *goquery.Selection) {
		candidates = append(candidates, &Candidate{Sel: s})
	})
	return candidates
}

func (st rogersStrategy) Identity(c *Candidate) IdentityKey {
	return IdentityKey{
		Name:  st.name(c.Sel),
		Price: st.price(c.Sel),
		Data:  st.data(c.Sel),
	}
}

func (st rogersStrategy) Normalize(c *Candidate) *PlanRecord {
	name := st.name(c.Sel)
	if !validName(name, nil) {
		return nil
	}

	rec := &PlanRecord{
		Name:         name,
		Price:        st.price(c.Sel),
		RegularPrice: st.regularPrice(c.Sel),
		Data:         st.data(c.Sel),
	}

	cls := classifySnippets(st.featureTexts(c.Sel))
	rec.Features = cls.features
	rec.Discounts = cls.discounts
	rec.Promotions = cls.promotions
	return rec
}

// name returns the first qualifying short capitalized paragraph: at most
// three words, under the name length cap, not a price and not a known
// label.
func (rogersStrategy) name(tile *goquery.Selection) string {
	var name string
	tile.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := textOf(p)
		if len(text) < 2 || len(text) >= maxNameLength {
			return true
		}
		if rogersLabelText[strings.ToLower(text)] {
			return true
		}
		lower := strings.ToLower(text)
		if strings.Contains(text, "$") || strings.Contains(lower, "per mo") || strings.Contains(lower, "/mo") {
			return true
		}
		if text[0] >= 'A' && text[0] <= 'Z' && len(strings.Fields(text)) <= 3 {
			name = text
			return false
		}
		return true
	})
	return name
}

// price reads the first $-amount inside a price-labelled node, falling
// back to spans carrying a "per mo" qualifier.
func (rogersStrategy) price(tile *goquery.Selection) string {
	priceNode := tile.Find(`ds-price, [class*="price"], [class*="Price"]`).First()
	if priceNode.Length() > 0 {
		if p := canonicalPrice(priceNode.Text()); p != ValueUnknown {
			return p
		}
	}

	price := ValueUnknown
	tile.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		text := span.Text()
		if strings.Contains(strings.ToLower(text), "per mo") {
			if p := canonicalPrice(text); p != ValueUnknown {
				price = p
				return false
			}
		}
		return true
	})
	return price
}

// regularPrice captures the pre-incentive price when the tile shows one.
func (rogersStrategy) regularPrice(tile *goquery.Selection) string {
	var regular string
	tile.Find("p, span, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := textOf(s)
		if len(text) > 200 || !strings.Contains(strings.ToLower(text), "price before incentives") {
			return true
		}
		if p := canonicalPrice(text); p != ValueUnknown {
			regular = p
			return false
		}
		return true
	})
	return regular
}

// data is the first data allowance inside the features list, with any list
// on the tile as fallback.
func (st rogersStrategy) data(tile *goquery.Selection) string {
	if ul := st.featuresList(tile); ul != nil {
		if d := canonicalData(ul.Text()); d != ValueUnknown {
			return d
		}
	}

	data := ValueUnknown
	tile.Find("ul li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if d := canonicalData(li.Text()); d != ValueUnknown {
			data = d
			return false
		}
		return true
	})
	return data
}

// featuresList locates the list under a "Features" heading.
func (rogersStrategy) featuresList(tile *goquery.Selection) *goquery.Selection {
	var found *goquery.Selection
	tile.Find("ul").EachWithBreak(func(_ int, ul *goquery.Selection) bool {
		parent := ul.Parent()
		if parent.Length() > 0 && strings.Contains(strings.ToLower(parent.Text()), "feature") {
			found = ul
			return false
		}
		return true
	})
	return found
}

func (st rogersStrategy) featureTexts(tile *goquery.Selection) []string {
	ul := st.featuresList(tile)
	if ul == nil {
		ul = tile.Find("ul").First()
		if ul.Length() == 0 {
			return nil
		}
	}

	clone := ul.Clone()
	clone.Find("sup").Remove()

	var texts []string
	clone.Find("li").Each(func(_ int, li *goquery.Selection) {
		text := textOf(li)
		if lower := strings.ToLower(text); lower == "features" || lower == "feature" {
			return
		}
		texts = append(texts, text)
	})
	return texts
}
