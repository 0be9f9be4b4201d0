package reduce

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// bellStrategy anchors on the data-product-id attribute every plan card
// carries. Headings on this site mix plan names with interstitial
// questions ("Are you a new customer?"), so candidate names are screened
// against question markers and known prompt prefixes.
type bellStrategy struct{}

var (
	bellQualifiedPriceRe = regexp.MustCompile(`\$\s*(\d+(?:\.\d+)?)(?:\s*/?\s*mo\.?|\s+per month)`)
	// Some Bell cards render the amount without a currency symbol.
	bellBareDigitPriceRe = regexp.MustCompile(`(?:^|\s)(\d+(?:\.\d+)?)\s*(?:/\s*mo\.?|per month)`)
)

var bellPromptPrefixes = []string{
	"are you",
	"select an",
	"how would",
	"please select",
	"would you like",
	"back to",
	"change",
	"new customer",
}

func (bellStrategy) Locate(doc *goquery.Document) []*Candidate {
	var candidates []*Candidate
	doc.Find("[data-product-id]").Each(func(_ int, s *goquery.Selection) {
		candidates = append(candidates, &Candidate{Sel: s})
	})
	return candidates
}

func (st bellStrategy) Identity(c *Candidate) IdentityKey {
	return IdentityKey{
		Name:  st.name(c.Sel),
		Price: st.price(c.Sel),
		Data:  canonicalData(c.Sel.Text()),
	}
}

func (st bellStrategy) Normalize(c *Candidate) *PlanRecord {
	name := st.name(c.Sel)
	if name == "" {
		return nil
	}

	rec := &PlanRecord{
		Name:         name,
		Price:        st.price(c.Sel),
		RegularPrice: st.regularPrice(c.Sel),
		Data:         canonicalData(c.Sel.Text()),
		Network:      st.network(c.Sel),
		Roaming:      st.roaming(c.Sel),
	}

	snippets := st.featureTexts(c.Sel)
	snippets = append(snippets, st.captionTexts(c.Sel)...)
	cls := classifySnippets(snippets)
	rec.Features = cls.features
	rec.Discounts = cls.discounts
	rec.Promotions = cls.promotions
	return rec
}

func (bellStrategy) name(tile *goquery.Selection) string {
	var name string
	tile.Find("h3, h2, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := textOf(h)
		if text == "" || len(text) > maxNameLength || strings.Contains(text, "?") {
			return true
		}
		lower := strings.ToLower(text)
		for _, prefix := range bellPromptPrefixes {
			if strings.HasPrefix(lower, prefix) {
				return true
			}
		}
		name = text
		return false
	})
	return name
}

func (bellStrategy) price(tile *goquery.Selection) string {
	text := textWithout(tile, "s, del")
	if m := bellQualifiedPriceRe.FindStringSubmatch(text); m != nil {
		return tidyPrice("$" + m[1])
	}
	if m := bellBareDigitPriceRe.FindStringSubmatch(text); m != nil {
		return tidyPrice("$" + m[1])
	}
	return canonicalPrice(text)
}

func (bellStrategy) regularPrice(tile *goquery.Selection) string {
	struck := tile.Find("s, del").First()
	if struck.Length() == 0 {
		return ""
	}
	if p := canonicalPrice(struck.Text()); p != ValueUnknown {
		return p
	}
	return ""
}

func (bellStrategy) network(tile *goquery.Selection) string {
	var network string
	tile.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		text := textOf(li)
		lower := strings.ToLower(text)
		if strings.Contains(lower, "5g") || strings.Contains(lower, "lte") || strings.Contains(lower, "network") {
			network = text
			return false
		}
		return true
	})
	return network
}

func (bellStrategy) roaming(tile *goquery.Selection) string {
	var roaming string
	tile.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		text := textOf(li)
		if strings.Contains(strings.ToLower(text), "roam") {
			roaming = text
			return false
		}
		return true
	})
	return roaming
}

func (bellStrategy) featureTexts(tile *goquery.Selection) []string {
	items := tile.Find(".g-card-plan__features li")
	if items.Length() == 0 {
		items = tile.Find("li")
	}
	var texts []string
	items.Each(func(_ int, li *goquery.Selection) {
		texts = append(texts, textOf(li))
	})
	return texts
}

func (bellStrategy) captionTexts(tile *goquery.Selection) []string {
	var texts []string
	tile.Find(".g-card-plan__caption").Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, textOf(s))
	})
	return texts
}
