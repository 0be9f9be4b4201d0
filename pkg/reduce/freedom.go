package reduce

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// freedomStrategy locates tiles by data-testid="planComponent". Plan names
// come from the container's aria-label when present, otherwise they are
// decoded from the plan-card testid grammar ("plan-card-10gb-5g" means a
// 10GB plan on the 5G+ tier).
type freedomStrategy struct{}

var (
	freedomPlanCardRe   = regexp.MustCompile(`(?i)^plan-card-(\d+)(gb|mb)-?(\d+g|5g\+?|4g|lte)?`)
	freedomSlugRe       = regexp.MustCompile(`(?i)plan-card-([^-]+(?:-[^-]+)?)`)
	freedomQualPriceRe  = regexp.MustCompile(`(?i)\$?(\d+(?:\.\d+)?)\s*(?:/|per)\s*mo(?:nth)?`)
	freedomNet5GPlusRe  = regexp.MustCompile(`(?i)5g\+`)
	freedomNet5GRe      = regexp.MustCompile(`(?i)5g`)
	freedomNet4GRe      = regexp.MustCompile(`(?i)4g|lte`)
)

var freedomHeadingDenylist = map[string]bool{
	"features":   true,
	"promotions": true,
	"roaming":    true,
}

func (freedomStrategy) Locate(doc *goquery.Document) []*Candidate {
	var candidates []*Candidate
	doc.Find(`[data-testid="planComponent"]`).Each(func(_ int, s *goquery.Selection) {
		candidates = append(candidates, &Candidate{Sel: s})
	})
	return candidates
}

func (st freedomStrategy) Identity(c *Candidate) IdentityKey {
	return IdentityKey{
		Name:  st.name(c.Sel),
		Price: st.price(c.Sel),
		Data:  canonicalData(c.Sel.Text()),
	}
}

func (st freedomStrategy) Normalize(c *Candidate) *PlanRecord {
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

func (st freedomStrategy) name(tile *goquery.Selection) string {
	if label, ok := tile.Attr("aria-label"); ok && strings.TrimSpace(label) != "" {
		return strings.TrimSpace(label)
	}

	card := firstByAttrMatch(tile, "data-testid", regexp.MustCompile(`(?i)plan-card-`))
	if card != nil {
		testid := attrOf(card, "data-testid")
		if name := st.decodeCardID(testid, tile); name != "" {
			return name
		}
	}

	var name string
	tile.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := textOf(h)
		if text == "" || len(text) >= maxNameLength || freedomHeadingDenylist[strings.ToLower(text)] {
			return true
		}
		name = text
		return false
	})
	return name
}

// decodeCardID turns a plan-card testid into a display name. The network
// segment may be omitted from the testid, in which case the container text
// decides the tier.
func (freedomStrategy) decodeCardID(testid string, tile *goquery.Selection) string {
	m := freedomPlanCardRe.FindStringSubmatch(testid)
	if m == nil {
		if slug := freedomSlugRe.FindStringSubmatch(testid); slug != nil {
			return titleWords(strings.ReplaceAll(slug[1], "-", " "))
		}
		return ""
	}

	amount := m[1] + strings.ToUpper(m[2])
	network := strings.ToUpper(m[3])
	switch {
	case network == "5G":
		network = "5G+"
	case network == "":
		text := tile.Text()
		switch {
		case freedomNet5GPlusRe.MatchString(text):
			network = "5G+"
		case freedomNet5GRe.MatchString(text):
			network = "5G"
		case freedomNet4GRe.MatchString(text):
			network = "4G LTE"
		}
	}

	if network == "" {
		return amount
	}
	return amount + " " + network
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func (freedomStrategy) price(tile *goquery.Selection) string {
	text := tile.Text()
	if m := freedomQualPriceRe.FindStringSubmatch(text); m != nil {
		return tidyPrice("$" + m[1])
	}
	return canonicalPrice(text)
}

// featureTexts prefers the list under a "Features:" heading, falling back
// to the first list with at least three items.
func (freedomStrategy) featureTexts(tile *goquery.Selection) []string {
	var section *goquery.Selection
	tile.Find("h3, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.EqualFold(textOf(h), "features:") {
			section = h.Parent()
			return false
		}
		return true
	})

	collect := func(scope *goquery.Selection) []string {
		clone := scope.Clone()
		clone.Find("sup").Remove()
		var texts []string
		clone.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := textOf(li); len(text) > minFeatureText {
				texts = append(texts, text)
			}
		})
		return texts
	}

	if section != nil {
		if texts := collect(section); len(texts) > 0 {
			return texts
		}
	}

	var texts []string
	tile.Find("ul").EachWithBreak(func(_ int, ul *goquery.Selection) bool {
		if ul.Find("li").Length() < 3 {
			return true
		}
		texts = collect(ul)
		return false
	})
	return texts
}
