package reduce

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// koodoStrategy is group-aware: the page arranges tiles under named
// groups ("Canada Wide Plans", "Starter Plans") and the same allowance can
// appear in more than one group, so the group name participates in the
// identity key and in the constructed plan name. Koodo tiles carry no
// explicit plan name.
type koodoStrategy struct{}

var (
	koodoGroupRe          = regexp.MustCompile(`mfe-rate-plan-tile-group-\d+$`)
	koodoGroupNameRe      = regexp.MustCompile(`(?i)mfe-rate-plan-group-name`)
	koodoTilesContainerRe = regexp.MustCompile(`(?i)mfe-rate-plan-tile-group-tiles-container`)
	koodoTileRe           = regexp.MustCompile(`(?i)mfe-rate-plan-tile.*container`)
	koodoAnyTileRe        = regexp.MustCompile(`(?i)mfe-rate-plan-tile`)
	koodoAllowanceRe      = regexp.MustCompile(`(?i)mfe-rate-plan-allowance-description`)
	koodoSpeedRe          = regexp.MustCompile(`(?i)at\s+(\d+G\+?)\s+Speed`)
	koodoDataSpeedRe      = regexp.MustCompile(`(?i)(\d+)\s*GB(?:\s+at\s+\d+G\+?\s+Speed)?`)
	koodoDigitsRe         = regexp.MustCompile(`^\d+$`)
	koodoLeadingDataRe    = regexp.MustCompile(`(?i)^\d+\s*GB`)
	koodoUnitGlueRe       = regexp.MustCompile(`(?i)(\d+GB)([A-Za-z])`)
	koodoCaseGlueRe       = regexp.MustCompile(`([a-z])([A-Z])`)
)

func (koodoStrategy) Locate(doc *goquery.Document) []*Candidate {
	var candidates []*Candidate

	findByAttrMatch(doc.Selection, "data-testid", koodoGroupRe).Each(func(_ int, group *goquery.Selection) {
		groupName := ""
		if nameEl := firstByAttrMatch(group, "data-testid", koodoGroupNameRe); nameEl != nil {
			groupName = textOf(nameEl)
		}
		container := firstByAttrMatch(group, "data-testid", koodoTilesContainerRe)
		if container == nil {
			return
		}
		findByAttrMatch(container, "data-testid", koodoTileRe).Each(func(_ int, tile *goquery.Selection) {
			if strings.Contains(strings.ToLower(attrOf(tile, "data-testid")), "group") {
				return
			}
			candidates = append(candidates, &Candidate{Sel: tile, Scope: groupName})
		})
	})
	if len(candidates) > 0 {
		return candidates
	}

	// No group structure: take tiles directly, without scope.
	findByAttrMatch(doc.Selection, "data-testid", koodoAnyTileRe).Each(func(_ int, tile *goquery.Selection) {
		testid := strings.ToLower(attrOf(tile, "data-testid"))
		if strings.Contains(testid, "group") || !strings.Contains(testid, "container") {
			return
		}
		candidates = append(candidates, &Candidate{Sel: tile})
	})
	return candidates
}

func (st koodoStrategy) Identity(c *Candidate) IdentityKey {
	return IdentityKey{
		Scope: c.Scope,
		Price: st.price(c.Sel),
		Data:  st.data(c.Sel),
	}
}

func (st koodoStrategy) Normalize(c *Candidate) *PlanRecord {
	data := st.data(c.Sel)

	var name string
	switch {
	case c.Scope != "" && data != ValueUnknown:
		name = c.Scope + " - " + data
	case c.Scope != "":
		name = c.Scope + " - Unknown"
	case data != ValueUnknown:
		name = data
	default:
		return nil
	}

	rec := &PlanRecord{
		Name:  name,
		Price: st.price(c.Sel),
		Data:  data,
	}

	cls := classifySnippets(st.featureTexts(c.Sel))
	rec.Features = cls.features
	rec.Discounts = cls.discounts
	rec.Promotions = cls.promotions
	return rec
}

// data joins the bucket amount with its speed tier, e.g. "110 GB at 5G
// Speed".
func (koodoStrategy) data(tile *goquery.Selection) string {
	amountEl := firstByAttrMatch(tile, "data-testid", regexp.MustCompile(`(?i)data-bucket-amount`))
	if amountEl != nil {
		amount := textOf(amountEl)
		speedText := ""
		if speedEl := firstByAttrMatch(tile, "data-testid", regexp.MustCompile(`(?i)data-bucket-speed`)); speedEl != nil {
			speedText = textOf(speedEl)
		}
		if speedText != "" && strings.Contains(speedText, "Speed") {
			if m := koodoSpeedRe.FindStringSubmatch(speedText); m != nil {
				return amount + " GB at " + m[1] + " Speed"
			}
			return amount + " GB " + speedText
		}
		if koodoDigitsRe.MatchString(amount) {
			return amount + " GB"
		}
		return amount
	}

	if m := koodoDataSpeedRe.FindString(tile.Text()); m != "" {
		return m
	}
	return ValueUnknown
}

func (koodoStrategy) price(tile *goquery.Selection) string {
	if lockup := firstByAttrMatch(tile, "data-testid", regexp.MustCompile(`(?i)plan-price-lockup`)); lockup != nil {
		if p := canonicalPrice(lockup.Text()); p != ValueUnknown {
			return p
		}
	}
	return canonicalPrice(tile.Text())
}

// featureTexts reads allowance descriptions, repairing the spacing the
// page loses when inline elements are flattened ("10GBof" -> "10GB of").
func (koodoStrategy) featureTexts(tile *goquery.Selection) []string {
	repair := func(text string) string {
		text = koodoUnitGlueRe.ReplaceAllString(text, "$1 $2")
		text = koodoCaseGlueRe.ReplaceAllString(text, "$1 $2")
		return strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
	}

	var texts []string
	findByAttrMatch(tile, "data-testid", koodoAllowanceRe).Each(func(_ int, allowance *goquery.Selection) {
		clone := allowance.Clone()
		clone.Find("sup").Remove()
		text := repair(clone.Text())
		if len(text) > minFeatureText && !koodoLeadingDataRe.MatchString(text) {
			texts = append(texts, text)
		}
	})
	if len(texts) > 0 {
		return texts
	}

	tile.Find("ul").EachWithBreak(func(_ int, ul *goquery.Selection) bool {
		clone := ul.Clone()
		clone.Find("sup").Remove()
		clone.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := repair(li.Text()); len(text) > minFeatureText {
				texts = append(texts, text)
			}
		})
		return len(texts) == 0
	})
	return texts
}
