package reduce

import (
	"html"
	"strings"
)

// renderRecords serializes plan records into the minimal markup fragment
// consumed by the structured-extraction stage. Field order and omission
// rules are fixed so identical input always produces byte-identical output.
func renderRecords(records []*PlanRecord) string {
	var b strings.Builder
	for i, p := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(`<div class="plan">`)
		b.WriteString("\n  <h2>" + html.EscapeString(p.Name) + "</h2>")

		if p.RegularPrice != "" && p.Price != "" && p.RegularPrice != p.Price {
			writeField(&b, "regular-price", "Regular price: "+p.RegularPrice)
		}
		if p.Price != "" && p.Price != ValueUnknown {
			writeField(&b, "price", "Current price: "+p.Price)
		}
		if p.BundlePrice != "" {
			writeField(&b, "bundle-price", "Bundled price: "+p.BundlePrice)
		}
		if p.Data != "" && p.Data != ValueUnknown {
			writeField(&b, "data", "Data: "+p.Data)
		}
		if p.Network != "" {
			writeField(&b, "network", p.Network)
		}
		if p.Roaming != "" {
			writeField(&b, "roaming", p.Roaming)
		}
		if p.Ribbon != "" {
			writeField(&b, "ribbon", p.Ribbon)
		}
		writeList(&b, "features", p.Features)
		writeList(&b, "discounts", p.Discounts)
		writeList(&b, "promotions", p.Promotions)

		b.WriteString("\n</div>")
	}
	return b.String()
}

func writeField(b *strings.Builder, class, text string) {
	b.WriteString("\n  <p class=\"" + class + "\">" + html.EscapeString(text) + "</p>")
}

func writeList(b *strings.Builder, class string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n  <ul class=\"" + class + "\">")
	for _, item := range items {
		item = wsRe.ReplaceAllString(item, " ")
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		b.WriteString("\n    <li>" + html.EscapeString(item) + "</li>")
	}
	b.WriteString("\n  </ul>")
}
