package reduce

import (
	"strings"
	"testing"
)

func TestFido_TitleSpanTiles(t *testing.T) {
	page := `<html><body>
	<div class="offer-wrapper">
		<span class="ds-text-title-5">Fido 50GB - BYOP Plan</span>
		<div class="ds-price">$50 per mo.</div>
		<ul>
			<li>50 GB at 4G speeds</li>
			<li>Unlimited international texts</li>
		</ul>
	</div>
	<span class="ds-text-title-5">Why choose us</span>
	</body></html>`

	result := Reduce(page, CarrierFido)

	if result.Stats.TilesBeforeDedup != 1 {
		t.Errorf("TilesBeforeDedup = %d, want 1", result.Stats.TilesBeforeDedup)
	}
	if result.Stats.PlanCount != 1 {
		t.Fatalf("PlanCount = %d, want 1\n%s", result.Stats.PlanCount, result.Markup)
	}
	for _, want := range []string{
		"<h2>Fido 50GB</h2>",
		"Current price: $50",
		"<li>50 GB at 4G speeds</li>",
		"<li>Unlimited international texts</li>",
	} {
		if !strings.Contains(result.Markup, want) {
			t.Errorf("markup missing %q:\n%s", want, result.Markup)
		}
	}
	if strings.Contains(result.Markup, "BYOP Plan") {
		t.Errorf("BYOP suffix survived:\n%s", result.Markup)
	}
}

func TestFido_SpanWithoutPricedAncestorSkipped(t *testing.T) {
	// A title span with a plan marker but no price element within the
	// ancestor walk is not a tile.
	page := `<html><body>
	<div><span class="ds-text-title-5">Talk &amp; Text promo banner</span></div>
	</body></html>`

	result := Reduce(page, CarrierFido)

	if result.Stats.TilesBeforeDedup != 0 {
		t.Errorf("TilesBeforeDedup = %d, want 0", result.Stats.TilesBeforeDedup)
	}
	if result.Stats.PlanCount != 0 {
		t.Errorf("PlanCount = %d, want 0", result.Stats.PlanCount)
	}
}

func TestFido_QualifiedPriceFallback(t *testing.T) {
	// Price element missing its class: the qualified text regex recovers
	// the amount.
	doc := parseDoc(t, `<html><body><div id="t">
		<span class="ds-text-title-5">Fido 20GB</span>
		<span>Get it for $39/mo with automatic payments</span>
	</div></body></html>`)

	st := fidoStrategy{}
	if got := st.price(doc.Find("#t")); got != "$39" {
		t.Errorf("price = %q, want $39", got)
	}
}
