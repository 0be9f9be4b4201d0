package reduce

import (
	"strings"
	"testing"
)

func TestTelus_TestIDTiles(t *testing.T) {
	page := `<html><body>
	<div data-testid="mfe-rate-plan-tile-0-container">
		<span>Only at TELUS</span>
		<h3>Essentials 60</h3>
		<div data-testid="mfe-plan-price-before-discounts">$80/mo</div>
		<div data-testid="mfe-plan-price-lockup">$70/mo</div>
		<span data-testid="mfe-data-bucket-amount">60 GB</span>
		<span data-testid="mfe-data-bucket-speed-description">at 5G speeds</span>
		<ul>
			<li>Unlimited nationwide calling</li>
			<li>Bring-your-own-device savings on every line</li>
		</ul>
	</div>
	</body></html>`

	result := Reduce(page, CarrierTelus)

	if result.Stats.PlanCount != 1 {
		t.Fatalf("PlanCount = %d, want 1\n%s", result.Stats.PlanCount, result.Markup)
	}
	for _, want := range []string{
		"<h2>Essentials 60</h2>",
		"Regular price: $80",
		"Current price: $70",
		"Data: 60 GB at 5G speeds",
		`<p class="ribbon">Only at TELUS</p>`,
		"<li>Unlimited nationwide calling</li>",
	} {
		if !strings.Contains(result.Markup, want) {
			t.Errorf("markup missing %q:\n%s", want, result.Markup)
		}
	}

	// "savings" routes the BYOD line into discounts.
	if !strings.Contains(result.Markup, `<ul class="discounts">`) {
		t.Errorf("expected a discounts list:\n%s", result.Markup)
	}
}

func TestTelus_HeadingFallback(t *testing.T) {
	// No data-testid convention at all: tiles are recovered by grouping
	// around their h3 headings.
	page := `<html><body>
	<div class="grid">
		<div class="card">
			<h3>Peace of Mind</h3>
			<span>$85.00 per month</span>
			<span>Unlimited data</span>
		</div>
		<div class="card">
			<h3>Basic</h3>
			<span>$50 per month</span>
			<span>25 GB data</span>
		</div>
		<h3>Features</h3>
	</div>
	</body></html>`

	result := Reduce(page, CarrierTelus)

	if result.Stats.PlanCount != 2 {
		t.Fatalf("PlanCount = %d, want 2\n%s", result.Stats.PlanCount, result.Markup)
	}
	for _, want := range []string{
		"<h2>Peace of Mind</h2>",
		"Current price: $85",
		"Data: Unlimited",
		"<h2>Basic</h2>",
		"Current price: $50",
		"Data: 25 GB",
	} {
		if !strings.Contains(result.Markup, want) {
			t.Errorf("markup missing %q:\n%s", want, result.Markup)
		}
	}
	if strings.Contains(result.Markup, "<h2>Features</h2>") {
		t.Errorf("denylisted heading became a plan:\n%s", result.Markup)
	}
}

func TestTelus_StruckPriceIgnored(t *testing.T) {
	doc := parseDoc(t, `<html><body><div id="tile">
		<h3>Plan</h3>
		<s>$95/mo</s>
		<span>$75/mo</span>
	</div></body></html>`)
	tile := doc.Find("#tile")

	st := telusStrategy{}
	if got := st.price(tile); got != "$75" {
		t.Errorf("price = %q, want $75", got)
	}
	if got := st.regularPrice(tile); got != "$95" {
		t.Errorf("regularPrice = %q, want $95", got)
	}
}
