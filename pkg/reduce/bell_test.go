package reduce

import (
	"strings"
	"testing"
)

func TestBell_PlanCards(t *testing.T) {
	page := `<html><body>
	<div data-product-id="123">
		<h3>Essential 50</h3>
		<div><s>$65/mo</s> $55/mo</div>
		<ul class="g-card-plan__features">
			<li>50 GB of data on the 5G network</li>
			<li>Unlimited Canada-wide calling</li>
			<li>Roam in the US for $14/day</li>
		</ul>
		<div class="g-card-plan__caption">Price includes autopay credit</div>
	</div>
	<div data-product-id="999">
		<h3>Are you a new customer?</h3>
		<p>Select an option to continue</p>
	</div>
	</body></html>`

	result := Reduce(page, CarrierBell)

	if result.Stats.TilesBeforeDedup != 2 {
		t.Errorf("TilesBeforeDedup = %d, want 2", result.Stats.TilesBeforeDedup)
	}
	if result.Stats.PlanCount != 1 {
		t.Fatalf("PlanCount = %d, want 1\n%s", result.Stats.PlanCount, result.Markup)
	}

	for _, want := range []string{
		"<h2>Essential 50</h2>",
		"Regular price: $65",
		"Current price: $55",
		"Data: 50 GB",
		`<p class="network">50 GB of data on the 5G network</p>`,
		`<p class="roaming">Roam in the US for $14/day</p>`,
		"<li>Unlimited Canada-wide calling</li>",
	} {
		if !strings.Contains(result.Markup, want) {
			t.Errorf("markup missing %q:\n%s", want, result.Markup)
		}
	}

	if strings.Contains(result.Markup, "Are you") {
		t.Errorf("interstitial card rendered as a plan:\n%s", result.Markup)
	}
	// autopay caption routes to discounts
	if !strings.Contains(result.Markup, "<li>Price includes autopay credit</li>") {
		t.Errorf("caption missing from discounts:\n%s", result.Markup)
	}
}

func TestBell_NameScreening(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "question heading rejected, next heading used",
			html: `<div id="t"><h3>How would you like to shop?</h3><h3>Ultimate 100</h3></div>`,
			want: "Ultimate 100",
		},
		{
			name: "prompt prefix rejected",
			html: `<div id="t"><h3>Select an option below</h3><h3>Essential 25</h3></div>`,
			want: "Essential 25",
		},
		{
			name: "no usable heading",
			html: `<div id="t"><h3>Are you a new customer?</h3></div>`,
			want: "",
		},
	}

	st := bellStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, "<html><body>"+tt.html+"</body></html>")
			if got := st.name(doc.Find("#t")); got != tt.want {
				t.Errorf("name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBell_BareDigitPrice(t *testing.T) {
	st := bellStrategy{}
	tests := []struct {
		name string
		html string
		want string
	}{
		{"currency symbol", `<div id="t">$55/mo</div>`, "$55"},
		{"bare digits with qualifier", `<div id="t">55/mo</div>`, "$55"},
		{"bare digits per month", `<div id="t">Only 60 per month</div>`, "$60"},
		{"struck price ignored", `<div id="t"><s>$65/mo</s> $55/mo</div>`, "$55"},
		{"no price", `<div id="t">Talk to us</div>`, ValueUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, "<html><body>"+tt.html+"</body></html>")
			if got := st.price(doc.Find("#t")); got != tt.want {
				t.Errorf("price = %q, want %q", got, tt.want)
			}
		})
	}
}
