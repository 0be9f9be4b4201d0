package pipeline

import (
	"time"

	"github.com/planwatch/planwatch/pkg/reduce"
)

// pageConfig describes where a carrier's pricing page lives and what to
// wait for before reading it. The wait selector is the carrier's plan-tile
// marker, so a dynamic fetch returns after tiles are rendered rather than
// after initial page load.
type pageConfig struct {
	URL          string
	WaitSelector string
	SettleTime   time.Duration
}

var carrierPages = map[reduce.Carrier]pageConfig{
	reduce.CarrierRogers: {
		URL:          "https://www.rogers.com/plans",
		WaitSelector: `[class*="dsa-vertical-tile"]`,
		SettleTime:   2 * time.Second,
	},
	reduce.CarrierTelus: {
		URL:          "https://www.telus.com/en/mobility/plans",
		WaitSelector: `[data-testid*="mfe-rate-plan-tile-"]`,
		SettleTime:   2 * time.Second,
	},
	reduce.CarrierBell: {
		URL:          "https://www.bell.ca/Mobility/Cell_phone_plans",
		WaitSelector: "[data-product-id]",
		SettleTime:   2 * time.Second,
	},
	reduce.CarrierFreedom: {
		URL:          "https://www.freedommobile.ca/en-CA/plans",
		WaitSelector: `[data-testid="planComponent"]`,
		SettleTime:   2 * time.Second,
	},
	reduce.CarrierKoodo: {
		URL:          "https://www.koodomobile.com/en/rate-plans",
		WaitSelector: `[data-testid*="mfe-rate-plan-tile"]`,
		SettleTime:   2 * time.Second,
	},
	reduce.CarrierFido: {
		URL:          "https://www.fido.ca/plans",
		WaitSelector: `span[class*="text-title-5"]`,
		SettleTime:   2 * time.Second,
	},
	reduce.CarrierVirgin: {
		// AngularJS page, renders slower than the others.
		URL:          "https://www.virginplus.ca/en/plans/postpaid.html",
		WaitSelector: "plan-container",
		SettleTime:   4 * time.Second,
	},
}

// PageURL returns the pricing-page URL for a carrier, or "" when the
// carrier has no registered page.
func PageURL(c reduce.Carrier) string {
	return carrierPages[c].URL
}
