package extract

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a mobile carrier pricing data extraction expert. You extract structured plan information from reduced pricing-page markup. You output only valid JSON matching the requested structure, with double-quoted property names, no trailing commas, no markdown fences, and lowercase null for unknown fields.`

// BuildPrompt assembles the extraction prompt for one reduced page.
// planCount is the number of <div class="plan"> blocks in the markup and
// anchors the model's output count; pass 0 when the reduction fell back
// and the count is unknown. previousErr, when non-nil, is a validation
// failure from the prior attempt for the model to correct.
func BuildPrompt(carrier, markup string, planCount int, previousErr error) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Extract every distinct wireless plan from this %s pricing page.\n\n", strings.ToUpper(carrier))

	b.WriteString(`PLAN NAME RULES:
- planName must be a CONCISE identifier, not a feature description.
- GOOD: "40GB", "10GB data, talk & text", "Basic", "Talk and Text", "Essentials", "5G+ Complete"
- BAD: "10GB bonus data" (feature), "Unlimited Canada-wide calling" (feature)
- Use the h2 heading of each plan block. If none exists, construct from data amount + type.

PRICING RULES:
- currentPrice is the price after any automatic-payment discount, e.g. "$85 per month".
- regularPrice is the full price without discounts, often struck through; null when absent.
- Ignore device financing and one-time fees.

SEPARATE PLANS VS DUPLICATES:
- Plans with different prices OR different data amounts are ALWAYS separate plans, even with the same name.
- Deduplicate ONLY true duplicates: identical name AND price AND data AND features.

DO NOT INVENT PLANS:
- Only extract plans present as <div class="plan"> blocks in the markup.
- Never extract section headings ("All plans include:", "Members only") as plans.
`)

	if planCount > 0 {
		fmt.Fprintf(&b, "- The markup contains exactly %d plan blocks; extract exactly %d plans.\n", planCount, planCount)
	}

	if previousErr != nil {
		fmt.Fprintf(&b, "\nYOUR PREVIOUS ATTEMPT FAILED VALIDATION:\n%s\nCorrect these problems in this attempt.\n", previousErr.Error())
	}

	b.WriteString("\nMARKUP:\n==================================\n")
	b.WriteString(markup)
	b.WriteString("\n==================================\n\nNow extract the plans.")

	return b.String()
}

// planSchema is the structured-output schema handed to providers with
// native JSON modes.
func planSchema() map[string]any {
	stringOrNull := func() map[string]any {
		return map[string]any{"type": []string{"string", "null"}}
	}
	stringList := func() map[string]any {
		return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"carrier":          map[string]any{"type": "string"},
			"extraction_notes": stringOrNull(),
			"plans": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"index":        map[string]any{"type": "integer"},
						"planName":     map[string]any{"type": "string"},
						"regularPrice": stringOrNull(),
						"currentPrice": map[string]any{"type": "string"},
						"dataAmount":   map[string]any{"type": "string"},
						"networkSpeed": stringOrNull(),
						"roaming": map[string]any{
							"type": []string{"object", "null"},
							"properties": map[string]any{
								"included":       map[string]any{"type": "boolean"},
								"details":        stringOrNull(),
								"countries":      stringOrNull(),
								"classification": stringOrNull(),
							},
						},
						"speedFeatures":   stringList(),
						"roamingFeatures": stringList(),
						"callingFeatures": stringList(),
						"otherFeatures":   stringList(),
						"bonusOffers":     stringList(),
					},
					"required": []any{"index", "planName", "currentPrice", "dataAmount"},
				},
			},
		},
		"required": []any{"carrier", "plans"},
	}
}
