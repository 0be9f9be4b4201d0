package reduce

import "github.com/PuerkitoBio/goquery"

// Candidate is a reference to a document node believed to represent one
// displayed plan offer. It lives only for the duration of a single Reduce
// call. Scope carries a group label for carriers that nest tiles under
// named groupings; it is empty everywhere else.
type Candidate struct {
	Sel   *goquery.Selection
	Scope string
}

// Strategy is the per-carrier contract for tile discovery, identity
// derivation, and normalization. Locate must preserve document order; that
// order is the tie-break for deduplication.
type Strategy interface {
	// Locate returns candidate plan tiles in document order.
	Locate(doc *goquery.Document) []*Candidate

	// Identity derives the deduplication key for a candidate.
	Identity(c *Candidate) IdentityKey

	// Normalize maps a candidate into a canonical record. It returns nil
	// when the candidate fails the name/denylist checks and must be
	// dropped.
	Normalize(c *Candidate) *PlanRecord
}

// strategyFor dispatches on the carrier enum. Unknown carriers get no
// strategy and the caller degrades to the cleaned fallback.
func strategyFor(c Carrier) (Strategy, bool) {
	switch c {
	case CarrierRogers:
		return rogersStrategy{}, true
	case CarrierTelus:
		return telusStrategy{}, true
	case CarrierBell:
		return bellStrategy{}, true
	case CarrierFreedom:
		return freedomStrategy{}, true
	case CarrierKoodo:
		return koodoStrategy{}, true
	case CarrierFido:
		return fidoStrategy{}, true
	case CarrierVirgin:
		return virginStrategy{}, true
	default:
		return nil, false
	}
}
