package reduce

// PlanRecord is the canonical representation of one distinct plan offer.
// String fields use the "unknown" sentinel rather than being empty when a
// value could not be parsed; optional fields are empty when absent.
type PlanRecord struct {
	Name         string   `json:"name"`
	Price        string   `json:"price"`
	RegularPrice string   `json:"regular_price,omitempty"`
	BundlePrice  string   `json:"bundle_price,omitempty"`
	Data         string   `json:"data"`
	Network      string   `json:"network,omitempty"`
	Roaming      string   `json:"roaming,omitempty"`
	Ribbon       string   `json:"ribbon,omitempty"`
	Features     []string `json:"features,omitempty"`
	Discounts    []string `json:"discounts,omitempty"`
	Promotions   []string `json:"promotions,omitempty"`
}

// IdentityKey is the deduplication tuple for a plan tile. Scope is empty
// except for carriers that segment identical price/data combinations under
// named groupings, where it carries the group label.
type IdentityKey struct {
	Scope string
	Name  string
	Price string
	Data  string
}

// dedupe keeps the first candidate in document order for each distinct
// identity key. Candidates are never merged; repeated keys are display
// duplicates of the same offer.
func dedupe(s Strategy, candidates []*Candidate) []*Candidate {
	seen := make(map[IdentityKey]bool, len(candidates))
	unique := make([]*Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := s.Identity(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}
	return unique
}
