package reduce

import "fmt"

// Carrier identifies a wireless carrier with a registered reduction strategy.
type Carrier int

const (
	// CarrierUnknown has no strategy; reduction degrades to the cleaned
	// fallback with zero plan records.
	CarrierUnknown Carrier = iota
	CarrierRogers
	CarrierTelus
	CarrierBell
	CarrierFreedom
	CarrierKoodo
	CarrierFido
	CarrierVirgin
)

var carrierNames = map[Carrier]string{
	CarrierUnknown: "unknown",
	CarrierRogers:  "rogers",
	CarrierTelus:   "telus",
	CarrierBell:    "bell",
	CarrierFreedom: "freedom",
	CarrierKoodo:   "koodo",
	CarrierFido:    "fido",
	CarrierVirgin:  "virgin",
}

// String returns the lowercase carrier identifier.
func (c Carrier) String() string {
	if name, ok := carrierNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCarrier maps a carrier identifier string to its Carrier value.
func ParseCarrier(s string) (Carrier, error) {
	for c, name := range carrierNames {
		if c != CarrierUnknown && name == s {
			return c, nil
		}
	}
	return CarrierUnknown, fmt.Errorf("unknown carrier: %q (available: %v)", s, CarrierNames())
}

// CarrierNames returns the identifiers of all carriers with a strategy,
// in a fixed order.
func CarrierNames() []string {
	names := make([]string, 0, len(carrierNames)-1)
	for c := CarrierRogers; c <= CarrierVirgin; c++ {
		names = append(names, carrierNames[c])
	}
	return names
}

// Carriers returns all carriers with a registered strategy.
func Carriers() []Carrier {
	carriers := make([]Carrier, 0, len(carrierNames)-1)
	for c := CarrierRogers; c <= CarrierVirgin; c++ {
		carriers = append(carriers, c)
	}
	return carriers
}
