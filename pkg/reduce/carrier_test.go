package reduce

import "testing"

func TestParseCarrier(t *testing.T) {
	tests := []struct {
		input   string
		want    Carrier
		wantErr bool
	}{
		{"rogers", CarrierRogers, false},
		{"telus", CarrierTelus, false},
		{"bell", CarrierBell, false},
		{"freedom", CarrierFreedom, false},
		{"koodo", CarrierKoodo, false},
		{"fido", CarrierFido, false},
		{"virgin", CarrierVirgin, false},
		{"Telus", CarrierUnknown, true},
		{"sasktel", CarrierUnknown, true},
		{"", CarrierUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCarrier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCarrier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCarrier(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCarrierString(t *testing.T) {
	if got := CarrierTelus.String(); got != "telus" {
		t.Errorf("CarrierTelus.String() = %q, want %q", got, "telus")
	}
	if got := CarrierUnknown.String(); got != "unknown" {
		t.Errorf("CarrierUnknown.String() = %q, want %q", got, "unknown")
	}
	if got := Carrier(99).String(); got != "unknown" {
		t.Errorf("Carrier(99).String() = %q, want %q", got, "unknown")
	}
}

func TestCarrierNames_Order(t *testing.T) {
	want := []string{"rogers", "telus", "bell", "freedom", "koodo", "fido", "virgin"}
	got := CarrierNames()
	if len(got) != len(want) {
		t.Fatalf("CarrierNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CarrierNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCarriers_RoundTrip(t *testing.T) {
	for _, c := range Carriers() {
		parsed, err := ParseCarrier(c.String())
		if err != nil {
			t.Fatalf("ParseCarrier(%q): %v", c.String(), err)
		}
		if parsed != c {
			t.Errorf("round trip for %v gave %v", c, parsed)
		}
	}
}
