package extract

import (
	"strings"
	"testing"
)

func validExtraction() *Extraction {
	return &Extraction{
		Carrier: "telus",
		Plans: []ExtractedPlan{
			{
				Index:        1,
				PlanName:     "Essentials",
				CurrentPrice: "$70 per month",
				DataAmount:   "60 GB",
			},
		},
	}
}

func TestExtractionValidate(t *testing.T) {
	t.Run("valid extraction passes", func(t *testing.T) {
		if err := validExtraction().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing carrier fails", func(t *testing.T) {
		e := validExtraction()
		e.Carrier = ""
		if err := e.Validate(); err == nil {
			t.Error("expected error for missing carrier")
		}
	})

	t.Run("missing plan name fails", func(t *testing.T) {
		e := validExtraction()
		e.Plans[0].PlanName = ""
		if err := e.Validate(); err == nil {
			t.Error("expected error for missing plan name")
		}
	})

	t.Run("plan name too long fails", func(t *testing.T) {
		e := validExtraction()
		e.Plans[0].PlanName = strings.Repeat("x", 81)
		if err := e.Validate(); err == nil {
			t.Error("expected error for oversized plan name")
		}
	})

	t.Run("zero index fails", func(t *testing.T) {
		e := validExtraction()
		e.Plans[0].Index = 0
		if err := e.Validate(); err == nil {
			t.Error("expected error for zero index")
		}
	})

	t.Run("missing price fails", func(t *testing.T) {
		e := validExtraction()
		e.Plans[0].CurrentPrice = ""
		if err := e.Validate(); err == nil {
			t.Error("expected error for missing price")
		}
	})

	t.Run("too many speed features fails", func(t *testing.T) {
		e := validExtraction()
		e.Plans[0].SpeedFeatures = []string{"a", "b", "c", "d"}
		if err := e.Validate(); err == nil {
			t.Error("expected error for more than 3 speed features")
		}
	})

	t.Run("valid roaming classification passes", func(t *testing.T) {
		e := validExtraction()
		e.Plans[0].Roaming = &Roaming{Included: true, Classification: "Canada+US"}
		if err := e.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("invalid roaming classification fails", func(t *testing.T) {
		e := validExtraction()
		e.Plans[0].Roaming = &Roaming{Included: true, Classification: "Worldwide"}
		if err := e.Validate(); err == nil {
			t.Error("expected error for invalid classification")
		}
	})
}
