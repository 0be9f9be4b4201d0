// Package extract turns reduced plan markup into structured plan data
// using an LLM provider, validating the result before accepting it.
package extract

import "github.com/go-playground/validator/v10"

// Roaming describes a plan's roaming coverage as the model reports it.
type Roaming struct {
	Included       bool   `json:"included" yaml:"included"`
	Details        string `json:"details,omitempty" yaml:"details,omitempty"`
	Countries      string `json:"countries,omitempty" yaml:"countries,omitempty"`
	Classification string `json:"classification,omitempty" yaml:"classification,omitempty" validate:"omitempty,oneof='Canada Only' 'Canada+US' 'Canada+US+International'"`
}

// ExtractedPlan is one plan offer as extracted by the model. Field names
// mirror the JSON the model is instructed to produce.
type ExtractedPlan struct {
	Index        int      `json:"index" yaml:"index" validate:"min=1"`
	PlanName     string   `json:"planName" yaml:"planName" validate:"required,max=80"`
	RegularPrice string   `json:"regularPrice,omitempty" yaml:"regularPrice,omitempty"`
	CurrentPrice string   `json:"currentPrice" yaml:"currentPrice" validate:"required"`
	DataAmount   string   `json:"dataAmount" yaml:"dataAmount" validate:"required"`
	NetworkSpeed string   `json:"networkSpeed,omitempty" yaml:"networkSpeed,omitempty"`
	Roaming      *Roaming `json:"roaming,omitempty" yaml:"roaming,omitempty"`

	SpeedFeatures    []string `json:"speedFeatures,omitempty" yaml:"speedFeatures,omitempty" validate:"max=3"`
	RoamingFeatures  []string `json:"roamingFeatures,omitempty" yaml:"roamingFeatures,omitempty" validate:"max=3"`
	CallingFeatures  []string `json:"callingFeatures,omitempty" yaml:"callingFeatures,omitempty" validate:"max=3"`
	OtherFeatures    []string `json:"otherFeatures,omitempty" yaml:"otherFeatures,omitempty"`
	BonusOffers      []string `json:"bonusOffers,omitempty" yaml:"bonusOffers,omitempty"`
}

// Extraction is the full model output for one page.
type Extraction struct {
	Carrier         string          `json:"carrier" yaml:"carrier" validate:"required"`
	ExtractionNotes string          `json:"extraction_notes,omitempty" yaml:"extraction_notes,omitempty"`
	Plans           []ExtractedPlan `json:"plans" yaml:"plans" validate:"required,dive"`
}

var validate = validator.New()

// Validate checks the extraction against the struct constraints. The
// error, when non-nil, is fed back into the next extraction attempt.
func (e *Extraction) Validate() error {
	return validate.Struct(e)
}
