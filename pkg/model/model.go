package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Field names as they appear in model replies and exported reports.
const (
	FieldExplanation      = "explanation"
	FieldComplexityScore  = "complexity_score"
	FieldComplexityReason = "complexity_reason"
	FieldVulnerabilities  = "vulnerabilities"
	FieldSolidPrinciples  = "solid_principles"
)

// Fields lists the report fields in the order they are requested and rendered.
var Fields = []string{
	FieldExplanation,
	FieldComplexityScore,
	FieldComplexityReason,
	FieldVulnerabilities,
	FieldSolidPrinciples,
}

// Principles maps a SOLID principle name to the model's observation,
// keeping the order the model wrote them in.
type Principles = orderedmap.OrderedMap[string, string]

// NewPrinciples returns an empty Principles mapping.
func NewPrinciples() *Principles {
	return orderedmap.New[string, string]()
}

// AnalysisResult is the parsed model reply. A nil field means the reply did not
// carry a usable value for it; defaults are resolved when rendering.
type AnalysisResult struct {
	Explanation      *string     `json:"explanation" yaml:"explanation"`
	ComplexityScore  *int        `json:"complexity_score" yaml:"complexity_score"`
	ComplexityReason *string     `json:"complexity_reason" yaml:"complexity_reason"`
	Vulnerabilities  []string    `json:"vulnerabilities" yaml:"vulnerabilities"`
	SolidPrinciples  *Principles `json:"solid_principles" yaml:"solid_principles"`
}

// HasVulnerabilities reports whether the vulnerabilities field was present,
// even if it was an empty list.
func (r *AnalysisResult) HasVulnerabilities() bool {
	return r.Vulnerabilities != nil
}
