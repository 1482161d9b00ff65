package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/helmcode/codeclarity/pkg/model"
)

// ErrParse is returned for any completion that is not a single JSON object
// carrying every report field.
var ErrParse = errors.New("could not parse model response")

// ParseAnalysis decodes a completion into an AnalysisResult. Only surrounding
// whitespace is tolerated; prose, markdown fences or truncated output fail.
// Values of the wrong type are left unset rather than converted.
func ParseAnalysis(raw string) (*model.AnalysisResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: reply is not a JSON object", ErrParse)
	}
	for _, name := range model.Fields {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrParse, name)
		}
	}

	return &model.AnalysisResult{
		Explanation:      decodeString(fields[model.FieldExplanation]),
		ComplexityScore:  decodeScore(fields[model.FieldComplexityScore]),
		ComplexityReason: decodeString(fields[model.FieldComplexityReason]),
		Vulnerabilities:  decodeStrings(fields[model.FieldVulnerabilities]),
		SolidPrinciples:  decodePrinciples(fields[model.FieldSolidPrinciples]),
	}, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeString(raw json.RawMessage) *string {
	if isNull(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// decodeScore accepts integral JSON numbers only; the 1-10 range is not enforced.
func decodeScore(raw json.RawMessage) *int {
	if isNull(raw) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	n := int(f)
	return &n
}

func decodeStrings(raw json.RawMessage) []string {
	if isNull(raw) {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func decodePrinciples(raw json.RawMessage) *model.Principles {
	if isNull(raw) {
		return nil
	}
	p := model.NewPrinciples()
	if err := json.Unmarshal(raw, p); err != nil {
		return nil
	}
	return p
}
