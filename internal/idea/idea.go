package idea

import (
	"fmt"
	"strings"
)

// StartupIdea is the structured business proposition the pipeline evaluates.
// It is produced upstream (extraction or API request) and consumed read-only
// by every downstream stage.
type StartupIdea struct {
	Problem   string `json:"problem"`
	Solution  string `json:"solution"`
	Geography string `json:"geography"`

	Industry          string `json:"industry,omitempty"`
	TargetUser        string `json:"target_user,omitempty"`
	Differentiation   string `json:"differentiation,omitempty"`
	MonetizationModel string `json:"monetization_model,omitempty"`
	FounderExpertise  string `json:"founder_expertise,omitempty"`

	CustomerAcquisition   string   `json:"customer_acquisition,omitempty"`
	RegulatoryConstraints []string `json:"regulatory_constraints,omitempty"`
	Constraints           []string `json:"constraints,omitempty"`

	// InferredFields names the fields the extractor guessed rather than read.
	InferredFields []string `json:"inferred_fields,omitempty"`
}

// InputError reports a StartupIdea that cannot enter the pipeline.
type InputError struct {
	Field string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("startup idea: required field %q is missing or empty", e.Field)
}

var requiredFields = []string{"problem", "solution", "geography"}

// Validate rejects ideas missing any required field before the pipeline starts.
func Validate(s StartupIdea) error {
	values := map[string]string{
		"problem":   s.Problem,
		"solution":  s.Solution,
		"geography": s.Geography,
	}
	for _, field := range requiredFields {
		if strings.TrimSpace(values[field]) == "" {
			return &InputError{Field: field}
		}
	}
	return nil
}

// MissingRequired lists required fields absent from a loosely parsed payload.
func MissingRequired(parsed map[string]any) []string {
	var missing []string
	for _, field := range requiredFields {
		v, ok := parsed[field]
		if !ok {
			missing = append(missing, field)
			continue
		}
		s, _ := v.(string)
		if strings.TrimSpace(s) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// ExtractionConfidence grades how complete an extracted idea is. Optional
// fields that had to be inferred or left empty degrade confidence.
func ExtractionConfidence(missingOptional, inferredCount int) string {
	if missingOptional == 0 && inferredCount == 0 {
		return "high"
	}
	if missingOptional <= 2 {
		return "medium"
	}
	return "low"
}
