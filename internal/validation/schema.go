package validation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Every collaborator stage follows the same pattern: parse loosely structured
// output, then check required keys and shapes. One manifest-driven validator
// covers all stages so their rules cannot drift apart.

type fieldKind int

const (
	kindNumber fieldKind = iota
	kindString
	kindStringList
	kindEnum
)

type fieldSpec struct {
	name    string
	kind    fieldKind
	enum    []string
	min     float64
	max     float64
	bounded bool
}

func numberField(name string) fieldSpec { return fieldSpec{name: name, kind: kindNumber} }

func boundedNumberField(name string, min, max float64) fieldSpec {
	return fieldSpec{name: name, kind: kindNumber, min: min, max: max, bounded: true}
}

func stringField(name string) fieldSpec { return fieldSpec{name: name, kind: kindString} }

func stringListField(name string) fieldSpec { return fieldSpec{name: name, kind: kindStringList} }

func enumField(name string, allowed ...string) fieldSpec {
	return fieldSpec{name: name, kind: kindEnum, enum: allowed}
}

type manifest struct {
	fields []fieldSpec
}

// checkPayload decodes raw JSON into a generic map and validates every field
// the manifest names. Missing keys and wrong shapes are SchemaErrors;
// out-of-range numbers and unknown enum values are BoundViolationErrors.
func (m manifest) checkPayload(raw []byte) error {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &SchemaError{Reason: fmt.Sprintf("not parseable as a JSON object: %v", err)}
	}
	for _, f := range m.fields {
		v, ok := payload[f.name]
		if !ok {
			return &SchemaError{Field: f.name, Reason: "is missing"}
		}
		switch f.kind {
		case kindNumber:
			n, ok := v.(float64)
			if !ok {
				return &SchemaError{Field: f.name, Reason: "must be a number"}
			}
			if f.bounded && (n < f.min || n > f.max) {
				return &BoundViolationError{Field: f.name, Value: n, Want: fmt.Sprintf("a number in [%g, %g]", f.min, f.max)}
			}
		case kindString:
			s, ok := v.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return &SchemaError{Field: f.name, Reason: "must be a non-empty string"}
			}
		case kindStringList:
			list, ok := v.([]any)
			if !ok {
				return &SchemaError{Field: f.name, Reason: "must be a list of strings"}
			}
			for _, item := range list {
				if _, ok := item.(string); !ok {
					return &SchemaError{Field: f.name, Reason: "must be a list of strings"}
				}
			}
		case kindEnum:
			s, ok := v.(string)
			if !ok {
				return &SchemaError{Field: f.name, Reason: "must be a string"}
			}
			allowed := false
			for _, e := range f.enum {
				if s == e {
					allowed = true
					break
				}
			}
			if !allowed {
				return &BoundViolationError{Field: f.name, Value: s, Want: "one of " + strings.Join(f.enum, "|")}
			}
		}
	}
	return nil
}

var analysisManifest = manifest{fields: []fieldSpec{
	boundedNumberField("score", 0, 10),
	stringListField("strengths"),
	stringListField("concerns"),
	stringField("rationale"),
}}

var debateForManifest = manifest{fields: []fieldSpec{
	enumField("position", "for"),
	stringField("core_thesis"),
	stringListField("supporting_arguments"),
	stringListField("acknowledged_risks"),
}}

var debateAgainstManifest = manifest{fields: []fieldSpec{
	enumField("position", "against"),
	stringField("core_thesis"),
	stringListField("failure_modes"),
	stringListField("critical_assumptions_attacked"),
}}

var judgementManifest = manifest{fields: []fieldSpec{
	enumField("debate_winner", "for", "against", "tie"),
	boundedNumberField("confidence_shift", MinConfidenceShift, MaxConfidenceShift),
	stringListField("unresolved_risks"),
	stringListField("overlooked_strengths"),
	enumField("argument_quality", "low", "medium", "high"),
	stringField("judge_rationale"),
}}

var explanationManifest = manifest{fields: []fieldSpec{
	stringField("verdict"),
	numberField("final_score"),
	stringField("summary"),
	stringListField("key_reasons_for_score"),
	stringListField("key_risks"),
	stringListField("recommended_next_steps"),
	stringField("confidence_level"),
}}

var similarityManifest = manifest{fields: []fieldSpec{
	boundedNumberField("similarity_score", 0, 1),
}}
