package validation

import "fmt"

// SchemaError reports collaborator output that is unparseable, missing a
// required key, or carrying a field of the wrong shape.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema violation: %s", e.Reason)
	}
	return fmt.Sprintf("schema violation: field %q %s", e.Field, e.Reason)
}

// BoundViolationError reports a value outside its contractual closed range or
// enumeration. It is raised, never clamped, so a miscalibrated collaborator
// stays visible.
type BoundViolationError struct {
	Field string
	Value any
	Want  string
}

func (e *BoundViolationError) Error() string {
	return fmt.Sprintf("bound violation: field %q = %v, want %s", e.Field, e.Value, e.Want)
}

// StageError wraps any failure with the pipeline stage it occurred in, so the
// caller sees a single descriptive error naming the violated contract.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
