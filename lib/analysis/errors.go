package analysis

import "strings"

// ValidationError reports user-correctable input problems. One error can
// carry several violations.
type ValidationError struct {
	Violations []string
}

func (e ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

func NewValidationError(violations ...string) ValidationError {
	return ValidationError{Violations: violations}
}

// InvalidModelResponseError means the completion parsed as JSON but did not
// satisfy the task's schema and could not be repaired.
type InvalidModelResponseError struct {
	Reason string
}

func (e InvalidModelResponseError) Error() string {
	return e.Reason
}
