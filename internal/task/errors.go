package task

import "errors"

// Handlers map these with errors.Is: ErrValidation to 400, ErrNotFound to
// 404, anything else to 500.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("task not found")
)

// ValidationError names the offending input. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
