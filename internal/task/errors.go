package task

import "fmt"

// ValidationError reports a malformed task descriptor or analysis
// parameter. It is surfaced immediately and never recovered from:
// construction fails before any simulation or analysis state exists.
type ValidationError struct {
	msg string
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.msg }
