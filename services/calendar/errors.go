package calendar

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the calendar engine. All engine failures are
// synchronous and recoverable; callers correct the input and retry.
const (
	CodeInvalidRange = "invalidRange"
	CodeValidation   = "validationError"
	CodeNotFound     = "notFound"
)

// Error is a typed engine failure with a stable code for transport mapping.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRangeError reports a start/end time ordering violation.
func NewInvalidRangeError(format string, args ...interface{}) error {
	return &Error{Code: CodeInvalidRange, Message: fmt.Sprintf(format, args...)}
}

// NewValidationError reports rejected input, such as a missing service scope
// or a duplicate manual window.
func NewValidationError(format string, args ...interface{}) error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(format string, args ...interface{}) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func hasCode(err error, code string) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// IsInvalidRange reports whether err is a time ordering violation.
func IsInvalidRange(err error) bool { return hasCode(err, CodeInvalidRange) }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }
