package ladder

import (
	"errors"
	"fmt"
)

// ValidationError is a recoverable problem with facilitator input.
// Its text is meant to be shown to the user as is.
type ValidationError string

// Error implements the error interface
func (e ValidationError) Error() string {
	return string(e)
}

const (
	// ErrNoNames is returned by Start when no usable name was given
	ErrNoNames ValidationError = "enter at least 1 name"
)

// ErrTooManyNames is returned by Start when the roster would exceed max
func ErrTooManyNames(max int) ValidationError {
	return ValidationError(fmt.Sprintf("maximum %d participants", max))
}

// IsValidationError reports whether err carries a ValidationError
func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// ErrCorruptState is returned by Load when stored state breaks an invariant
var ErrCorruptState = errors.New("corrupt ladder state")
