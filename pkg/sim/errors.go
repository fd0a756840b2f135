package sim

import (
	"errors"
	"fmt"
)

// Setup error taxonomy. Both classes are raised before any simulation step
// runs; nothing in the steady-state iteration loop can fail.
var (
	// ErrInvalidParameter indicates malformed configuration: non-positive
	// sizes, attachment parameter at or above population size, probability
	// outside [0,1], or a negative iteration count.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientPopulation indicates there are not enough distinct
	// agents to seed every technology's early adopters without overlap.
	ErrInsufficientPopulation = errors.New("insufficient population")
)

// SetupError provides structured error information for simulation setup
// failures.
type SetupError struct {
	Op    string // operation that failed, e.g. "Validate", "Seed"
	Field string // configuration field involved, if any
	Cause error  // underlying error
}

// Error implements the error interface.
func (e *SetupError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Field, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SetupError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *SetupError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func setupError(op, field string, cause error) error {
	return &SetupError{Op: op, Field: field, Cause: cause}
}
