package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter indicates a malformed generator parameter. It is
// returned before any graph construction happens.
var ErrInvalidParameter = errors.New("invalid parameter")

// invalidParamf wraps ErrInvalidParameter with a formatted description.
func invalidParamf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
