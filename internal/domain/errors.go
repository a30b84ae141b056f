package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound signals an absent lookup target. Callers treat it as an
// absence signal, not an exceptional condition.
var ErrNotFound = errors.New("not found")

// ValidationError reports an unparseable or unsupported identifier. It is
// terminal; retrying the same input never succeeds.
type ValidationError struct {
	Input  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Input, e.Detail)
}
