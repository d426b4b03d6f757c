package core

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups for identifiers that do not exist. Callers
// should treat it as a stale reference, not a fatal condition.
var ErrNotFound = errors.New("not found")

// ValidationError carries one message per violated field so the caller
// can surface every problem at once instead of fixing them one by one.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d invalid field(s)", e.Message, len(e.Fields))
}

// fieldErrors accumulates per-field messages during validation.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	// Keep the first message per field; later checks assume earlier ones passed.
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

// toError returns a ValidationError when any field failed, nil otherwise.
func (f fieldErrors) toError() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Message: "validation failed", Fields: f}
}
