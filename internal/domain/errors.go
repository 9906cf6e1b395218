package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the engine. Callers match them with errors.Is and
// map them to transport-level responses.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid article state transition")
	ErrArticleUnavailable = errors.New("article not available")
	ErrNotFound           = errors.New("not found")
)

// StoreError wraps a persistence failure, preserving the underlying cause for
// server-side logging while callers report it generically.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err is (or wraps) a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
