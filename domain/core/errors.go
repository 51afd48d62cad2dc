package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel for lookup misses. Callers match it with
// IsNotFoundError rather than comparing wrapped errors directly.
var ErrNotFound = errors.New("resource not found")

// NewNotFoundError wraps ErrNotFound with the resource kind and id
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
