package store

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("document not found")

// CorruptionError reports a stored document whose body could not be decoded.
type CorruptionError struct {
	Name string
	Err  error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("document %q is corrupt: %v", e.Name, e.Err)
}

func (e *CorruptionError) Unwrap() error {
	return e.Err
}
