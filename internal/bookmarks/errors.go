package bookmarks

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("invalid bookmark")
	ErrDuplicate   = errors.New("bookmark already exists")
	ErrNotFound    = errors.New("bookmark not found")
	ErrParse       = errors.New("malformed bookmark data")
	ErrPersistence = errors.New("failed to persist bookmarks")
)

// PersistenceError reports a failed write to the storage adapter.
// It matches both ErrPersistence and the underlying cause.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s (key %q): %v", ErrPersistence, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
