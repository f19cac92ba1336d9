package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a filter matched zero rows.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousMatch indicates a partial-match filter resolved to more
	// than one row. Surfaced distinctly from ErrNotFound so callers never
	// act on an arbitrary row.
	ErrAmbiguousMatch = errors.New("ambiguous match")
	// ErrAlreadyExists indicates an insert violated a uniqueness constraint.
	ErrAlreadyExists = errors.New("already exists")
)

// StoreError wraps a failed store call with the operation and table it hit.
type StoreError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
