package problems

import (
	"errors"
	"fmt"
)

// ErrNotFound is the typed miss for lookups by slug or id.
var ErrNotFound = errors.New("problem not found")

// ErrDuplicateSlug is returned by a Store when a create collides with an
// existing slug. The repository resolves it by re-reading the winner; it
// never reaches repository callers.
var ErrDuplicateSlug = errors.New("duplicate problem slug")

// PersistenceError is a transient store failure. It carries the failed
// operation and key so the caller can retry or roll back.
type PersistenceError struct {
	Op   string // "find-by-slug", "create", "delete"
	Slug string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("problem store %s %q: %v", e.Op, e.Slug, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
