package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for lifecycle operations. Transport layers map these to
// distinct responses; they are never coerced into one another.
var (
	// ErrNotFound indicates the referenced event does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a missing or unresolvable bearer secret, or
	// an actor lacking the required permission.
	ErrUnauthorized = errors.New("unauthorized")
)

// StorageError wraps a failure from one of the backing stores (relational or
// blob). Op names the failed operation, e.g. "blob put".
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
