// Package store implements the relational persistence layer over MySQL.
package store

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique constraint rejects a write,
	// e.g. an already-taken username or email.
	ErrDuplicate = errors.New("duplicate entry")
)
