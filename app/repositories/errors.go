package repositories

import "errors"

var (
	// ErrNotFound is returned when no row has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write would reuse a taken id.
	ErrDuplicate = errors.New("record already exists")
)
