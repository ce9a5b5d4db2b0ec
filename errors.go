package hcdrive

import "errors"

var (
	// ErrNotFound is returned when a shared file is not in the registry
	// or missing from storage.
	ErrNotFound = errors.New("not found")
)
