package city

import "errors"

var (
	// ErrNotFound is returned when no city has the requested id.
	ErrNotFound = errors.New("city not found")
	// ErrStorage wraps every failure of the underlying store.
	ErrStorage = errors.New("city storage failure")
)
