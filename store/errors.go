package store

import "errors"

var (
	// ErrNotFound is returned when the addressed record doesn't exist.
	ErrNotFound = errors.New("record not found")

	// ErrUniqueViolation is returned when an insert or update would
	// duplicate a unique field, such as a member's document number.
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrInvalid is returned when the store rejects the input: unknown
	// collection or field, constraint violation, or client-supplied
	// server-assigned fields.
	ErrInvalid = errors.New("invalid input")

	// ErrUnavailable is returned for connectivity and timeout failures
	// reaching the remote store.
	ErrUnavailable = errors.New("store unavailable")
)
