package member

import "errors"

var (
	// ErrInvalidInput indicates a missing required field or unknown
	// economic status.
	ErrInvalidInput = errors.New("invalid member input")
	// ErrInvalidDocument indicates a document number that is not eight digits.
	ErrInvalidDocument = errors.New("invalid document number")
)
