package income

import "errors"

// ErrInvalidInput indicates a non-positive amount or unknown kind.
var ErrInvalidInput = errors.New("invalid income input")
