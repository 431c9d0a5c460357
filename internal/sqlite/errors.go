package sqlite

import (
	"fmt"
	"strings"

	"github.com/hvillega/padron/store"
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "constraint failed")
}

// mapError translates driver errors into the store taxonomy. Anything that
// is not a recognized constraint failure is reported as a transport-level
// failure.
func mapError(err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", store.ErrUniqueViolation, err)
	case isConstraintViolation(err):
		return fmt.Errorf("%w: %v", store.ErrInvalid, err)
	default:
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
}
