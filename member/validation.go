package member

import (
	"regexp"
	"strings"
)

var documentPattern = regexp.MustCompile(`^[0-9]{8}$`)

// Validate checks fields required to create or update a member.
func Validate(m Member) error {
	if strings.TrimSpace(m.FirstName) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(m.LastName) == "" {
		return ErrInvalidInput
	}
	if m.DocumentNumber != "" && !documentPattern.MatchString(m.DocumentNumber) {
		return ErrInvalidDocument
	}
	switch m.EconomicStatus {
	case EconomicUnset, EconomicLowIncome, EconomicExtremeLowIncome:
	default:
		return ErrInvalidInput
	}
	return nil
}
