package income

// Validate checks fields required to record an income event.
func Validate(e Event) error {
	if !e.Amount.IsPositive() {
		return ErrInvalidInput
	}
	switch e.Kind {
	case KindDues, KindDonation, KindEvent, KindOther:
	default:
		return ErrInvalidInput
	}
	return nil
}
