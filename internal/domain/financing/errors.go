package financing

import "errors"

var (
	ErrInvalidEnumValue = errors.New("invalid enum value")
	ErrNonPositiveInput = errors.New("non-positive or negative input")
	ErrUnknownLender    = errors.New("unknown lender")
	ErrDegenerateRate   = errors.New("degenerate rate")
	ErrMissingRate      = errors.New("missing loan rate")
	ErrInvalidSchedule  = errors.New("invalid schedule")
	ErrRunNotFound      = errors.New("financing run not found")
)

// IsInputError reports whether err was caused by the caller's figures rather
// than by the service itself.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidEnumValue) ||
		errors.Is(err, ErrNonPositiveInput) ||
		errors.Is(err, ErrUnknownLender) ||
		errors.Is(err, ErrDegenerateRate) ||
		errors.Is(err, ErrMissingRate)
}
