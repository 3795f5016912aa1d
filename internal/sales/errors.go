package sales

import "errors"

// ErrNotFound is returned when a sale with the given ID is not found.
var ErrNotFound = errors.New("sale not found")

// ErrEmptyID is returned when trying to store a sale with an empty ID.
var ErrEmptyID = errors.New("empty sale ID")

// ValidationError is a caller-correctable input problem. Nothing was mutated.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ConstraintError is a referential-integrity violation. Nothing was mutated.
type ConstraintError struct {
	Reason string
}

func (e *ConstraintError) Error() string { return e.Reason }

var (
	ErrMaxItemsExceeded      = &ValidationError{Reason: "max items exceeded"}
	ErrMissingItemFields     = &ValidationError{Reason: "missing required fields"}
	ErrRequiredFieldsMissing = &ValidationError{Reason: "required fields missing"}
	ErrInvalidPaymentMethod  = &ValidationError{Reason: "invalid payment method"}
	ErrUnknownSeller         = &ValidationError{Reason: "seller not found"}
)

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConstraint reports whether err is, or wraps, a ConstraintError.
func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}
