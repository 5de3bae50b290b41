package booking

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("booking not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidState  = errors.New("invalid booking state")
	ErrNotAvailable  = errors.New("product not available for the selected dates")
	ErrTokenMismatch = errors.New("collection token mismatch")
)
