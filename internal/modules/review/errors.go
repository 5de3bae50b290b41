package review

import "errors"

var (
	ErrValidation    = errors.New("invalid review")
	ErrNotFound      = errors.New("booking not found")
	ErrForbidden     = errors.New("only the borrower can leave a review")
	ErrNotCompleted  = errors.New("booking is not completed")
	ErrAlreadyExists = errors.New("review already submitted for this booking")
)
