package service

import "errors"

var (
	// ErrInvalidDocument is returned when a payload is missing.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidEmail is returned when a user payload has no usable email.
	ErrInvalidEmail = errors.New("email is required")
)
