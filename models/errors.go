package models

import "errors"

// Domain error taxonomy. Stores and handlers test against these with
// errors.Is; wrapped variants carry the operation detail.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrInvalidCredentials = errors.New("email or password invalid")
	ErrForbidden          = errors.New("forbidden")
)
