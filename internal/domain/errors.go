package domain

import "errors"

var (
	ErrValidation  = errors.New("validation failed")
	ErrInvalidSlot = errors.New("invalid slot index")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("version conflict")
)
