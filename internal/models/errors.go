package models

import "errors"

// Domain error kinds. Store and API layers wrap these with context and
// callers match them with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("duplicate name")
	ErrValidation    = errors.New("validation failed")
)
