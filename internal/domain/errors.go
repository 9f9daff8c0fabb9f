package domain

import "errors"

// Repositories return these (possibly wrapped); the HTTP boundary maps them to statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrInactive           = errors.New("account inactive")
)
