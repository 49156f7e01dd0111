package service

import "errors"

// Sentinel errors for the two caller-visible failure classes. Handlers map
// them to 404 and 400; anything else is a storage failure.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("invalid input")
)
