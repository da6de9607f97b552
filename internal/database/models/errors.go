package models

import "errors"

// Base errors the gateway maps to HTTP statuses; service errors wrap one of them.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)
