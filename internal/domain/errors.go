package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUnauthorized      = errors.New("username or password incorrect")
	ErrInvalidInput      = errors.New("invalid input")
	ErrThrottled         = errors.New("action throttled")
)
