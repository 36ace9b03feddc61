package service

import "errors"

var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidState      = errors.New("invalid state")
	ErrLimitExceeded     = errors.New("deposit limit exceeded")
	ErrConflict          = errors.New("already paid")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
