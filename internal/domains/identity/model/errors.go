package model

import "errors"

const (
	ErrCodeInvalidCredentials = "AUTH_001"
	ErrCodeUnauthenticated    = "AUTH_002"
	ErrCodeForbidden          = "AUTH_003"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient role")
)
