package port

import "errors"

// Sentinel errors used across ports.
var (
	ErrMissingToken = errors.New("missing authorization")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrUserNotFound = errors.New("user not found")
)
