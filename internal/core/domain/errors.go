package domain

import "errors"

// Authentication failures. All of them surface as HTTP 401.
var (
	ErrMalformedToken     = errors.New("malformed token")
	ErrInvalidSignature   = errors.New("invalid token signature")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is deactivated")
)

// Authorization failures.
var (
	ErrForbidden        = errors.New("access forbidden")
	ErrInvalidPrincipal = errors.New("invalid principal")
)

// Resource and input failures.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidID       = errors.New("invalid id format")
	ErrTooManyAttempts = errors.New("too many signin attempts")
)
