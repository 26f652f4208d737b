package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBackendUnavailable = errors.New("portal backend unavailable")
	ErrNoSession          = errors.New("no active session")
	ErrInvalidSignal      = errors.New("invalid connection signal")
	ErrInvalidTheme       = errors.New("invalid theme mode")
)
