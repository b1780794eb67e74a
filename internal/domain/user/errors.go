package user

import "errors"

var (
	// ErrUserNotFound indicates the user doesn't exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates an unknown or revoked API token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidInput indicates missing or malformed signup fields.
	ErrInvalidInput = errors.New("invalid user input")
)
