package parentcase

import "errors"

var (
	// ErrCaseNotFound indicates the parent case doesn't exist.
	ErrCaseNotFound = errors.New("parent case not found")
	// ErrCaseExists indicates the case number is already registered.
	ErrCaseExists = errors.New("parent case already exists")
	// ErrInvalidInput indicates missing required fields.
	ErrInvalidInput = errors.New("invalid parent case input")
)
