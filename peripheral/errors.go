package peripheral

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrOutOfRange       = errors.New("out of range")
	ErrUnavailable      = errors.New("peripheral not available")
	ErrAlreadyInstalled = errors.New("handler already installed")
	ErrNotInstalled     = errors.New("no handler installed")
)
