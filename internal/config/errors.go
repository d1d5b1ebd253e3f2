package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when the config file does not exist.
	ErrNotFound = errors.New("configuration file not found")
	// ErrEmpty is returned for a file with no settings in it.
	ErrEmpty = errors.New("configuration file is empty")
)

// Error is returned for any failure loading the configuration.
type Error struct {
	Path  string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ValidationError lists every invalid value found.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "config validation failed: " + strings.Join(e.Problems, "; ")
}
