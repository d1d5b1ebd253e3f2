package action

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingOperation is returned when a mapping has no operation key.
	ErrMissingOperation = errors.New("action missing 'operation' field")

	// ErrNotObject is returned when an action is not a JSON object.
	ErrNotObject = errors.New("action must be a JSON object")

	// ErrEmptyResponse is returned when there is nothing to parse.
	ErrEmptyResponse = errors.New("empty response")
)

// ParseError is returned when a model reply cannot be parsed as an action.
type ParseError struct {
	Text  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse action JSON: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func (e *ParseError) InvalidInput() bool {
	return true
}

// DecodeError is returned when a Raw mapping has fields of the wrong type.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode action: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

func (e *DecodeError) InvalidInput() bool {
	return true
}
