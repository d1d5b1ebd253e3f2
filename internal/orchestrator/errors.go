package orchestrator

import (
	"errors"
	"fmt"

	"github.com/Cyclone1070/archpilot/internal/action"
)

// DeclinedError is returned when the user refuses a document change.
type DeclinedError struct {
	Operation action.Operation
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("user declined %s", e.Operation)
}

// UnexpectedResultError is returned when a host operation yields a value of
// the wrong type.
type UnexpectedResultError struct {
	Stage string
	Value any
}

func (e *UnexpectedResultError) Error() string {
	return fmt.Sprintf("%s returned unexpected %T", e.Stage, e.Value)
}

// ErrEmptyCommand is returned for a blank command.
var ErrEmptyCommand = errors.New("command is empty")
