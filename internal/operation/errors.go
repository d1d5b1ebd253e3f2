package operation

import (
	"fmt"

	"github.com/Cyclone1070/archpilot/internal/action"
)

// UnsupportedError is returned for an operation with no registered handler.
type UnsupportedError struct {
	Operation action.Operation
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("no handler for operation '%s'", e.Operation)
}

// ParamsError is returned when an action's parameters cannot be decoded or
// fail validation.
type ParamsError struct {
	Operation action.Operation
	Cause     error
}

func (e *ParamsError) Error() string {
	return fmt.Sprintf("%s: invalid parameters: %v", e.Operation, e.Cause)
}

func (e *ParamsError) Unwrap() error {
	return e.Cause
}

func (e *ParamsError) InvalidInput() bool {
	return true
}

// NoTargetsError is returned when the scope matched no elements.
type NoTargetsError struct {
	ElementType string
	Scope       string
}

func (e *NoTargetsError) Error() string {
	what := e.ElementType
	if what == "" {
		what = "element"
	}
	return fmt.Sprintf("no %s elements found in %s", what, e.Scope)
}
