package models

import (
	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/operation"
)

// Outcome is what one command produced.
type Outcome struct {
	Command string

	// Action is nil when the reply only carried clarifications.
	Action *action.Action

	// Clarifications are questions for the user; nothing was executed.
	Clarifications []string

	// Result is set once the host has run the action.
	Result *operation.Result
}

// Executed reports whether the host ran the action.
func (o *Outcome) Executed() bool {
	return o.Result != nil
}
