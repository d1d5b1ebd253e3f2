package operation

import (
	"fmt"

	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/document"
)

// Result is what an operation returns to the caller.
type Result struct {
	Operation   action.Operation   `json:"operation"`
	ElementType string             `json:"element_type,omitempty"`
	Scope       string             `json:"scope"`
	Matched     int                `json:"matched"`
	Created     int                `json:"created"`
	Skipped     int                `json:"skipped"`
	Elements    []document.Element `json:"elements,omitempty"`
}

// Message is a one-line human readable outcome.
func (r *Result) Message() string {
	what := r.ElementType
	if what == "" {
		what = "element"
	}

	switch r.Operation {
	case action.OpCreateDimensions:
		return fmt.Sprintf("Created %d dimensions for %d %s elements in %s", r.Created, r.Matched, what, r.Scope)
	case action.OpCreateTags:
		msg := fmt.Sprintf("Tagged %d of %d %s elements in %s", r.Created, r.Matched, what, r.Scope)
		if r.Skipped > 0 {
			msg += fmt.Sprintf(" (%d already tagged)", r.Skipped)
		}
		return msg
	case action.OpReadElements:
		return fmt.Sprintf("Found %d %s elements in %s", r.Matched, what, r.Scope)
	}
	return fmt.Sprintf("%s: %d elements", r.Operation, r.Matched)
}
