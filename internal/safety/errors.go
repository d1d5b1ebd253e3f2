package safety

import (
	"fmt"

	"github.com/Cyclone1070/archpilot/internal/action"
)

// StructuralError is returned when an action is malformed. It is never a
// policy decision: the action could not be evaluated at all.
type StructuralError struct {
	Reason string
	Cause  error
}

func (e *StructuralError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed action: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("malformed action: %s", e.Reason)
}

func (e *StructuralError) Unwrap() error {
	return e.Cause
}

func (e *StructuralError) InvalidInput() bool {
	return true
}

// RejectKind classifies a policy rejection.
type RejectKind string

const (
	RejectForbidden    RejectKind = "forbidden"
	RejectNotPermitted RejectKind = "not_permitted"
	RejectScope        RejectKind = "scope"
	RejectElementType  RejectKind = "element_type"
	RejectInvalidScope RejectKind = "invalid_scope"
)

// PolicyRejection is returned when a well-formed action violates the safety
// policy. Message is the user-facing diagnostic.
type PolicyRejection struct {
	Operation action.Operation
	Kind      RejectKind
	Message   string

	// Allowed is set for RejectNotPermitted and RejectElementType.
	Allowed []string

	// Limit and Count are set for RejectScope.
	Limit int
	Count int
}

func (e *PolicyRejection) Error() string {
	return e.Message
}

func (e *PolicyRejection) PolicyDenied() bool {
	return true
}
