// Package safety decides, before any document mutation, whether an action may
// run. The gate is pure: it reads an immutable policy and never touches the
// document.
package safety

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Cyclone1070/archpilot/internal/action"
)

var scopeNames = map[string]struct{}{
	action.ScopeCurrentView: {},
	action.ScopeSelected:    {},
	action.ScopeAll:         {},
}

// Gate validates actions against a Policy.
type Gate struct {
	policy *Policy
	schema *jsonschema.Schema
	logger *slog.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the logger used for rejection diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// NewGate compiles the action schema and binds the gate to policy.
// A nil policy means DefaultPolicy.
func NewGate(policy *Policy, opts ...Option) (*Gate, error) {
	if policy == nil {
		policy = DefaultPolicy()
	}
	schema, err := compileActionSchema()
	if err != nil {
		return nil, err
	}

	g := &Gate{
		policy: policy,
		schema: schema,
		logger: slog.Default().With("component", "safety"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Gate) Policy() *Policy {
	return g.policy
}

// Validate returns nil if raw may be executed, a *StructuralError if it is
// malformed, or a *PolicyRejection if the policy forbids it.
func (g *Gate) Validate(raw action.Raw) error {
	_, err := g.Admit(raw)
	return err
}

// Admit validates raw and returns the decoded action on success.
func (g *Gate) Admit(raw action.Raw) (*action.Action, error) {
	act, err := g.decode(raw)
	if err != nil {
		g.logger.Debug("action rejected as malformed", "error", err)
		return nil, err
	}

	if err := g.check(act); err != nil {
		var rej *PolicyRejection
		if errors.As(err, &rej) {
			g.logger.Info("action rejected by policy",
				"operation", act.Operation,
				"kind", rej.Kind,
				"reason", rej.Message)
		}
		return nil, err
	}
	return act, nil
}

func (g *Gate) decode(raw action.Raw) (*action.Action, error) {
	if raw == nil {
		return nil, &StructuralError{Reason: "action must be a mapping"}
	}
	if _, ok := raw["operation"]; !ok {
		return nil, &StructuralError{Reason: action.ErrMissingOperation.Error(), Cause: action.ErrMissingOperation}
	}

	doc, err := normalise(raw)
	if err != nil {
		return nil, &StructuralError{Reason: "action is not JSON-representable", Cause: err}
	}
	if err := g.schema.Validate(doc); err != nil {
		return nil, &StructuralError{Reason: "action does not match schema", Cause: err}
	}

	act, err := action.Decode(raw)
	if err != nil {
		return nil, &StructuralError{Reason: "action fields have the wrong type", Cause: err}
	}
	return act, nil
}

func (g *Gate) check(act *action.Action) error {
	op := act.Operation

	// The blocklist wins over the allowlist.
	if g.policy.IsBlocked(op) {
		return &PolicyRejection{
			Operation: op,
			Kind:      RejectForbidden,
			Message: fmt.Sprintf(
				"operation '%s' is explicitly forbidden: this operation could damage the project file", op),
		}
	}

	if !g.policy.IsAllowed(op) {
		allowed := g.policy.Allowed()
		return &PolicyRejection{
			Operation: op,
			Kind:      RejectNotPermitted,
			Message: fmt.Sprintf("operation '%s' is not allowed. Permitted operations: %s",
				op, strings.Join(allowed, ", ")),
			Allowed: allowed,
		}
	}

	switch op {
	case action.OpCreateDimensions:
		return g.checkDimensions(act)
	case action.OpCreateTags:
		return g.checkTags(act)
	case action.OpReadElements:
		return g.checkRead(act)
	}
	return nil
}

func (g *Gate) checkDimensions(act *action.Action) error {
	limits := g.policy.Limits()

	if err := g.checkElementCount(act, limits.MaxElements); err != nil {
		return err
	}
	if n := act.EstimatedDimensionCount; n > limits.MaxDimensions {
		return &PolicyRejection{
			Operation: act.Operation,
			Kind:      RejectScope,
			Message:   fmt.Sprintf("too many dimensions: %d (maximum: %d). Please reduce the scope", n, limits.MaxDimensions),
			Limit:     limits.MaxDimensions,
			Count:     n,
		}
	}

	if scope := act.Targets.Scope; scope != "" && !ValidScope(scope) {
		return &PolicyRejection{
			Operation: act.Operation,
			Kind:      RejectInvalidScope,
			Message: fmt.Sprintf(
				"invalid scope: %s. Must be 'current_view', 'selected', 'all', or a level name like 'Level 1'", scope),
		}
	}
	return nil
}

func (g *Gate) checkTags(act *action.Action) error {
	limits := g.policy.Limits()

	if err := g.checkElementCount(act, limits.MaxElements); err != nil {
		return err
	}
	if n := act.EstimatedTagCount; n > limits.MaxTags {
		return &PolicyRejection{
			Operation: act.Operation,
			Kind:      RejectScope,
			Message:   fmt.Sprintf("too many tags: %d (maximum: %d)", n, limits.MaxTags),
			Limit:     limits.MaxTags,
			Count:     n,
		}
	}

	if et := act.Targets.ElementType; et != "" && !g.policy.CanTag(et) {
		types := g.policy.TaggableTypes()
		return &PolicyRejection{
			Operation: act.Operation,
			Kind:      RejectElementType,
			Message:   fmt.Sprintf("cannot tag element type '%s'. Allowed types: %s", et, strings.Join(types, ", ")),
			Allowed:   types,
		}
	}
	return nil
}

func (g *Gate) checkRead(act *action.Action) error {
	ceiling := g.policy.ReadCeiling()
	if n := act.Targets.ElementCount; n > ceiling {
		return &PolicyRejection{
			Operation: act.Operation,
			Kind:      RejectScope,
			Message:   fmt.Sprintf("query scope too large: %d elements (maximum: %d)", n, ceiling),
			Limit:     ceiling,
			Count:     n,
		}
	}
	return nil
}

func (g *Gate) checkElementCount(act *action.Action, ceiling int) error {
	if n := act.Targets.ElementCount; n > ceiling {
		return &PolicyRejection{
			Operation: act.Operation,
			Kind:      RejectScope,
			Message: fmt.Sprintf(
				"operation scope too large: %d elements (maximum: %d). Please narrow the scope or work in batches",
				n, ceiling),
			Limit: ceiling,
			Count: n,
		}
	}
	return nil
}

// CanTag reports whether the policy allows tagging elements of the given
// category.
func (g *Gate) CanTag(elementType string) bool {
	return g.policy.CanTag(elementType)
}

// CheckScopeLimits checks counts measured on the document after resolution,
// when the resolver's own estimates cannot be trusted. estimatedOutput is
// ignored when zero.
func (g *Gate) CheckScopeLimits(op action.Operation, elementCount, estimatedOutput int) error {
	limits := g.policy.Limits()

	ceiling := limits.MaxElements
	if op.ReadOnly() {
		ceiling = g.policy.ReadCeiling()
	}
	if elementCount > ceiling {
		return &PolicyRejection{
			Operation: op,
			Kind:      RejectScope,
			Message:   fmt.Sprintf("operation scope exceeds limit: %d elements (maximum: %d)", elementCount, ceiling),
			Limit:     ceiling,
			Count:     elementCount,
		}
	}

	if estimatedOutput == 0 {
		return nil
	}
	switch {
	case op == action.OpCreateDimensions && estimatedOutput > limits.MaxDimensions:
		return &PolicyRejection{
			Operation: op,
			Kind:      RejectScope,
			Message:   fmt.Sprintf("estimated dimensions (%d) exceeds limit (%d)", estimatedOutput, limits.MaxDimensions),
			Limit:     limits.MaxDimensions,
			Count:     estimatedOutput,
		}
	case op == action.OpCreateTags && estimatedOutput > limits.MaxTags:
		return &PolicyRejection{
			Operation: op,
			Kind:      RejectScope,
			Message:   fmt.Sprintf("estimated tags (%d) exceeds limit (%d)", estimatedOutput, limits.MaxTags),
			Limit:     limits.MaxTags,
			Count:     estimatedOutput,
		}
	}
	return nil
}

// AllowedOperations returns the allowed operations sorted ascending.
func (g *Gate) AllowedOperations() []string {
	return g.policy.Allowed()
}

// BlockedOperations returns the blocked operations sorted ascending.
func (g *Gate) BlockedOperations() []string {
	return g.policy.Blocked()
}

// ValidScope reports whether s names a known scope, one of its spoken
// aliases, or a level.
func ValidScope(s string) bool {
	if _, ok := scopeNames[action.CanonicalScope(s)]; ok {
		return true
	}
	_, ok := action.LevelName(s)
	return ok
}
