package operation

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/dispatch"
	"github.com/Cyclone1070/archpilot/internal/document"
	"github.com/Cyclone1070/archpilot/internal/host"
)

// Validator is implemented by parameter types that check themselves.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by parameter types that fill unset fields from the
// firm standards.
type Defaulter interface {
	ApplyDefaults(std document.FirmStandards)
}

// Limiter re-checks scope ceilings against the elements actually matched.
type Limiter interface {
	CheckScopeLimits(op action.Operation, elementCount, estimatedOutput int) error
}

// TagFilter reports which element categories may be tagged.
type TagFilter interface {
	CanTag(elementType string) bool
}

// Executor runs an operation against the matched elements. It is called on
// the host goroutine, inside a transaction unless the operation is read-only.
type Executor[P any] func(doc *document.Document, elements []document.Element, params P) (*Result, error)

// Handler turns a validated action into work for the host goroutine.
type Handler interface {
	Operation() action.Operation
	Prepare(act *action.Action) (dispatch.Operation[host.Host], error)
}

// BaseHandler decodes parameters, matches targets and runs an Executor.
type BaseHandler[P any] struct {
	op        action.Operation
	label     string
	standards document.FirmStandards
	limiter   Limiter
	executor  Executor[P]
	keep      func(document.Element) bool
}

// NewBaseHandler creates a handler for op.
func NewBaseHandler[P any](op action.Operation, std document.FirmStandards, limiter Limiter, executor Executor[P]) *BaseHandler[P] {
	return &BaseHandler[P]{
		op:        op,
		label:     op.Label(),
		standards: std,
		limiter:   limiter,
		executor:  executor,
	}
}

// WithFilter drops matched elements for which keep returns false before the
// scope checks and the executor see them.
func (b *BaseHandler[P]) WithFilter(keep func(document.Element) bool) *BaseHandler[P] {
	b.keep = keep
	return b
}

func (b *BaseHandler[P]) Operation() action.Operation {
	return b.op
}

// Prepare decodes and validates parameters on the calling goroutine so that
// bad input never reaches the host. The returned operation runs on the host.
func (b *BaseHandler[P]) Prepare(act *action.Action) (dispatch.Operation[host.Host], error) {
	params, err := b.decode(act.Parameters)
	if err != nil {
		return nil, err
	}
	targets := act.Targets

	body := func(doc *document.Document) (any, error) {
		elements, err := doc.Query(targets.ElementType, targets.Scope)
		if err != nil {
			return nil, err
		}
		if b.keep != nil {
			elements = filterElements(elements, b.keep)
		}
		if len(elements) == 0 && !b.op.ReadOnly() {
			return nil, &NoTargetsError{ElementType: targets.ElementType, Scope: describeScope(targets.Scope)}
		}
		if b.limiter != nil {
			estimate := 0
			if !b.op.ReadOnly() {
				estimate = len(elements)
			}
			if err := b.limiter.CheckScopeLimits(b.op, len(elements), estimate); err != nil {
				return nil, err
			}
		}

		res, err := b.executor(doc, elements, params)
		if err != nil {
			return nil, err
		}
		res.Operation = b.op
		res.ElementType = targets.ElementType
		res.Scope = describeScope(targets.Scope)
		return res, nil
	}

	return func(h host.Host, _ ...any) (any, error) {
		if b.op.ReadOnly() {
			return h.View(body)
		}
		return h.WithTransaction(b.label, body)
	}, nil
}

func (b *BaseHandler[P]) decode(raw map[string]any) (P, error) {
	var params P

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &params,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return params, &ParamsError{Operation: b.op, Cause: err}
	}
	if err := decoder.Decode(raw); err != nil {
		return params, &ParamsError{Operation: b.op, Cause: err}
	}

	if d, ok := any(&params).(Defaulter); ok {
		d.ApplyDefaults(b.standards)
	}
	if v, ok := any(&params).(Validator); ok {
		if err := v.Validate(); err != nil {
			return params, &ParamsError{Operation: b.op, Cause: fmt.Errorf("validation failed: %w", err)}
		}
	}
	return params, nil
}

func filterElements(elements []document.Element, keep func(document.Element) bool) []document.Element {
	kept := elements[:0:0]
	for _, e := range elements {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

func describeScope(scope string) string {
	if scope == "" {
		return action.ScopeCurrentView
	}
	return action.CanonicalScope(scope)
}
