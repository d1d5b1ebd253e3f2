// Package operation holds the handlers that carry out admitted actions on
// the host document.
package operation

import (
	"slices"

	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/dispatch"
	"github.com/Cyclone1070/archpilot/internal/document"
	"github.com/Cyclone1070/archpilot/internal/host"
)

// Registry maps operations to handlers.
type Registry struct {
	handlers map[action.Operation]Handler
}

// NewRegistry returns a registry with the built-in handlers.
func NewRegistry(std document.FirmStandards, limiter Limiter) *Registry {
	r := &Registry{handlers: make(map[action.Operation]Handler)}
	r.Register(NewCreateDimensions(std, limiter))
	r.Register(NewCreateTags(std, limiter))
	r.Register(NewReadElements(std, limiter))
	return r
}

// Register adds or replaces a handler.
func (r *Registry) Register(h Handler) {
	r.handlers[h.Operation()] = h
}

// Prepare returns the host operation for act.
func (r *Registry) Prepare(act *action.Action) (dispatch.Operation[host.Host], error) {
	h, ok := r.handlers[act.Operation]
	if !ok {
		return nil, &UnsupportedError{Operation: act.Operation}
	}
	return h.Prepare(act)
}

// Operations lists the operations with a handler, sorted.
func (r *Registry) Operations() []string {
	ops := make([]string, 0, len(r.handlers))
	for op := range r.handlers {
		ops = append(ops, string(op))
	}
	slices.Sort(ops)
	return ops
}

// Snapshot returns a host operation that captures the document context.
func Snapshot(std document.FirmStandards) dispatch.Operation[host.Host] {
	return func(h host.Host, _ ...any) (any, error) {
		return h.View(func(doc *document.Document) (any, error) {
			return doc.Snapshot(std), nil
		})
	}
}
