// Package host owns the document and the goroutine allowed to touch it.
package host

import (
	"fmt"
	"log/slog"

	"github.com/Cyclone1070/archpilot/internal/document"
)

// DocumentHost is the transaction boundary around a document. It is not
// safe for concurrent use; all calls must come from the host goroutine.
type DocumentHost struct {
	doc    *document.Document
	logger *slog.Logger
}

// Option configures a DocumentHost or a Loop.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(component string, opts []Option) options {
	o := options{logger: slog.Default().With("component", component)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewDocumentHost wraps doc.
func NewDocumentHost(doc *document.Document, opts ...Option) *DocumentHost {
	o := buildOptions("host", opts)
	return &DocumentHost{doc: doc, logger: o.logger}
}

// NoopHost returns a host over an empty document, for headless use.
func NoopHost() *DocumentHost {
	return NewDocumentHost(document.New("Untitled"))
}

// Document returns the committed document.
func (h *DocumentHost) Document() *document.Document {
	return h.doc
}

// WithTransaction runs body against a working copy of the document. The copy
// replaces the document only if body returns without error or panic.
func (h *DocumentHost) WithTransaction(label string, body Body) (any, error) {
	working := h.doc.Clone()

	result, panicked, err := runBody(working, body)
	if err != nil {
		h.logger.Warn("transaction rolled back", "label", label, "error", err, "panicked", panicked)
		return nil, &TransactionError{Label: label, Cause: err, Panicked: panicked}
	}

	h.doc = working
	h.logger.Debug("transaction committed", "label", label)
	return result, nil
}

// View runs body against the committed document. A panic is reported as a
// *TransactionError so that a faulty read cannot take down the host loop.
func (h *DocumentHost) View(body Body) (any, error) {
	result, panicked, err := runBody(h.doc, body)
	if panicked {
		return nil, &TransactionError{Label: "view", Cause: err, Panicked: true}
	}
	return result, err
}

func runBody(doc *document.Document, body Body) (result any, panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			panicked = true
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	result, err = body(doc)
	return result, false, err
}
