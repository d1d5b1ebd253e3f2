package host

import "github.com/Cyclone1070/archpilot/internal/document"

// Body is the work run against the document inside a transaction.
type Body func(doc *document.Document) (any, error)

// Transactor runs mutations atomically: either the whole body is committed or
// the document is left exactly as it was.
type Transactor interface {
	WithTransaction(label string, body Body) (any, error)
}

// Host is the capability the dispatcher hands to operations. It is only ever
// used from the host goroutine.
type Host interface {
	Transactor

	// View runs a read-only body against the live document.
	View(body Body) (any, error)
}
