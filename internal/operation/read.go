package operation

import (
	"errors"

	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/document"
)

// ReadParams are the parameters of read_elements.
type ReadParams struct {
	// Limit caps the number of elements listed; zero lists all.
	Limit int `mapstructure:"limit"`
}

func (p *ReadParams) Validate() error {
	if p.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	return nil
}

// NewReadElements returns the read-only read_elements handler.
func NewReadElements(std document.FirmStandards, limiter Limiter) Handler {
	return NewBaseHandler(action.OpReadElements, std, limiter, readElements)
}

func readElements(_ *document.Document, elements []document.Element, params ReadParams) (*Result, error) {
	listed := elements
	if params.Limit > 0 && len(listed) > params.Limit {
		listed = listed[:params.Limit]
	}
	return &Result{
		Matched:  len(elements),
		Elements: append([]document.Element(nil), listed...),
	}, nil
}
