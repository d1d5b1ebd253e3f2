package operation

import (
	"errors"

	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/document"
)

const maxDimensionOffsetMM = 5000

// DimensionParams are the parameters of create_dimensions.
type DimensionParams struct {
	OffsetMM float64 `mapstructure:"offset_mm"`
	Style    string  `mapstructure:"dimension_style"`
}

func (p *DimensionParams) ApplyDefaults(std document.FirmStandards) {
	if p.OffsetMM == 0 {
		p.OffsetMM = std.DimensionOffsetMM
	}
	if p.Style == "" {
		p.Style = std.DimensionStyle
	}
}

func (p *DimensionParams) Validate() error {
	if p.OffsetMM < 0 || p.OffsetMM > maxDimensionOffsetMM {
		return errors.New("offset_mm must be between 0 and 5000")
	}
	if p.Style == "" {
		return errors.New("dimension_style is required")
	}
	return nil
}

// NewCreateDimensions returns the create_dimensions handler: one dimension
// chain per matched element.
func NewCreateDimensions(std document.FirmStandards, limiter Limiter) Handler {
	return NewBaseHandler(action.OpCreateDimensions, std, limiter, createDimensions)
}

func createDimensions(doc *document.Document, elements []document.Element, params DimensionParams) (*Result, error) {
	res := &Result{Matched: len(elements)}
	for _, e := range elements {
		if _, err := doc.AddDimension(e.ID, params.OffsetMM, params.Style); err != nil {
			return nil, err
		}
		res.Created++
	}
	return res, nil
}
