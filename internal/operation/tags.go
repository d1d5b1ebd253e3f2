package operation

import (
	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/document"
)

// TagParams are the parameters of create_tags.
type TagParams struct {
	Leader bool `mapstructure:"leader"`

	// Retag tags elements that already carry a tag in the active view.
	Retag bool `mapstructure:"retag"`
}

// NewCreateTags returns the create_tags handler: one tag per matched element
// that is not yet tagged. When limiter is also a TagFilter, elements of
// categories it does not allow are never tagged, even if the action named no
// element type.
func NewCreateTags(std document.FirmStandards, limiter Limiter) Handler {
	h := NewBaseHandler(action.OpCreateTags, std, limiter, createTags)
	if f, ok := limiter.(TagFilter); ok {
		h.WithFilter(func(e document.Element) bool { return f.CanTag(e.Category) })
	}
	return h
}

func createTags(doc *document.Document, elements []document.Element, params TagParams) (*Result, error) {
	res := &Result{Matched: len(elements)}
	for _, e := range elements {
		if !params.Retag && doc.HasTag(e.ID) {
			res.Skipped++
			continue
		}
		if _, err := doc.AddTag(e.ID, params.Leader); err != nil {
			return nil, err
		}
		res.Created++
	}
	return res, nil
}
