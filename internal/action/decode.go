package action

import (
	"github.com/mitchellh/mapstructure"
)

// Decode converts a Raw mapping into a typed Action.
// JSON numbers arrive as float64 (or json.Number) and are converted to ints.
func Decode(raw Raw) (*Action, error) {
	if raw == nil {
		return nil, ErrNotObject
	}
	if _, ok := raw["operation"]; !ok {
		return nil, ErrMissingOperation
	}

	var act Action
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &act,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, &DecodeError{Cause: err}
	}
	if err := decoder.Decode(map[string]any(raw)); err != nil {
		return nil, &DecodeError{Cause: err}
	}

	if act.Operation == "" {
		return nil, ErrMissingOperation
	}
	return &act, nil
}

// Encode converts an Action back into its Raw form.
func Encode(act *Action) Raw {
	targets := map[string]any{}
	if act.Targets.ElementType != "" {
		targets["element_type"] = act.Targets.ElementType
	}
	if act.Targets.Scope != "" {
		targets["scope"] = act.Targets.Scope
	}
	if act.Targets.ElementCount > 0 {
		targets["element_count"] = act.Targets.ElementCount
	}
	if len(act.Targets.Filter) > 0 {
		targets["filter"] = act.Targets.Filter
	}

	raw := Raw{
		"operation": string(act.Operation),
		"targets":   targets,
	}
	if act.Parameters != nil {
		raw["parameters"] = act.Parameters
	}
	if len(act.Clarifications) > 0 {
		raw["clarifications"] = act.Clarifications
	}
	if act.EstimatedDimensionCount > 0 {
		raw["estimated_dimension_count"] = act.EstimatedDimensionCount
	}
	if act.EstimatedTagCount > 0 {
		raw["estimated_tag_count"] = act.EstimatedTagCount
	}
	return raw
}
