package safety

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Cyclone1070/archpilot/internal/action"
)

const actionSchemaURL = "https://archpilot.local/schemas/action.schema.json"

//go:embed action.schema.json
var actionSchema string

func compileActionSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	if err := c.AddResource(actionSchemaURL, strings.NewReader(actionSchema)); err != nil {
		return nil, fmt.Errorf("failed to add action schema: %w", err)
	}
	schema, err := c.Compile(actionSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile action schema: %w", err)
	}
	return schema, nil
}

// normalise re-encodes a Raw mapping into the generic JSON shape the schema
// validator expects (objects, arrays, strings, bools and json.Number).
func normalise(raw action.Raw) (any, error) {
	data, err := json.Marshal(map[string]any(raw))
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
