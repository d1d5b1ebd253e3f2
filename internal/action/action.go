// Package action defines the structured description of a requested
// operation, as produced by the remote resolver and consumed by the safety
// gate and the operation handlers.
package action

import (
	"fmt"
	"strings"
)

// Operation is a tag from the fixed operation vocabulary.
type Operation string

const (
	// Operations permitted by the default policy.
	OpCreateDimensions Operation = "create_dimensions"
	OpCreateTags       Operation = "create_tags"
	OpReadElements     Operation = "read_elements"

	// Destructive operations forbidden by the default policy.
	OpDeleteElements Operation = "delete_elements"
	OpModifyWalls    Operation = "modify_walls"
	OpModifyDoors    Operation = "modify_doors"
	OpModifyRooms    Operation = "modify_rooms"
	OpSaveProject    Operation = "save_project"
	OpCloseProject   Operation = "close_project"
	OpExportData     Operation = "export_data"
	OpImportData     Operation = "import_data"
)

// ReadOnly reports whether the operation never mutates the document.
func (o Operation) ReadOnly() bool {
	return o == OpReadElements
}

// Label returns a human readable name, e.g. "Create Dimensions".
func (o Operation) Label() string {
	words := strings.Split(string(o), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Scope kinds accepted in Targets.Scope.
const (
	ScopeCurrentView = "current_view"
	ScopeSelected    = "selected"
	ScopeAll         = "all"

	// LevelScopePrefix starts a level scope such as "Level 1".
	LevelScopePrefix = "Level "
)

// CanonicalScope maps the spoken scope aliases ("current view", "selection")
// onto the canonical names and returns anything else unchanged.
func CanonicalScope(s string) string {
	switch s {
	case "current view":
		return ScopeCurrentView
	case "selection":
		return ScopeSelected
	}
	return s
}

// LevelName returns the level named by a level scope.
func LevelName(scope string) (string, bool) {
	level, ok := strings.CutPrefix(scope, LevelScopePrefix)
	if !ok || strings.TrimSpace(level) == "" {
		return "", false
	}
	return scope, true
}

// Raw is the untyped mapping returned by the resolver. It is what the safety
// gate inspects before anything is decoded or executed.
type Raw map[string]any

// Targets describes which elements an operation applies to.
type Targets struct {
	ElementType  string         `mapstructure:"element_type" json:"element_type,omitempty"`
	Scope        string         `mapstructure:"scope" json:"scope,omitempty"`
	ElementCount int            `mapstructure:"element_count" json:"element_count,omitempty"`
	Filter       map[string]any `mapstructure:"filter" json:"filter,omitempty"`
}

// Action is the decoded unit of intent.
type Action struct {
	Operation      Operation      `mapstructure:"operation" json:"operation"`
	Targets        Targets        `mapstructure:"targets" json:"targets"`
	Parameters     map[string]any `mapstructure:"parameters" json:"parameters,omitempty"`
	Clarifications []string       `mapstructure:"clarifications" json:"clarifications,omitempty"`

	// Output estimates supplied by the resolver, checked against ceilings.
	EstimatedDimensionCount int `mapstructure:"estimated_dimension_count" json:"estimated_dimension_count,omitempty"`
	EstimatedTagCount       int `mapstructure:"estimated_tag_count" json:"estimated_tag_count,omitempty"`
}

// NeedsClarification reports whether the resolver could not settle on an
// unambiguous action and asked follow-up questions instead.
func (a *Action) NeedsClarification() bool {
	return len(a.Clarifications) > 0
}

// Summary renders a one-line description used in previews and logs.
func (a *Action) Summary() string {
	var sb strings.Builder
	sb.WriteString(string(a.Operation))

	if a.Targets.ElementType != "" {
		sb.WriteString(" " + a.Targets.ElementType)
	}
	if a.Targets.Scope != "" {
		sb.WriteString(" @ " + a.Targets.Scope)
	}

	var extra []string
	if a.Targets.ElementCount > 0 {
		extra = append(extra, fmt.Sprintf("%d elements", a.Targets.ElementCount))
	}
	if a.EstimatedDimensionCount > 0 {
		extra = append(extra, fmt.Sprintf("~%d dimensions", a.EstimatedDimensionCount))
	}
	if a.EstimatedTagCount > 0 {
		extra = append(extra, fmt.Sprintf("~%d tags", a.EstimatedTagCount))
	}
	if len(extra) > 0 {
		sb.WriteString(" (" + strings.Join(extra, ", ") + ")")
	}
	return sb.String()
}
