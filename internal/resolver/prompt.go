package resolver

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Cyclone1070/archpilot/internal/document"
)

const systemPrompt = `You turn drafting commands for a building design model into a single JSON action.
Commands may be written in English or Hebrew.

Operations you may return:
- create_dimensions: add dimension chains to rooms, walls or other elements
- create_tags: tag doors, windows, rooms, walls, floors or ceilings
- read_elements: list or count elements without changing anything

Reply with exactly one JSON object and nothing else:
{
  "operation": "create_dimensions" | "create_tags" | "read_elements",
  "targets": {
    "element_type": "Room" | "Wall" | "Door" | "Window" | "Floor" | "Ceiling" | "Stair",
    "scope": "current_view" | "selected" | "all" | "<level name>",
    "element_count": <number of elements affected, from the context>
  },
  "parameters": {
    "offset_mm": <create_dimensions only>,
    "dimension_style": <create_dimensions only>,
    "leader": <create_tags only, true or false>,
    "limit": <read_elements only>
  },
  "estimated_dimension_count": <create_dimensions only>,
  "estimated_tag_count": <create_tags only>,
  "clarifications": []
}

Rules:
- Use level names exactly as they appear in the context, for example "Level 1".
- When no scope is given, use "current_view".
- When the command is ambiguous, leave the unclear fields out and put one
  question per ambiguity in "clarifications".
- Prefer the firm standards from the context over your own defaults.
- Never invent an operation that is not listed above; if the user asks for
  something else, still return the operation they asked for so it can be
  refused explicitly.

Examples:
"Tag all doors on this floor"
{"operation": "create_tags", "targets": {"element_type": "Door", "scope": "current_view"}, "parameters": {}, "clarifications": []}

"Add dimensions"
{"operation": "create_dimensions", "targets": {}, "parameters": {}, "clarifications": ["Which elements should be dimensioned?", "On which level or view?"]}`

// SystemPrompt returns the instruction sent with every request.
func SystemPrompt() string {
	return systemPrompt
}

// ContextBlock renders the document snapshot for the model.
func ContextBlock(snap document.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("<context>\n")
	sb.WriteString("Project context:\n")

	if snap.ViewName != "" {
		fmt.Fprintf(&sb, "- Current view: %s\n", snap.ViewName)
	}
	if len(snap.Levels) > 0 {
		fmt.Fprintf(&sb, "- Levels: %s\n", strings.Join(snap.Levels, ", "))
	}
	if len(snap.ElementCounts) > 0 {
		types := make([]string, 0, len(snap.ElementCounts))
		for t := range snap.ElementCounts {
			types = append(types, t)
		}
		slices.Sort(types)

		counts := make([]string, 0, len(types))
		for _, t := range types {
			counts = append(counts, fmt.Sprintf("%s (%d)", t, snap.ElementCounts[t]))
		}
		fmt.Fprintf(&sb, "- Element types: %s\n", strings.Join(counts, ", "))
	}
	fmt.Fprintf(&sb, "- Selected elements: %d\n", snap.SelectionCount)

	if snap.Standards.DimensionOffsetMM > 0 {
		fmt.Fprintf(&sb, "- Dimension offset: %gmm\n", snap.Standards.DimensionOffsetMM)
	}
	if snap.Standards.DimensionStyle != "" {
		fmt.Fprintf(&sb, "- Dimension style: %s\n", snap.Standards.DimensionStyle)
	}

	sb.WriteString("</context>")
	return sb.String()
}

// UserPrompt wraps the command with its context.
func UserPrompt(command string, snap document.Snapshot) string {
	return fmt.Sprintf("%s\n\n<prompt>\n%s\n</prompt>\n\nReturn the JSON action.", ContextBlock(snap), command)
}
