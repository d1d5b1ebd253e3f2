package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Cyclone1070/archpilot/internal/ui/models"
)

// FormatActionDescription generates a short status line for an action.
func FormatActionDescription(operation, elementType, scope string) string {
	var sb strings.Builder
	switch operation {
	case "create_dimensions":
		sb.WriteString("Dimensioning")
	case "create_tags":
		sb.WriteString("Tagging")
	case "read_elements":
		sb.WriteString("Reading")
	default:
		return operation
	}

	if elementType != "" {
		sb.WriteString(" " + elementType)
	} else {
		sb.WriteString(" elements")
	}
	if scope != "" {
		sb.WriteString(" in " + scope)
	}
	return sb.String()
}

// RenderPreview renders an action preview for a confirmation prompt.
func RenderPreview(preview *models.ActionPreview) string {
	if preview == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Operation: %s\n", preview.Operation)

	target := preview.ElementType
	if target == "" {
		target = "(any)"
	}
	fmt.Fprintf(&sb, "Elements:  %s", target)
	if preview.ElementCount > 0 {
		fmt.Fprintf(&sb, " × %d", preview.ElementCount)
	}
	sb.WriteString("\n")

	scope := preview.Scope
	if scope == "" {
		scope = "current_view"
	}
	fmt.Fprintf(&sb, "Scope:     %s\n", scope)

	if preview.EstimatedDimensions > 0 {
		fmt.Fprintf(&sb, "Creates:   ~%d dimensions\n", preview.EstimatedDimensions)
	}
	if preview.EstimatedTags > 0 {
		fmt.Fprintf(&sb, "Creates:   ~%d tags\n", preview.EstimatedTags)
	}

	if len(preview.Parameters) > 0 {
		keys := make([]string, 0, len(preview.Parameters))
		for k := range preview.Parameters {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		sb.WriteString("Parameters:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s = %v\n", k, preview.Parameters[k])
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
