package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/archpilot/internal/ui/models"
	"github.com/Cyclone1070/archpilot/internal/ui/services"
	"github.com/charmbracelet/lipgloss"
)

// RenderModelPopup renders the model selection popup
func RenderModelPopup(s models.State) string {
	if !s.ShowModelList || len(s.ModelList) == 0 {
		return ""
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Select Model:"))
	lines = append(lines, "")

	for i, model := range s.ModelList {
		if i == s.ModelListIndex {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Render(fmt.Sprintf("▸ %s", model)))
		} else {
			lines = append(lines, fmt.Sprintf("  %s", model))
		}
	}

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Faint(true).Render("↑/↓: Navigate  Enter: Select  Esc: Cancel"))

	return PermissionBoxStyle.Render(strings.Join(lines, "\n"))
}

// RenderPermission renders a pending confirmation with its preview.
func RenderPermission(s models.State) string {
	req := s.PendingPermission
	if req == nil {
		return ""
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Render(req.Prompt)}
	if preview := services.RenderPreview(req.Preview); preview != "" {
		lines = append(lines, "", preview)
	}
	lines = append(lines, "", lipgloss.NewStyle().Faint(true).Render("y: Apply  n: Cancel  a: Always apply this operation"))

	return PermissionBoxStyle.Render(strings.Join(lines, "\n"))
}
