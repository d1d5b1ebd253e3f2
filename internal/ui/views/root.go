package views

import (
	"github.com/Cyclone1070/archpilot/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State) string {
	// Add model popup if visible
	if s.ShowModelList {
		return lipgloss.Place(
			s.Width,
			s.Height,
			lipgloss.Center,
			lipgloss.Center,
			RenderModelPopup(s),
			lipgloss.WithWhitespaceChars(""),
			lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
		)
	}

	sections := []string{RenderChat(s)}
	if s.PendingPermission != nil {
		sections = append(sections, RenderPermission(s))
	} else {
		sections = append(sections, RenderInput(s))
	}
	sections = append(sections, RenderStatus(s))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
