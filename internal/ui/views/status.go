package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/archpilot/internal/ui/models"
)

// RenderStatus renders the status bar
func RenderStatus(s models.State) string {
	var icon string
	var style = StatusDefaultStyle

	switch s.StatusPhase {
	case "executing":
		icon = s.Spinner.View()
		style = StatusExecutingStyle
	case "done":
		icon = "✔"
		style = StatusDoneStyle
	case "error":
		icon = "✘"
		style = StatusErrorStyle
	case "thinking":
		icon = s.Spinner.View()
		style = StatusThinkingStyle
		msg := s.StatusMessage
		if msg == "" {
			msg = "Thinking"
		}
		return withModel(style.Render(fmt.Sprintf("%s %s%s", icon, msg, strings.Repeat(".", s.DotCount))), s)
	}

	status := "Ready"
	if s.StatusMessage != "" {
		status = strings.TrimSpace(fmt.Sprintf("%s %s", icon, s.StatusMessage))
	} else if s.StatusPhase != "ready" && s.StatusPhase != "" {
		status = icon
	}

	return withModel(style.Render(status), s)
}

func withModel(left string, s models.State) string {
	if s.CurrentModel == "" {
		return left
	}
	return fmt.Sprintf("%s  %s", left, StatusDefaultStyle.Render(s.CurrentModel))
}
