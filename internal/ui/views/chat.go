package views

import (
	"strings"

	"github.com/Cyclone1070/archpilot/internal/ui/models"
	"github.com/Cyclone1070/archpilot/internal/ui/services"
)

// RenderChat renders the message history
func RenderChat(s models.State) string {
	if len(s.Messages) == 0 {
		return "No messages yet. Describe what to annotate, e.g. \"dimension all rooms on Level 1\"."
	}
	return s.Viewport.View()
}

// FormatChatContent formats the messages for the viewport
func FormatChatContent(messages []models.Message, width int, renderer services.MarkdownRenderer) string {
	var lines []string
	for _, msg := range messages {
		switch msg.Role {
		case "user":
			lines = append(lines, UserMessageStyle.Render("You: "+msg.Content))
		default:
			rendered, err := services.RenderMarkdown(msg.Content, width, renderer)
			if err != nil {
				// Fallback to plain text
				lines = append(lines, AssistantMessageStyle.Render(msg.Content))
			} else {
				lines = append(lines, AssistantMessageStyle.Render(strings.TrimRight(rendered, "\n")))
			}
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
