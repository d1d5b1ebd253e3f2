package views

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("39")
	ColorSuccess = lipgloss.Color("42")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("241")

	UserMessageStyle      = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	AssistantMessageStyle = lipgloss.NewStyle()

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	PermissionBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorWarning).
				Padding(0, 1)

	StatusDefaultStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	StatusThinkingStyle  = lipgloss.NewStyle().Foreground(ColorPrimary)
	StatusExecutingStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	StatusDoneStyle      = lipgloss.NewStyle().Foreground(ColorSuccess)
	StatusErrorStyle     = lipgloss.NewStyle().Foreground(ColorError)
)
