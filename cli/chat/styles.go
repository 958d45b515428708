package chat

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	minTextareaHeight    = 3
	defaultTextareaWidth = 80
	minViewportHeight    = 1
	inputBorderHeight    = 2
	headerHeight         = 2
	sidebarWidth         = 24
)

// Color palette
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#06B6D4") // Cyan
	successColor   = lipgloss.Color("#10B981") // Green
	errorColor     = lipgloss.Color("#EF4444") // Red
	textColor      = lipgloss.Color("#F9FAFB") // Light gray
	dimTextColor   = lipgloss.Color("#9CA3AF") // Dim gray
	borderColor    = lipgloss.Color("#4B5563")
)

var (
	titleStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(textColor).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	userMessageStyle = lipgloss.NewStyle().
				Inherit(messageStyle).
				BorderForeground(primaryColor).
				MarginLeft(10)

	assistantMessageStyle = lipgloss.NewStyle().
				Inherit(messageStyle).
				BorderForeground(secondaryColor).
				MarginRight(10)

	attachmentStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Italic(true)

	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(borderColor)

	sidebarActiveStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	sidebarInactiveStyle = lipgloss.NewStyle().
				Foreground(dimTextColor)

	textAreaStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimTextColor).
			Italic(true)
)
