package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorDanger  = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#9CA3AF") // Light gray
	ColorBlue    = lipgloss.Color("#3B82F6") // Blue
)

// Text styles
var (
	Muted   = lipgloss.NewStyle().Foreground(ColorMuted)
	Success = lipgloss.NewStyle().Foreground(ColorSuccess)
	Danger  = lipgloss.NewStyle().Foreground(ColorDanger)
)

// URL style for endpoints
var URL = lipgloss.NewStyle().Foreground(ColorBlue).Underline(true)

// Header style for section headers
var Header = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true)

// RenderError formats an error for the terminal.
func RenderError(err error) string {
	return Danger.Bold(true).Render("Error:") + " " + err.Error()
}

// RenderEndpoint formats a labelled URL line, e.g. for the serve banner.
func RenderEndpoint(label, url string) string {
	return fmt.Sprintf("  %s %s", Muted.Render(fmt.Sprintf("%-11s", label+":")), URL.Render(url))
}
