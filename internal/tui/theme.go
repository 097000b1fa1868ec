package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles used by the view.
type Theme struct {
	Title       lipgloss.Style
	Cursor      lipgloss.Style
	Box         lipgloss.Style
	Pending     lipgloss.Style
	Done        lipgloss.Style
	Placeholder lipgloss.Style
	Counter     lipgloss.Style
	Help        lipgloss.Style
	Error       lipgloss.Style
	Prompt      lipgloss.Style
}

// DefaultTheme uses adaptive colors so it reads on light and dark
// terminals.
var DefaultTheme = Theme{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#1f4e8c", Dark: "#7aa2f7"}).
		MarginBottom(1),
	Cursor: lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#1f4e8c", Dark: "#7aa2f7"}).
		Bold(true),
	Box: lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#9ece6a"}),
	Pending: lipgloss.NewStyle(),
	Done: lipgloss.NewStyle().
		Strikethrough(true).
		Faint(true),
	Placeholder: lipgloss.NewStyle().
		Faint(true).
		Italic(true).
		PaddingLeft(2),
	Counter: lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}).
		MarginTop(1),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#666666"}),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#f7768e"}),
	Prompt: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#f7768e"}),
}

func (t Theme) renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return t.Help.Render(strings.Join(parts, " • "))
}
