package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyai/internal/learning"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	TextDim   = lipgloss.Color("#94A3B8") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(18)

	Value = lipgloss.NewStyle().
		Foreground(Secondary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Degraded = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Bad = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Status renders an invocation status in its state color.
func Status(s learning.Status) string {
	switch s {
	case learning.StatusSuccess:
		return Good.Render(string(s))
	case learning.StatusFallback:
		return Degraded.Render(string(s))
	case learning.StatusFailed:
		return Bad.Render(string(s))
	default:
		return Hint.Render(string(s))
	}
}

// Bool renders yes/no in the good/bad colors.
func Bool(ok bool) string {
	if ok {
		return Good.Render("yes")
	}
	return Bad.Render("no")
}
