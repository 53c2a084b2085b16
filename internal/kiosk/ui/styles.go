package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorWarning lipgloss.Color = "#f9e2af"
	colorError   lipgloss.Color = "#f38ba8"
	colorSubtle  lipgloss.Color = "#6c7086"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	noticeStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	scoreStyle   = lipgloss.NewStyle().Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(colorSubtle).Padding(1, 1, 0, 1)
)

// scoreColor grades a 0-100 wellness score.
func scoreColor(v float64) lipgloss.Color {
	switch {
	case v >= 75:
		return colorSuccess
	case v >= 50:
		return colorWarning
	default:
		return colorError
	}
}
