package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#00ffff")
	colorSuccess = lipgloss.Color("#00ff00")
	colorWarning = lipgloss.Color("#ffaa00")
	colorMuted   = lipgloss.Color("#666666")
	colorBorder  = lipgloss.Color("#3d5a80")
)

type styles struct {
	title   lipgloss.Style
	panel   lipgloss.Style
	label   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	footer  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1),
		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		label: lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(18),
		success: lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
		warning: lipgloss.NewStyle().Bold(true).Foreground(colorWarning),
		footer:  lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
	}
}
