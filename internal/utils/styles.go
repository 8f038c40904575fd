package utils

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the palette shared by every screen.
const (
	ColourRed      = "#f38ba8"
	ColourPeach    = "#fab387"
	ColourYellow   = "#f9e2af"
	ColourGreen    = "#a6e3a1"
	ColourBlue     = "#89b4fa"
	ColourLavender = "#b4befe"
	ColourText     = "#cdd6f4"
	ColourSubtext  = "#a6adc8"
	ColourOverlay  = "#6c7086"
	ColourSurface  = "#313244"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColourLavender))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColourBlue))

	RuleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColourOverlay))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColourSubtext))

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColourPeach))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColourGreen))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColourYellow))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColourRed))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColourSurface)).
			Padding(1, 2)
)
