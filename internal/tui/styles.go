package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#00ADD8") // Cyan
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red
	SubtleColor    = lipgloss.Color("#626262") // Gray
)

// Common styles
var (
	// Title bar at the top of the dashboard
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	// Device address next to the title
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Channel table container
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2)

	// Table header row
	HeaderStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// Healthy channel value
	ValueStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	// Broken sensor marker
	BrokenStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Relay on / off markers
	OnStyle  = lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	OffStyle = lipgloss.NewStyle().Foreground(SubtleColor)

	// Transient error banner under the table
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(0, 1)

	// Help line and timestamps
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(1, 1, 0, 1)

	// Refresh spinner
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)
