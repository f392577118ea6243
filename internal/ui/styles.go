package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for CLI output
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success, checkmarks
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, X marks
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Action markers for reconcile outcome lines
const (
	MarkerCreated   = "✓"
	MarkerUpdated   = "●"
	MarkerDeleted   = "✗"
	MarkerUnchanged = "·"
	FailureMarker   = "✗"
)

// Shared styles for CLI output
var (
	// TitleStyle is for section titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// SuccessStyle is for created/deleted outcome markers
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle is for updated outcome markers and warnings
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle is for failure lines
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// MutedStyle is for unchanged outcomes and secondary info
	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// PromptStyle is for confirmation prompts
	PromptStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// WarningBoxStyle returns the border style for confirmation boxes
func WarningBoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(WarningColor).
		Width(width-2).
		Padding(0, 2)
}
