package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette shared by the CLI output and the dashboard
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - online devices
	ErrorColor   = lipgloss.Color("#FF5555") // Red - offline devices, errors
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Shared styles
var (
	// HeaderStyle is for table headers and section titles
	HeaderStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// OnlineStyle renders the online status marker
	OnlineStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	// OfflineStyle renders the offline status marker
	OfflineStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// ErrorStyle renders error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// MutedStyle renders secondary information
	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// GetTerminalWidth returns the current terminal width, clamped to the
// supported range. Falls back to MinTerminalWidth when stdout is not a
// terminal.
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
