// Package ui provides styled terminal output for the wakehub CLI.
//
// It holds the shared lipgloss color palette and renders device and status
// listings as aligned tables. The interactive dashboard lives in the tui
// package; this package covers one-shot command output.
package ui
