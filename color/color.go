// Package color provides the ANSI and hex colors used across CLI output and the TUI.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Standard ANSI 8-color palette.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")
)

// High-intensity ANSI palette extension.
var (
	HiRed    = New("9")
	HiYellow = New("11")
	HiBlue   = New("12")
	HiPurple = New("13")
	HiCyan   = New("14")
)

// Transport colors, matching the play/pause/stop buttons of the classic layout.
var (
	Playing = New("#4CAF50")
	Paused  = New("#FF9800")
	Stopped = New("#f44336")
	Orange  = New("#ffb703")
	Gray    = New("#808080")
)
