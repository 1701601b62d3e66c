package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts listening for engine and config events and loads the startup source, if any.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(
		b.openStartup(),
		b.waitForEvent(),
		b.waitForConfig(),
		b.spinnerC.Tick,
	)
}
