// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/reelplay/reelplay/reflector"
	"github.com/reelplay/reelplay/transport"
	"github.com/samber/mo"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Continue opens the history list first.
	Continue bool

	// Source is loaded on startup when present.
	Source mo.Option[transport.Source]
}

// Run executes the Bubble Tea program until the user quits. The session is closed on return.
func Run(session *reflector.Session, options *Options) error {
	bubble := newBubble(session, options)
	defer bubble.close()

	if options.Continue {
		if _, err := bubble.loadHistory(); err != nil {
			return err
		}
		bubble.newState(historyState)
	}

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
