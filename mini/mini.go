// Package mini implements the prompt based front-end.
package mini

import (
	"context"
	"errors"
	"sync"

	"github.com/reelplay/reelplay/history"
	"github.com/reelplay/reelplay/log"
	"github.com/reelplay/reelplay/reflector"
	"github.com/reelplay/reelplay/transport"
	"github.com/reelplay/reelplay/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var truncateAt = 100

var errQuit = errors.New("quit")

type Options struct {
	// Continue starts from the history menu.
	Continue bool

	// Source is loaded right away when present.
	Source mo.Option[transport.Source]
}

type mini struct {
	state         state
	statesHistory util.Stack[state]

	// mu guards session, which is shared with the notification pump.
	mu      sync.Mutex
	session *reflector.Session
	resumer history.Resumer

	// loads tracks engine starts still running in the background.
	loads sync.WaitGroup
}

func newMini(session *reflector.Session) *mini {
	return &mini{
		statesHistory: util.Stack[state]{},
		session:       session,
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	if !lo.Contains([]state{quitState}, m.state) {
		m.statesHistory.Push(m.state)
	}

	m.setState(s)
}

// with runs f while holding the session.
func (m *mini) with(f func(*reflector.Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return f(m.session)
}

// pump applies engine notifications until ctx is done.
func (m *mini) pump(ctx context.Context) {
	for {
		event, err := m.session.Next(ctx)
		if err != nil {
			return
		}

		_ = m.with(func(s *reflector.Session) error {
			s.Apply(event)

			if fraction, ok := m.resumer.Seek(event).Get(); ok {
				if err := s.Seek(fraction); err != nil {
					log.Warnf("resuming %s: %v", event.Source.Locator, err)
				}
			}
			return nil
		})
	}
}

// Run drives session through prompts until the user quits. The session is closed on return.
func Run(session *reflector.Session, options *Options) error {
	m := newMini(session)
	defer m.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.pump(ctx)

	m.state = sourceSelectState
	if options.Continue {
		m.state = historySelectState
	}

	if source, ok := options.Source.Get(); ok {
		m.open(source)
		m.newState(playState)
	}

	if w, _, err := util.TerminalSize(); err == nil {
		truncateAt = w
	}

	for {
		if err := m.handleState(); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

func (m *mini) close() {
	_ = m.with(func(s *reflector.Session) error {
		if err := history.Track(s.Reflector()); err != nil {
			log.Warnf("saving history: %v", err)
		}
		return s.Close()
	})
	m.loads.Wait()
}

func (m *mini) handleState() error {
	switch m.state {
	case sourceSelectState:
		return m.handleSourceSelectState()
	case historySelectState:
		return m.handleHistorySelectState()
	case playState:
		return m.handlePlayState()
	case quitState:
		return errQuit
	}

	return nil
}
