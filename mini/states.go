package mini

import (
	"fmt"
	"time"

	"github.com/reelplay/reelplay/history"
	"github.com/reelplay/reelplay/log"
	"github.com/reelplay/reelplay/picker"
	"github.com/reelplay/reelplay/reflector"
	"github.com/reelplay/reelplay/style"
	"github.com/reelplay/reelplay/transport"
	"github.com/reelplay/reelplay/util"
)

type state int

const (
	sourceSelectState state = iota + 1
	historySelectState
	playState
	quitState
)

// open remembers the current source and starts loading the next one in the background.
func (m *mini) open(source transport.Source) {
	var load func()
	_ = m.with(func(s *reflector.Session) error {
		if err := history.Track(s.Reflector()); err != nil {
			log.Warnf("saving history: %v", err)
		}

		m.resumer.Expect(source.Locator)
		load = s.Start(source)
		return nil
	})

	m.loads.Add(1)
	go func() {
		defer m.loads.Done()
		load()
	}()
}

func (m *mini) status() string {
	var line string
	_ = m.with(func(s *reflector.Session) error {
		r := s.Reflector()
		line = fmt.Sprintf(
			"%s  %s / %s  %s",
			r.Status(),
			r.CurrentLabel(),
			r.TotalLabel(),
			style.Faint(fmt.Sprintf("vol %d%%", int(s.Volume()*100+0.5))),
		)
		return nil
	})
	return line
}

func (m *mini) handleSourceSelectState() error {
	title("Open Media")
	b, _, err := menu([]fmt.Stringer{}, openFile, openFolder, openURL, recent, quit)
	if err != nil {
		return err
	}

	var chooser picker.Chooser

	switch b {
	case openFile:
		chooser = picker.FilePrompt{}
	case openFolder:
		chooser = picker.FolderPrompt{Opened: func(name string) {
			_ = m.with(func(s *reflector.Session) error {
				s.OpenFolder(name)
				return nil
			})
			fmt.Println(style.Faint("Opened folder: " + name))
		}}
	case openURL:
		chooser = picker.URLPrompt{}
	case recent:
		m.newState(historySelectState)
		return nil
	case quit:
		m.newState(quitState)
		return nil
	}

	source, err := chooser.Choose()
	if err != nil {
		fail(err.Error())
		return nil
	}

	if s, ok := source.Get(); ok {
		m.open(s)
		m.newState(playState)
	}

	return nil
}

func (m *mini) handleHistorySelectState() error {
	entries, err := history.Recent()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fail("History is empty")
		m.setState(sourceSelectState)
		return nil
	}

	title("History >>")
	b, entry, err := menu(entries, back, quit)
	if err != nil {
		return err
	}

	switch b {
	case back:
		m.previousState()
		return nil
	case quit:
		m.newState(quitState)
		return nil
	}

	m.open(entry.Source())
	m.newState(playState)
	return nil
}

func (m *mini) handlePlayState() error {
	util.ClearScreen()
	title("Now Playing")
	fmt.Println(m.status())

	b, _, err := menu([]fmt.Stringer{}, playPause, stop, seek, volume, refresh, openOther, quit)
	if err != nil {
		return err
	}

	switch b {
	case playPause:
		err = m.with((*reflector.Session).TogglePause)
	case stop:
		err = m.with((*reflector.Session).Stop)
	case seek:
		err = m.seek()
	case volume:
		err = m.volume()
	case refresh:
	case openOther:
		m.newState(sourceSelectState)
	case quit:
		m.newState(quitState)
	}

	if err != nil {
		fail(err.Error())
	}

	return nil
}

func (m *mini) seek() error {
	var (
		seekable bool
		duration time.Duration
	)
	_ = m.with(func(s *reflector.Session) error {
		seekable = s.Reflector().Seekable()
		duration = s.Reflector().Duration()
		return nil
	})

	if !seekable {
		fail("This media cannot seek")
		return nil
	}

	value, ok, err := input(
		fmt.Sprintf("Seek to (e.g. 50%%, 1:30) of %s:", reflector.FormatTime(duration)),
		func(s string) bool {
			_, ok := parseSeek(s, duration)
			return ok
		},
	)
	if !ok || err != nil {
		return err
	}

	fraction, _ := parseSeek(value, duration)
	return m.with(func(s *reflector.Session) error {
		return s.Seek(fraction)
	})
}

func (m *mini) volume() error {
	value, ok, err := input("Volume (0-100):", func(s string) bool {
		_, ok := parseVolume(s)
		return ok
	})
	if !ok || err != nil {
		return err
	}

	fraction, _ := parseVolume(value)
	return m.with(func(s *reflector.Session) error {
		return s.SetVolume(fraction)
	})
}
