package tui

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/reelplay/reelplay/config"
	"github.com/reelplay/reelplay/engine"
	"github.com/reelplay/reelplay/history"
	"github.com/reelplay/reelplay/internal/ui"
	"github.com/reelplay/reelplay/key"
	"github.com/reelplay/reelplay/log"
	"github.com/reelplay/reelplay/picker"
	"github.com/reelplay/reelplay/query"
	"github.com/reelplay/reelplay/reflector"
	"github.com/reelplay/reelplay/transport"
	"github.com/reelplay/reelplay/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const volumeStep = 0.05

// waitForEvent blocks in the Bubble Tea command goroutine until the engine has something to say.
func (b *statefulBubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, err := b.session.Next(b.ctx)
		if err != nil {
			return engineClosedMsg{}
		}
		return engineEventMsg(event)
	}
}

func (b *statefulBubble) waitForConfig() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-config.Changes:
			return configReloadMsg{}
		case <-b.ctx.Done():
			return nil
		}
	}
}

// applyEvent reflects an engine notification and resumes remembered positions.
func (b *statefulBubble) applyEvent(event transport.Event) tea.Cmd {
	b.session.Apply(event)

	if fraction, ok := b.resumer.Seek(event).Get(); ok {
		if err := b.session.Seek(fraction); err != nil {
			return ui.Notify(err.Error())
		}
		offset := time.Duration(fraction * float64(b.session.Reflector().Duration()))
		return ui.Notify("Resumed at " + reflector.FormatTime(offset))
	}

	if _, ok := event.Notification.(engine.Error); ok {
		log.Warnf("%s: %s", event.Source.Locator, b.session.Reflector().Status())
	}

	return nil
}

// open remembers the current source and shows the next one as loading.
// The returned command starts the engine off the UI goroutine.
func (b *statefulBubble) open(source transport.Source) tea.Cmd {
	if err := history.Track(b.session.Reflector()); err != nil {
		log.Warnf("saving history: %v", err)
	}

	b.resumer.Expect(source.Locator)
	load := b.session.Start(source)
	b.toPlayer()

	return func() tea.Msg {
		load()
		return nil
	}
}

// openStartup opens the source given on the command line, if any.
func (b *statefulBubble) openStartup() tea.Cmd {
	if source, ok := b.options.Source.Get(); ok {
		return b.open(source)
	}
	return nil
}

// command runs a transport command, turning a failure into a notification.
func (b *statefulBubble) command(f func() error) tea.Cmd {
	if err := f(); err != nil {
		return ui.Notify(err.Error())
	}
	return nil
}

func (b *statefulBubble) seekBy(direction int) tea.Cmd {
	step := util.Clamp(viper.GetInt(key.PlayerSeekStep), 1, 50)
	delta := time.Duration(float64(b.session.Reflector().Duration()) * float64(step*direction) / 100)

	return b.command(func() error {
		return b.session.SeekBy(delta)
	})
}

func (b *statefulBubble) nudgeVolume(delta float64) tea.Cmd {
	return b.command(func() error {
		_, err := b.session.NudgeVolume(delta)
		return err
	})
}

func (b *statefulBubble) loadHistory() (tea.Cmd, error) {
	entries, err := history.Recent()
	if err != nil {
		return nil, err
	}

	items := lo.Map(entries, func(e *history.Entry, _ int) list.Item {
		return &listItem{internal: e}
	})

	return b.historyC.SetItems(items), nil
}

// openFolder lists the media files of dir.
func (b *statefulBubble) openFolder(dir string) tea.Cmd {
	files, err := picker.MediaFiles(dir)
	if err != nil {
		b.raiseError(err)
		return nil
	}

	name := filepath.Base(filepath.Clean(dir))
	b.session.OpenFolder(name)
	b.folderFilesC.Title = "Media Files - " + name

	items := lo.Map(files, func(f string, _ int) list.Item {
		return &listItem{internal: f}
	})

	b.newState(folderFilesState)
	cmd := b.folderFilesC.SetItems(items)
	if len(files) == 0 {
		return tea.Batch(cmd, ui.Notify("No media files in "+name))
	}
	return cmd
}

// submitURL opens what was typed into the URL prompt.
func (b *statefulBubble) submitURL() tea.Cmd {
	source, ok := picker.Accept(b.urlInputC.Value()).Get()
	if !ok {
		return nil
	}

	if err := query.Remember(source.Locator, 1); err != nil {
		log.Warnf("remembering %s: %v", source.Locator, err)
	}

	b.urlInputC.SetValue("")
	b.urlInputC.Blur()
	return b.open(source)
}
