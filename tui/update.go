package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/reelplay/reelplay/history"
	"github.com/reelplay/reelplay/internal/ui"
	"github.com/reelplay/reelplay/picker"
	"github.com/reelplay/reelplay/query"
	"github.com/reelplay/reelplay/transport"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case engineEventMsg:
		return b, tea.Batch(cmd, b.applyEvent(transport.Event(msg)), b.waitForEvent())
	case engineClosedMsg:
		return b, cmd
	case configReloadMsg:
		b.reloadConfig()
		return b, tea.Batch(cmd, b.waitForConfig(), ui.Notify("Configuration reloaded"))
	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		b.spinnerC, spinnerCmd = b.spinnerC.Update(msg)
		return b, tea.Batch(cmd, spinnerCmd)
	case error:
		b.raiseError(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)

		// the pickers size themselves from this message
		var fileCmd, folderCmd tea.Cmd
		b.filePickerC, fileCmd = b.filePickerC.Update(msg)
		b.folderPickerC, folderCmd = b.folderPickerC.Update(msg)
		return b, tea.Batch(cmd, fileCmd, folderCmd)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}

		if bubblesKey.Matches(msg, b.keymap.back) {
			switch b.state {
			case playerState:
				if b.session.Reflector().Dragging() {
					b.session.CancelSeek()
				}
				return b, cmd
			case folderFilesState:
				if b.folderFilesC.FilterState() != list.Unfiltered {
					b.folderFilesC, cmd = b.folderFilesC.Update(msg)
					return b, cmd
				}
			case historyState:
				if b.historyC.FilterState() != list.Unfiltered {
					b.historyC, cmd = b.historyC.Update(msg)
					return b, cmd
				}
			case urlState:
				b.urlInputC.Blur()
			}

			b.previousState()
			return b, cmd
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case playerState:
		stateCmd = b.updatePlayer(msg)
	case fileState:
		stateCmd = b.updateFilePicker(msg)
	case folderState:
		stateCmd = b.updateFolderPicker(msg)
	case folderFilesState:
		stateCmd = b.updateFolderFiles(msg)
	case urlState:
		stateCmd = b.updateURL(msg)
	case historyState:
		stateCmd = b.updateHistory(msg)
	case errorState:
		stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return b.updateSlider(msg)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.playPause):
			return b.command(b.session.TogglePause)
		case bubblesKey.Matches(msg, b.keymap.stop):
			return b.command(b.session.Stop)
		case bubblesKey.Matches(msg, b.keymap.seekBackward):
			return b.seekBy(-1)
		case bubblesKey.Matches(msg, b.keymap.seekForward):
			return b.seekBy(1)
		case bubblesKey.Matches(msg, b.keymap.volumeUp):
			return b.nudgeVolume(volumeStep)
		case bubblesKey.Matches(msg, b.keymap.volumeDown):
			return b.nudgeVolume(-volumeStep)
		case bubblesKey.Matches(msg, b.keymap.openFile):
			b.newState(fileState)
			return b.filePickerC.Init()
		case bubblesKey.Matches(msg, b.keymap.openFolder):
			b.newState(folderState)
			return b.folderPickerC.Init()
		case bubblesKey.Matches(msg, b.keymap.openURL):
			b.newState(urlState)
			return b.urlInputC.Focus()
		case bubblesKey.Matches(msg, b.keymap.openHistory):
			cmd, err := b.loadHistory()
			if err != nil {
				b.raiseError(err)
				return nil
			}
			b.newState(historyState)
			return cmd
		case bubblesKey.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
		}
	}

	return nil
}

// updateSlider turns mouse gestures on the progress bar into a seek.
// Dragging only moves the slider; the seek happens on release.
func (b *statefulBubble) updateSlider(msg tea.MouseMsg) tea.Cmd {
	fraction, onBar := b.sliderFraction(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onBar {
			return nil
		}
		if !b.session.BeginSeek(fraction) {
			return ui.Notify("This media cannot seek")
		}
	case tea.MouseActionMotion:
		if b.session.Reflector().Dragging() {
			b.session.DragSeek(fraction)
		}
	case tea.MouseActionRelease:
		if !b.session.Reflector().Dragging() {
			return nil
		}
		b.session.DragSeek(fraction)
		return b.command(b.session.CommitSeek)
	}

	return nil
}

// sliderFraction maps a terminal cell to a position on the progress bar.
// Columns outside the bar clamp to its ends so a drag can overshoot.
func (b *statefulBubble) sliderFraction(x, y int) (float64, bool) {
	width := b.progressC.Width
	if width <= 0 {
		return 0, false
	}

	fraction := float64(x-sliderColumn) / float64(width-1)
	fraction = min(max(fraction, 0), 1)

	onBar := y == sliderRow && x >= sliderColumn && x < sliderColumn+width
	return fraction, onBar
}

func (b *statefulBubble) updateFilePicker(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	b.filePickerC, cmd = b.filePickerC.Update(msg)

	if ok, path := b.filePickerC.DidSelectFile(msg); ok {
		if source, ok := picker.Accept(path).Get(); ok {
			return tea.Batch(cmd, b.open(source))
		}
	}

	return cmd
}

func (b *statefulBubble) updateFolderPicker(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	b.folderPickerC, cmd = b.folderPickerC.Update(msg)

	if ok, dir := b.folderPickerC.DidSelectFile(msg); ok {
		return tea.Batch(cmd, b.openFolder(dir))
	}

	return cmd
}

func (b *statefulBubble) updateFolderFiles(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && b.folderFilesC.FilterState() != list.Filtering {
		if bubblesKey.Matches(msg, b.keymap.confirm) {
			if item, ok := b.folderFilesC.SelectedItem().(*listItem); ok {
				if source, ok := picker.Accept(item.internal.(string)).Get(); ok {
					return b.open(source)
				}
			}
			return nil
		}
	}

	var cmd tea.Cmd
	b.folderFilesC, cmd = b.folderFilesC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateURL(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.confirm) {
		return b.submitURL()
	}

	var cmd tea.Cmd
	b.urlInputC, cmd = b.urlInputC.Update(msg)
	b.urlInputC.SetSuggestions(query.SuggestMany(b.urlInputC.Value()))
	return cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && b.historyC.FilterState() != list.Filtering {
		item, selected := b.historyC.SelectedItem().(*listItem)

		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm) && selected:
			return b.open(item.internal.(*history.Entry).Source())
		case bubblesKey.Matches(msg, b.keymap.remove) && selected:
			if err := history.Remove(item.internal.(*history.Entry)); err != nil {
				b.raiseError(err)
				return nil
			}
			b.historyC.RemoveItem(b.historyC.Index())
			return ui.Notify("Removed " + item.Title())
		}
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return tea.Quit
	}
	return nil
}
