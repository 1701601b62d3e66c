package tui

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/reelplay/reelplay/constant"
	"github.com/reelplay/reelplay/history"
	"github.com/reelplay/reelplay/internal/ui"
	"github.com/reelplay/reelplay/key"
	"github.com/reelplay/reelplay/log"
	"github.com/reelplay/reelplay/reflector"
	"github.com/reelplay/reelplay/style"
	"github.com/reelplay/reelplay/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble holds the whole UI: the playback session, the pickers and navigation state.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	session *reflector.Session
	resumer history.Resumer

	// ctx ends the notification wait when the program exits.
	ctx    context.Context
	cancel context.CancelFunc

	// components
	spinnerC      spinner.Model
	progressC     progress.Model
	helpC         help.Model
	filePickerC   filepicker.Model
	folderPickerC filepicker.Model
	folderFilesC  list.Model
	historyC      list.Model
	urlInputC     textinput.Model

	lastError error

	width, height int
	notifier      *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to s, recording the previous state so that back returns to it.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	// Do not push these states to history
	if !lo.Contains([]state{
		errorState,
	}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		s := b.statesHistory.Pop()
		b.setState(s)
	}
}

// toPlayer drops the navigation history and shows the player.
func (b *statefulBubble) toPlayer() {
	b.statesHistory = util.Stack[state]{}
	b.setState(playerState)
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	b.folderFilesC.SetSize(listWidth, listHeight)
	b.folderFilesC.Help.Width = listWidth

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.progressC.Width = max(styledWidth, 10)
	b.urlInputC.Width = styledWidth

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth
}

func (b *statefulBubble) close() {
	b.cancel()

	if err := history.Track(b.session.Reflector()); err != nil {
		log.Warnf("saving history: %v", err)
	}

	if err := b.session.Close(); err != nil {
		log.Warnf("closing session: %v", err)
	}
}

// reloadConfig applies settings that can change while running.
func (b *statefulBubble) reloadConfig() {
	showHidden := viper.GetBool(key.TUIShowHidden)
	b.filePickerC.ShowHidden = showHidden
	b.folderPickerC.ShowHidden = showHidden
	b.urlInputC.ShowSuggestions = viper.GetBool(key.TUIURLSuggestions)
}

func newFilePicker(dirs bool) filepicker.Model {
	fp := filepicker.New()
	fp.CurrentDirectory = lo.Must(os.Getwd())
	fp.ShowHidden = viper.GetBool(key.TUIShowHidden)
	fp.Styles.Selected = fp.Styles.Selected.Foreground(style.AccentColor)
	fp.Styles.Cursor = fp.Styles.Cursor.Foreground(style.AccentColor)

	if dirs {
		fp.DirAllowed = true
		fp.FileAllowed = false
	} else {
		fp.AllowedTypes = constant.MediaExtensions
	}

	return fp
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(session *reflector.Session, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	ctx, cancel := context.WithCancel(context.Background())

	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		session:       session,
		ctx:           ctx,
		cancel:        cancel,
		notifier:      &ui.Model{},
		options:       options,
	}

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowPagination(false)

		return listC
	}

	bubble.helpC = help.New()
	bubble.helpC.ShowAll = false

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	bubble.filePickerC = newFilePicker(false)
	bubble.folderPickerC = newFilePicker(true)

	bubble.urlInputC = textinput.New()
	bubble.urlInputC.Placeholder = "https://example.com/stream.m3u8"
	bubble.urlInputC.Prompt = "URL: "
	bubble.urlInputC.ShowSuggestions = viper.GetBool(key.TUIURLSuggestions)
	bubble.urlInputC.KeyMap.AcceptSuggestion = bubble.keymap.acceptSuggestion

	bubble.folderFilesC = makeList("Media Files", &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Peach).Padding(0, 1),
		),
	})
	bubble.folderFilesC.SetStatusBarItemName("file", "files")

	bubble.historyC = makeList("History", &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Yellow).Padding(0, 1),
		),
	})
	bubble.historyC.SetStatusBarItemName("entry", "entries")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	} else {
		bubble.resize(80, 24)
	}

	return &bubble
}
