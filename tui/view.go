package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/reelplay/reelplay/color"
	"github.com/reelplay/reelplay/constant"
	"github.com/reelplay/reelplay/icon"
	"github.com/reelplay/reelplay/key"
	"github.com/reelplay/reelplay/reflector"
	"github.com/reelplay/reelplay/style"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

// Position of the progress bar on screen: top padding plus the lines above it in viewPlayer.
const (
	sliderRow    = 1 + 4
	sliderColumn = 2
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case playerState:
		output = b.viewPlayer()
	case fileState:
		output = b.viewPicker("Open File", b.filePickerC.View())
	case folderState:
		output = b.viewPicker("Open Folder", b.folderPickerC.View())
	case folderFilesState:
		output = listExtraPaddingStyle.Render(b.folderFilesC.View())
	case urlState:
		output = b.viewURL()
	case historyState:
		output = listExtraPaddingStyle.Render(b.historyC.View())
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func stateIcon(s reflector.State) string {
	switch s {
	case reflector.Playing:
		return style.Fg(color.Playing)(icon.Get(icon.Play))
	case reflector.Paused:
		return style.Fg(color.Paused)(icon.Get(icon.Pause))
	case reflector.Stopped:
		return style.Fg(color.Stopped)(icon.Get(icon.Stop))
	case reflector.Errored:
		return style.Fg(color.Red)(icon.Get(icon.Fail))
	default:
		return ""
	}
}

func (b *statefulBubble) viewPlayer() string {
	r := b.session.Reflector()

	status := r.Status()
	if r.State() == reflector.Loading {
		status = b.spinnerC.View() + " " + status
	} else if i := stateIcon(r.State()); i != "" {
		status = i + " " + status
	}

	timecodes := fmt.Sprintf("%s / %s", r.CurrentLabel(), r.TotalLabel())
	if r.State().Loaded() && !r.Seekable() {
		timecodes = r.CurrentLabel() + " " + style.Faint("(live)")
	}

	volume := fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), int(b.session.Volume()*100+0.5))

	// keep in sync with sliderRow
	lines := []string{
		style.Title(constant.App),
		"",
		style.Truncate(b.width)(status),
		"",
		b.progressC.ViewAs(r.Fraction()),
		timecodes + "  " + style.Faint(volume),
	}

	return b.renderLines(viper.GetBool(key.TUIShowHelp), lines)
}

func (b *statefulBubble) viewPicker(title, body string) string {
	return b.renderLines(true, []string{
		style.Title(title),
		"",
		body,
	})
}

func (b *statefulBubble) viewURL() string {
	return b.renderLines(true, []string{
		style.Title("Open URL"),
		"",
		icon.Get(icon.Link) + " " + b.urlInputC.View(),
	})
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)

	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	l := strings.Join(lines, "\n")
	if addHelp {
		h := lipgloss.Height(l)
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
