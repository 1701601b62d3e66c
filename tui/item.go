package tui

import (
	"fmt"
	"path/filepath"

	"github.com/reelplay/reelplay/history"
	"github.com/reelplay/reelplay/icon"
	"github.com/reelplay/reelplay/style"
)

// listItem implements the list.Item interface for history entries and media files.
type listItem struct {
	internal interface{}
}

func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case *history.Entry:
		return e.Name
	case string:
		return icon.Get(icon.File) + " " + filepath.Base(e)
	default:
		return t.FilterValue()
	}
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case *history.Entry:
		progress := fmt.Sprintf("%d%%", e.Progress())
		if e.Duration <= 0 {
			progress = "live"
		}
		return fmt.Sprintf("%s • %s • %s", e.String(), style.Faint(progress), style.Faint(e.Locator))
	case string:
		return style.Faint(filepath.Dir(e))
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *history.Entry:
		return e.Name + " " + e.Locator
	case string:
		return filepath.Base(e)
	default:
		return ""
	}
}
