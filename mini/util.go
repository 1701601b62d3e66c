package mini

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/reelplay/reelplay/color"
	"github.com/reelplay/reelplay/icon"
	"github.com/reelplay/reelplay/style"
	"github.com/reelplay/reelplay/util"
	"github.com/samber/lo"
)

// bind is a fixed menu entry next to the listed items.
type bind struct {
	name string
}

func (b *bind) String() string {
	return b.name
}

var (
	openFile   = &bind{"Open file"}
	openFolder = &bind{"Open folder"}
	openURL    = &bind{"Open URL"}
	recent     = &bind{"History"}
	playPause  = &bind{"Play / Pause"}
	stop       = &bind{"Stop"}
	seek       = &bind{"Seek"}
	volume     = &bind{"Volume"}
	refresh    = &bind{"Refresh"}
	openOther  = &bind{"Open another"}
	back       = &bind{"Back"}
	quit       = &bind{"Quit"}
)

func title(t string) {
	fmt.Println(style.Title(t))
}

func fail(t string) {
	fmt.Println(style.Fg(color.Red)(icon.Get(icon.Fail) + " " + t))
}

func progress(msg string) (eraser func()) {
	return util.PrintErasable(icon.Get(icon.Progress) + " " + msg)
}

// menu lets the user pick one of items or binds. Exactly one of the returned bind and item is set.
// An interrupt picks quit.
func menu[T fmt.Stringer](items []T, binds ...*bind) (*bind, T, error) {
	var zero T

	options := lo.Map(items, func(item T, _ int) string {
		return style.Truncate(truncateAt)(item.String())
	})
	options = append(options, lo.Map(binds, func(b *bind, _ int) string {
		return style.Faint(b.String())
	})...)

	var index int
	err := survey.AskOne(&survey.Select{
		Message:  ">",
		Options:  options,
		PageSize: lo.Clamp(len(options), 1, 15),
	}, &index, survey.WithFilter(func(filter, value string, _ int) bool {
		return fuzzy.MatchFold(filter, value)
	}))

	if errors.Is(err, terminal.InterruptErr) {
		return quit, zero, nil
	}
	if err != nil {
		return nil, zero, err
	}

	if index < len(items) {
		return nil, items[index], nil
	}
	return binds[index-len(items)], zero, nil
}

// input asks for a line satisfying validate. Blank input backs out.
func input(message string, validate func(string) bool) (string, bool, error) {
	var value string
	err := survey.AskOne(&survey.Input{Message: message}, &value, survey.WithValidator(func(ans interface{}) error {
		s := strings.TrimSpace(ans.(string))
		if s == "" || validate(s) {
			return nil
		}
		return errors.New("invalid input")
	}))

	if errors.Is(err, terminal.InterruptErr) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	value = strings.TrimSpace(value)
	return value, value != "", nil
}
