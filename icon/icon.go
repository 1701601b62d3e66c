// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/reelplay/reelplay/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a UI symbol.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Play
	Pause
	Stop
	Volume
	File
	Folder
	Link
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Fail:     {emoji: "💀", nerd: "", plain: "X", kaomoji: "(×﹏×)", squares: "🟥"},
	Success:  {emoji: "🎉", nerd: "", plain: "✓", kaomoji: "(ᵔ◡ᵔ)", squares: "🟩"},
	Progress: {emoji: "⌛", nerd: "", plain: "~", kaomoji: "(・_・)ノ", squares: "🟦"},
	Play:     {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(>ω<)", squares: "🟩"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "(-_-)", squares: "🟨"},
	Stop:     {emoji: "⏹️", nerd: "", plain: "[]", kaomoji: "(._.)", squares: "🟥"},
	Volume:   {emoji: "🔊", nerd: "", plain: "Vol", kaomoji: "(°o°)", squares: "🟪"},
	File:     {emoji: "📂", nerd: "", plain: "F", kaomoji: "φ(．．)", squares: "🟫"},
	Folder:   {emoji: "📁", nerd: "", plain: "D", kaomoji: "(⌐■_■)", squares: "🟫"},
	Link:     {emoji: "🌐", nerd: "", plain: "@", kaomoji: "(ง •̀_•́)ง", squares: "🟦"},
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for the icon under the configured variant.
func Get(i Icon) string {
	return icons[i].Get()
}
