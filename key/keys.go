// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Playback - these keys configure the mpv engine and the transport controller.
const (
	PlayerBinary        = "player.binary"
	PlayerExtraArgs     = "player.extra_args"
	PlayerVolume        = "player.volume"
	PlayerSeekStep      = "player.seek_step"
	PlayerSocketTimeout = "player.socket_timeout"
)

// History Tracking - these keys configure the persistence of recently played sources.
const (
	HistorySave   = "history.save"
	HistoryResume = "history.resume"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's behavior.
const (
	TUIShowHelp       = "tui.show_help"
	TUIShowHidden     = "tui.show_hidden"
	TUIURLSuggestions = "tui.url_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
