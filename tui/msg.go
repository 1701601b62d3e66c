package tui

import "github.com/reelplay/reelplay/transport"

// engineEventMsg carries one notification of the current engine into Update.
type engineEventMsg transport.Event

// engineClosedMsg means the session was closed and no more events follow.
type engineClosedMsg struct{}

// configReloadMsg is sent after the config file changed on disk.
type configReloadMsg struct{}
