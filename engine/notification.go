package engine

import (
	"fmt"
	"time"
)

// Notification is an asynchronous event emitted by an Engine.
// The variant set is closed: Ready, PositionChanged, Playing, Paused, Stopped and Error.
type Notification interface {
	notification()
	fmt.Stringer
}

// Ready reports that the source was opened. Duration is zero when unknown (e.g. live streams).
type Ready struct {
	Duration time.Duration
}

// PositionChanged reports the current playback offset.
type PositionChanged struct {
	Offset time.Duration
}

type Playing struct{}

type Paused struct{}

type Stopped struct{}

// Error reports that the engine failed to open or to keep playing the source.
type Error struct {
	Message string
}

func (Ready) notification()           {}
func (PositionChanged) notification() {}
func (Playing) notification()         {}
func (Paused) notification()          {}
func (Stopped) notification()         {}
func (Error) notification()           {}

func (n Ready) String() string           { return fmt.Sprintf("ready(%s)", n.Duration) }
func (n PositionChanged) String() string { return fmt.Sprintf("position(%s)", n.Offset) }
func (Playing) String() string           { return "playing" }
func (Paused) String() string            { return "paused" }
func (Stopped) String() string           { return "stopped" }
func (n Error) String() string           { return fmt.Sprintf("error(%s)", n.Message) }
