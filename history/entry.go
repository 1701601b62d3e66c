package history

import (
	"fmt"
	"time"

	"github.com/reelplay/reelplay/reflector"
	"github.com/reelplay/reelplay/transport"
)

// Entry is one played source as preserved on disk.
type Entry struct {
	Locator string `json:"locator" jsonschema:"description=Local path or URL handed to the media engine"`
	Name    string `json:"name" jsonschema:"description=Display name of the source"`

	// Position and Duration are whole seconds.
	Position int `json:"position" jsonschema:"minimum=0,description=Last known playback position in seconds"`
	Duration int `json:"duration" jsonschema:"minimum=0,description=Duration in seconds; 0 for live streams"`

	PlayedAt time.Time `json:"played_at" jsonschema:"description=When the source was last played"`
}

func (e *Entry) encode() string {
	return e.Locator
}

// Source returns the transport source to reload this entry.
func (e *Entry) Source() transport.Source {
	return transport.Source{Locator: e.Locator, Name: e.Name}
}

// Offset returns the remembered position.
func (e *Entry) Offset() time.Duration {
	return time.Duration(e.Position) * time.Second
}

// Progress returns how far the entry was played, in percent. Live streams report 0.
func (e *Entry) Progress() int {
	if e.Duration <= 0 {
		return 0
	}
	return min(100, e.Position*100/e.Duration)
}

func (e *Entry) String() string {
	if e.Duration <= 0 {
		return fmt.Sprintf("%s : %s", e.Name, reflector.FormatTime(e.Offset()))
	}

	return fmt.Sprintf(
		"%s : %s / %s",
		e.Name,
		reflector.FormatTime(e.Offset()),
		reflector.FormatTime(time.Duration(e.Duration)*time.Second),
	)
}
