// Package reflector mirrors engine notifications into what the user sees:
// a status line, a 0-100 progress slider and two timecode labels.
package reflector

import (
	"fmt"
	"math"
	"time"

	"github.com/reelplay/reelplay/engine"
	"github.com/reelplay/reelplay/transport"
	"github.com/reelplay/reelplay/util"
)

const (
	StatusIdle    = "Ready to play"
	StatusNoMedia = "No media loaded"
)

// Reflector holds display state. Only notifications and Loading change the playback state.
// It is not safe for concurrent use; front-ends drive it from their own event loop.
type Reflector struct {
	state  State
	source transport.Source
	status string

	offset   time.Duration
	duration time.Duration
	slider   int

	dragging bool
	drag     float64
}

func New() *Reflector {
	return &Reflector{
		state:  Idle,
		status: StatusIdle,
	}
}

// Loading resets the display for a freshly requested source.
func (r *Reflector) Loading(source transport.Source) {
	r.state = Loading
	r.source = source
	r.status = "Loading - " + source.Name
	r.offset = 0
	r.duration = 0
	r.slider = 0
	r.dragging = false
}

// NoMedia reports a command issued while nothing is loaded. The state is left alone.
func (r *Reflector) NoMedia() {
	r.status = StatusNoMedia
}

// OpenedFolder reports that a folder was chosen.
func (r *Reflector) OpenedFolder(name string) {
	r.status = "Opened folder: " + name
}

// Apply reflects one engine notification.
func (r *Reflector) Apply(event transport.Event) {
	if event.Source.Name != "" {
		r.source = event.Source
	}

	switch n := event.Notification.(type) {
	case engine.Ready:
		r.duration = max(n.Duration, 0)
		if r.state.Loaded() {
			// a later Ready only corrects the duration
			r.setOffset(r.offset)
			return
		}
		r.state = Ready
		r.setOffset(0)
		r.status = "Ready - " + r.source.Name
	case engine.PositionChanged:
		r.setOffset(n.Offset)
	case engine.Playing:
		r.state = Playing
		r.status = "Playing - " + r.source.Name
	case engine.Paused:
		r.state = Paused
		r.status = "Paused - " + r.source.Name
	case engine.Stopped:
		r.state = Stopped
		r.status = "Stopped - " + r.source.Name
		r.dragging = false
		r.setOffset(0)
	case engine.Error:
		r.state = Errored
		r.dragging = false
		if event.Failure == transport.PlaybackFailure {
			r.status = "Playback error: " + n.Message
		} else {
			r.status = "Load failed: " + n.Message
		}
	}
}

func (r *Reflector) setOffset(offset time.Duration) {
	offset = max(offset, 0)
	if r.duration > 0 {
		offset = min(offset, r.duration)
	}
	r.offset = offset

	if !r.dragging {
		r.slider = r.position()
	}
}

// position is the slider value matching the reported offset.
func (r *Reflector) position() int {
	if r.duration <= 0 {
		return 0
	}
	return int(math.Round(float64(r.offset) / float64(r.duration) * 100))
}

// Seekable reports whether the slider may be dragged. Media of unknown duration cannot seek.
func (r *Reflector) Seekable() bool {
	return r.state.Loaded() && r.duration > 0
}

// BeginDrag starts a user drag at fraction. Position updates stop moving the slider until Release or CancelDrag.
func (r *Reflector) BeginDrag(fraction float64) bool {
	if !r.Seekable() {
		return false
	}
	r.dragging = true
	r.DragTo(fraction)
	return true
}

func (r *Reflector) DragTo(fraction float64) {
	if !r.dragging {
		return
	}
	r.drag = util.Clamp(fraction, 0, 1)
	r.slider = int(math.Round(r.drag * 100))
}

// Release ends the drag and returns the fraction to seek to.
// The slider keeps showing the target until the engine reports a new position.
func (r *Reflector) Release() (float64, bool) {
	if !r.dragging {
		return 0, false
	}
	r.dragging = false
	return r.drag, true
}

// CancelDrag ends the drag without seeking and snaps the slider back to the reported position.
func (r *Reflector) CancelDrag() {
	r.dragging = false
	r.slider = r.position()
}

func (r *Reflector) State() State { return r.state }
func (r *Reflector) Status() string { return r.status }
func (r *Reflector) Source() transport.Source { return r.source }
func (r *Reflector) Slider() int { return r.slider }
func (r *Reflector) Dragging() bool { return r.dragging }
func (r *Reflector) Offset() time.Duration { return r.offset }
func (r *Reflector) Duration() time.Duration { return r.duration }
func (r *Reflector) CurrentLabel() string { return FormatTime(r.offset) }
func (r *Reflector) TotalLabel() string { return FormatTime(r.duration) }

// Fraction is the slider value as a fraction in [0,1].
func (r *Reflector) Fraction() float64 {
	return float64(r.slider) / 100
}

func (r *Reflector) String() string {
	return fmt.Sprintf("%s [%s / %s] %d%%", r.status, r.CurrentLabel(), r.TotalLabel(), r.slider)
}
