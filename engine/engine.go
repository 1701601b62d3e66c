// Package engine defines the contract between reelplay and an external media engine.
//
// The engine owns decoding, rendering and timing. reelplay only issues transport
// commands and observes the notifications the engine emits in response.
package engine

import (
	"errors"
	"time"
)

// ErrClosed is returned by commands issued to an engine that has already been closed.
var ErrClosed = errors.New("engine closed")

// Engine is a single media engine instance. An instance plays at most one source:
// Prepare is called once, then transport commands until Close.
//
// Commands are fire-and-forget. Their effect is reported asynchronously through
// Notifications; a nil error only means the command was delivered.
type Engine interface {
	// Prepare asks the engine to open locator. Readiness or failure arrives as Ready or Error.
	Prepare(locator string) error

	Play() error
	Pause() error

	// Stop halts playback and rewinds to the start.
	Stop() error

	// Seek moves playback to an absolute offset.
	Seek(offset time.Duration) error

	// SetVolume sets the output volume as a fraction in [0,1].
	SetVolume(fraction float64) error

	// Notifications returns the channel notifications are delivered on.
	// It is closed once the engine has been closed.
	Notifications() <-chan Notification

	// Close stops playback and releases the underlying process or handle.
	Close() error
}

// Factory creates a fresh, started Engine instance.
type Factory func() (Engine, error)
