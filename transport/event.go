package transport

import "github.com/reelplay/reelplay/engine"

// Failure classifies an engine error.
type Failure int

const (
	// NoFailure is set on every event that is not an error.
	NoFailure Failure = iota

	// LoadFailure means the engine could not prepare the source.
	LoadFailure

	// PlaybackFailure means the engine failed after the source became ready.
	PlaybackFailure
)

func (f Failure) String() string {
	switch f {
	case LoadFailure:
		return "load failure"
	case PlaybackFailure:
		return "playback failure"
	default:
		return "none"
	}
}

// Event is a notification of the current engine instance, as returned by Controller.Next.
type Event struct {
	Notification engine.Notification

	// Source is the media the notification is about.
	Source Source

	// Failure is set for engine.Error notifications only.
	Failure Failure
}

// envelope tags a notification with the generation of the engine instance that produced it.
type envelope struct {
	generation   uint64
	notification engine.Notification
}
