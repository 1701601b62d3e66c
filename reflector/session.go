package reflector

import (
	"context"
	"errors"
	"time"

	"github.com/reelplay/reelplay/log"
	"github.com/reelplay/reelplay/transport"
	"github.com/reelplay/reelplay/util"
)

// Session ties a Reflector to a transport.Controller and turns user gestures into commands.
// Like Reflector, it belongs to a single event loop.
type Session struct {
	controller *transport.Controller
	reflector  *Reflector
}

func NewSession(controller *transport.Controller) *Session {
	return &Session{
		controller: controller,
		reflector:  New(),
	}
}

// Reflector returns the display state of the session.
func (s *Session) Reflector() *Reflector {
	return s.reflector
}

// Open loads source and waits for the engine. The outcome shows up through Next.
func (s *Session) Open(source transport.Source) {
	s.Start(source)()
}

// Start shows source as loading and returns the engine start, to be run off the event loop.
func (s *Session) Start(source transport.Source) func() {
	s.reflector.Loading(source)
	return s.controller.Begin(source)
}

// OpenFolder records that a folder was picked. Loading a file from it is a separate Open.
func (s *Session) OpenFolder(name string) {
	s.reflector.OpenedFolder(name)
}

// handle folds ErrNoMedia into the status line; other errors, ErrLoading included, are returned.
func (s *Session) handle(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, transport.ErrNoMedia):
		s.reflector.NoMedia()
		return nil
	case errors.Is(err, transport.ErrUnseekable):
		log.Debugf("ignoring seek: %v", err)
		return nil
	default:
		return err
	}
}

func (s *Session) Play() error {
	return s.handle(s.controller.Play())
}

func (s *Session) Pause() error {
	return s.handle(s.controller.Pause())
}

func (s *Session) Stop() error {
	return s.handle(s.controller.Stop())
}

// TogglePause pauses while playing and plays otherwise.
func (s *Session) TogglePause() error {
	if s.reflector.State() == Playing {
		return s.Pause()
	}
	return s.Play()
}

func (s *Session) SetVolume(fraction float64) error {
	return s.handle(s.controller.SetVolume(fraction))
}

// NudgeVolume changes the volume by delta and returns the new fraction.
func (s *Session) NudgeVolume(delta float64) (float64, error) {
	volume := util.Clamp(s.controller.Volume()+delta, 0, 1)
	return volume, s.SetVolume(volume)
}

// Volume returns the volume fraction the engine gets.
func (s *Session) Volume() float64 {
	return s.controller.Volume()
}

// BeginSeek starts a slider drag. It reports false when the media cannot seek.
func (s *Session) BeginSeek(fraction float64) bool {
	return s.reflector.BeginDrag(fraction)
}

func (s *Session) DragSeek(fraction float64) {
	s.reflector.DragTo(fraction)
}

// CommitSeek releases the slider and seeks to where it was dropped.
func (s *Session) CommitSeek() error {
	fraction, ok := s.reflector.Release()
	if !ok {
		return nil
	}
	return s.Seek(fraction)
}

func (s *Session) CancelSeek() {
	s.reflector.CancelDrag()
}

// Seek jumps to fraction of the duration.
func (s *Session) Seek(fraction float64) error {
	return s.handle(s.controller.Seek(fraction))
}

// SeekBy jumps relative to the current position.
func (s *Session) SeekBy(delta time.Duration) error {
	duration := s.reflector.Duration()
	if duration <= 0 {
		return s.handle(s.controller.Seek(0))
	}
	return s.Seek(float64(s.reflector.Offset()+delta) / float64(duration))
}

// Next waits for the next notification of the current source.
func (s *Session) Next(ctx context.Context) (transport.Event, error) {
	return s.controller.Next(ctx)
}

// Apply reflects an event returned by Next.
func (s *Session) Apply(event transport.Event) {
	s.reflector.Apply(event)
}

// Close disposes the engine.
func (s *Session) Close() error {
	return s.controller.Close()
}
