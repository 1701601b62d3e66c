// Package enginetest provides an in-memory engine.Engine for tests.
package enginetest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/reelplay/reelplay/engine"
)

// Recorder hands out fake engines and keeps one ordered log of every call made to any of them.
// Entries are prefixed with the 1-based instance number, e.g. "2:prepare clip.mp4".
type Recorder struct {
	mu      sync.Mutex
	calls   []string
	engines []*Fake

	// FailCreate makes the factory return an error instead of an engine.
	FailCreate error

	// FailPrepare makes Prepare of newly created engines return this error.
	FailPrepare error

	// Gate, when set, holds every factory call until the channel is closed.
	Gate chan struct{}
}

// Factory returns an engine.Factory creating recorded fakes.
func (r *Recorder) Factory() engine.Factory {
	return func() (engine.Engine, error) {
		r.mu.Lock()
		gate := r.Gate
		r.mu.Unlock()

		if gate != nil {
			<-gate
		}

		r.mu.Lock()
		defer r.mu.Unlock()

		if r.FailCreate != nil {
			return nil, r.FailCreate
		}

		f := &Fake{
			id:            len(r.engines) + 1,
			recorder:      r,
			notifications: make(chan engine.Notification, 64),
			failPrepare:   r.FailPrepare,
		}
		r.engines = append(r.engines, f)
		return f, nil
	}
}

func (r *Recorder) record(id int, call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("%d:%s", id, call))
}

// Calls returns a copy of the call log.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Engines returns every engine created so far, oldest first.
func (r *Recorder) Engines() []*Fake {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Fake(nil), r.engines...)
}

// Last returns the most recently created engine, or nil.
func (r *Recorder) Last() *Fake {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.engines) == 0 {
		return nil
	}
	return r.engines[len(r.engines)-1]
}

// Fake is a scripted engine. Commands are only recorded; tests decide which notifications follow.
type Fake struct {
	id          int
	recorder    *Recorder
	failPrepare error

	mu            sync.Mutex
	closed        bool
	notifications chan engine.Notification

	// FailCommands makes every transport command return this error.
	FailCommands error
}

var errClosedFake = errors.New("fake engine: emit after close")

// ID is the 1-based creation index of the fake.
func (f *Fake) ID() int {
	return f.id
}

// Emit pushes a notification as if the engine produced it.
// Emitting after Close fails instead of panicking on the closed channel.
func (f *Fake) Emit(n engine.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errClosedFake
	}
	f.notifications <- n
	return nil
}

// Closed reports whether Close was called.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Fake) call(name string) error {
	f.recorder.record(f.id, name)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return engine.ErrClosed
	}
	return f.FailCommands
}

func (f *Fake) Prepare(locator string) error {
	if err := f.call("prepare " + locator); err != nil {
		return err
	}
	return f.failPrepare
}

func (f *Fake) Play() error  { return f.call("play") }
func (f *Fake) Pause() error { return f.call("pause") }
func (f *Fake) Stop() error  { return f.call("stop") }

func (f *Fake) Seek(offset time.Duration) error {
	return f.call("seek " + offset.String())
}

func (f *Fake) SetVolume(fraction float64) error {
	return f.call(fmt.Sprintf("volume %.2f", fraction))
}

func (f *Fake) Notifications() <-chan engine.Notification {
	return f.notifications
}

func (f *Fake) Close() error {
	f.recorder.record(f.id, "close")

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	close(f.notifications)
	return nil
}
