// Package transport owns the single live media engine and the commands issued to it.
package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/reelplay/reelplay/engine"
	"github.com/reelplay/reelplay/log"
	"github.com/reelplay/reelplay/util"
	"github.com/samber/mo"
)

var (
	// ErrNoMedia is returned by transport commands issued while nothing is loaded.
	ErrNoMedia = errors.New("no media loaded")

	// ErrUnseekable is returned by Seek when the duration of the media is unknown.
	ErrUnseekable = errors.New("media is not seekable")

	// ErrLoading is returned by transport commands issued while an engine is still starting.
	ErrLoading = errors.New("media is still loading")

	// ErrClosed is returned by Next once the controller is closed.
	ErrClosed = errors.New("controller closed")
)

const queueSize = 256

// Controller holds at most one engine instance at a time.
// Every instance gets a new generation; notifications of older generations are dropped by Next.
type Controller struct {
	factory engine.Factory
	startMu sync.Mutex

	mu         sync.Mutex
	engine     engine.Engine
	retired    []engine.Engine // detached by Begin, released by the next start
	source     mo.Option[Source]
	generation uint64
	volume     float64
	duration   time.Duration
	ready      bool
	loading    bool
	closed     bool

	queue chan envelope
	done  chan struct{}
}

// New creates a controller spawning engines through factory.
// volume is the initial fraction pushed to the first engine.
func New(factory engine.Factory, volume float64) *Controller {
	return &Controller{
		factory: factory,
		volume:  util.Clamp(volume, 0, 1),
		queue:   make(chan envelope, queueSize),
		done:    make(chan struct{}),
	}
}

// Load replaces the current engine with a fresh one preparing source and returns once it is prepared.
// Failures are not returned; they arrive through Next as a LoadFailure.
func (c *Controller) Load(source Source) {
	c.Begin(source)()
}

// Begin makes source current without waiting for an engine.
// The returned function does the slow part and may run on any goroutine: it releases the
// previous engine, spawns a new one and prepares source. A later Begin or Close discards its result.
func (c *Controller) Begin(source Source) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return func() {}
	}

	if c.engine != nil {
		c.retired = append(c.retired, c.engine)
		c.engine = nil
	}

	c.generation++
	c.source = mo.Some(source)
	c.duration = 0
	c.ready = false
	c.loading = true

	generation := c.generation
	log.WithFields(map[string]any{
		"generation": generation,
		"locator":    source.Locator,
	}).Info("loading media")

	return func() {
		if err := c.start(generation, source); err != nil {
			log.WithField("generation", generation).Warnf("loading %q failed: %v", source.Locator, err)
			c.enqueue(envelope{
				generation:   generation,
				notification: engine.Error{Message: err.Error()},
			})
		}
	}
}

// start runs one load. Starts are serialized so the previous engine is always gone before the next one prepares.
func (c *Controller) start(generation uint64, source Source) error {
	c.startMu.Lock()
	defer c.startMu.Unlock()

	c.mu.Lock()
	retired := c.retired
	c.retired = nil
	c.mu.Unlock()

	for _, old := range retired {
		release(old)
	}

	if c.superseded(generation) {
		return nil
	}

	e, err := c.factory()
	if err != nil {
		c.finish(generation)
		return fmt.Errorf("start engine: %w", err)
	}

	if c.superseded(generation) {
		log.WithField("generation", generation).Debug("discarding unprepared engine")
		_ = e.Close()
		return nil
	}

	volume := c.Volume()
	if err := e.SetVolume(volume); err != nil {
		log.Warnf("setting volume on new engine: %v", err)
	}

	if err := e.Prepare(source.Locator); err != nil {
		_ = e.Close()
		c.finish(generation)
		return err
	}

	c.mu.Lock()
	if c.closed || generation != c.generation {
		c.mu.Unlock()
		log.WithField("generation", generation).Debug("discarding superseded engine")
		release(e)
		return nil
	}

	// the volume may have changed while the engine was starting
	if c.volume != volume {
		if err := e.SetVolume(c.volume); err != nil {
			log.Warnf("setting volume on new engine: %v", err)
		}
	}

	c.engine = e
	c.loading = false
	go c.forward(generation, e)
	c.mu.Unlock()

	return nil
}

// superseded reports whether generation lost its slot to a later load or to Close.
func (c *Controller) superseded(generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed || generation != c.generation
}

// finish ends the loading phase of generation when it is still the current one.
func (c *Controller) finish(generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation == c.generation {
		c.loading = false
	}
}

// release stops and closes an engine that is no longer installed.
func release(e engine.Engine) {
	if err := e.Stop(); err != nil {
		log.Warnf("stopping engine: %v", err)
	}
	if err := e.Close(); err != nil {
		log.Warnf("closing engine: %v", err)
	}
}

// forward copies the notifications of one engine instance into the shared queue until the engine closes its channel.
func (c *Controller) forward(generation uint64, e engine.Engine) {
	for n := range e.Notifications() {
		if !c.enqueue(envelope{generation: generation, notification: n}) {
			return
		}
	}
}

func (c *Controller) enqueue(env envelope) bool {
	select {
	case c.queue <- env:
		return true
	case <-c.done:
		return false
	}
}

// Next blocks until a notification of the current engine is available.
// It must be called from a single goroutine.
func (c *Controller) Next(ctx context.Context) (Event, error) {
	for {
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-c.done:
			return Event{}, ErrClosed
		case env := <-c.queue:
			if event, ok := c.accept(env); ok {
				return event, nil
			}
		}
	}
}

func (c *Controller) accept(env envelope) (Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if env.generation != c.generation {
		log.WithField("generation", env.generation).Debugf("dropping stale %s", env.notification)
		return Event{}, false
	}

	event := Event{
		Notification: env.notification,
		Source:       c.source.OrEmpty(),
	}

	switch n := env.notification.(type) {
	case engine.Ready:
		c.ready = true
		c.duration = max(n.Duration, 0)
	case engine.Error:
		if c.ready {
			event.Failure = PlaybackFailure
		} else {
			event.Failure = LoadFailure
		}
		log.WithField("generation", env.generation).Warnf("engine %s: %s", event.Failure, n.Message)
	}

	return event, true
}

func (c *Controller) current() (engine.Engine, error) {
	if c.engine == nil {
		if c.loading {
			return nil, ErrLoading
		}
		return nil, ErrNoMedia
	}
	return c.engine, nil
}

func (c *Controller) do(name string, command func(engine.Engine) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.current()
	if err != nil {
		return err
	}

	if err := command(e); err != nil {
		log.Errorf("%s: %v", name, err)
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (c *Controller) Play() error {
	return c.do("play", engine.Engine.Play)
}

func (c *Controller) Pause() error {
	return c.do("pause", engine.Engine.Pause)
}

func (c *Controller) Stop() error {
	return c.do("stop", engine.Engine.Stop)
}

// Seek moves playback to fraction of the duration.
func (c *Controller) Seek(fraction float64) error {
	c.mu.Lock()
	duration := c.duration
	c.mu.Unlock()

	if duration <= 0 {
		if c.Source().IsAbsent() {
			return ErrNoMedia
		}
		return ErrUnseekable
	}

	offset := time.Duration(util.Clamp(fraction, 0, 1) * float64(duration))
	return c.do("seek", func(e engine.Engine) error {
		return e.Seek(offset)
	})
}

// SetVolume caches fraction and forwards it to the engine when one exists.
// The cached value is pushed to every engine created afterwards.
func (c *Controller) SetVolume(fraction float64) error {
	fraction = util.Clamp(fraction, 0, 1)

	c.mu.Lock()
	c.volume = fraction
	c.mu.Unlock()

	err := c.do("set volume", func(e engine.Engine) error {
		return e.SetVolume(fraction)
	})
	if errors.Is(err, ErrNoMedia) || errors.Is(err, ErrLoading) {
		return nil
	}
	return err
}

// Volume returns the cached volume fraction.
func (c *Controller) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// Source returns the loaded source, if any.
func (c *Controller) Source() mo.Option[Source] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

// Duration returns the duration reported by the current engine, zero until it is ready.
func (c *Controller) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// Generation returns the generation of the current engine instance.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Close releases the engine. Next returns ErrClosed afterwards.
// An engine still starting is released by its own load once it sees the controller closed.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	engines := c.retired
	if c.engine != nil {
		engines = append(engines, c.engine)
	}
	c.engine = nil
	c.retired = nil
	close(c.done)
	c.mu.Unlock()

	log.WithField("generation", c.Generation()).Debug("releasing engines")
	for _, e := range engines {
		release(e)
	}
	return nil
}
