package history

import (
	"github.com/reelplay/reelplay/engine"
	"github.com/reelplay/reelplay/transport"
	"github.com/samber/mo"
)

// Resumer remembers which source should continue where it was left and
// produces the seek for it once that source becomes ready.
type Resumer struct {
	pending string
}

// Expect arms the resumer for locator.
func (r *Resumer) Expect(locator string) {
	r.pending = locator
}

// Forget disarms the resumer.
func (r *Resumer) Forget() {
	r.pending = ""
}

// Seek returns the fraction to seek to when event is the Ready of the expected source.
// It fires at most once per Expect.
func (r *Resumer) Seek(event transport.Event) mo.Option[float64] {
	ready, ok := event.Notification.(engine.Ready)
	if !ok || r.pending == "" {
		return mo.None[float64]()
	}

	if event.Source.Locator != r.pending {
		r.Forget()
		return mo.None[float64]()
	}

	r.Forget()
	return ResumeFraction(event.Source.Locator, ready.Duration)
}
