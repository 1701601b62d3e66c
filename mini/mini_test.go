package mini

import (
	"testing"

	"github.com/reelplay/reelplay/engine/enginetest"
	"github.com/reelplay/reelplay/reflector"
	"github.com/reelplay/reelplay/transport"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOpen(t *testing.T) {
	Convey("Given a mini front-end whose engine is slow to start", t, func() {
		recorder := &enginetest.Recorder{Gate: make(chan struct{})}
		m := newMini(reflector.NewSession(transport.New(recorder.Factory(), 1)))

		Convey("Opening returns before the engine exists", func() {
			m.open(transport.NewSource("clip.mp4"))
			So(m.status(), ShouldStartWith, "Loading - clip.mp4")
			So(recorder.Calls(), ShouldBeEmpty)

			close(recorder.Gate)
			m.loads.Wait()
			So(recorder.Calls(), ShouldResemble, []string{"1:volume 1.00", "1:prepare clip.mp4"})

			m.close()
			So(recorder.Last().Closed(), ShouldBeTrue)
		})

		Convey("Closing waits for a pending start and leaves no engine behind", func() {
			m.open(transport.NewSource("clip.mp4"))
			go close(recorder.Gate)
			m.close()

			for _, e := range recorder.Engines() {
				So(e.Closed(), ShouldBeTrue)
			}
		})
	})
}
