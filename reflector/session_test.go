package reflector

import (
	"context"
	"testing"
	"time"

	"github.com/reelplay/reelplay/engine"
	"github.com/reelplay/reelplay/engine/enginetest"
	"github.com/reelplay/reelplay/transport"
	. "github.com/smartystreets/goconvey/convey"
)

// pump applies the next event of the session.
func pump(s *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ev, err := s.Next(ctx)
	So(err, ShouldBeNil)
	s.Apply(ev)
}

func TestSession(t *testing.T) {
	Convey("Given a session over a recording engine", t, func() {
		recorder := &enginetest.Recorder{}
		s := NewSession(transport.New(recorder.Factory(), 1))
		Reset(func() { _ = s.Close() })

		Convey("Gestures without media show no media loaded and never fail", func() {
			So(s.Play(), ShouldBeNil)
			So(s.Pause(), ShouldBeNil)
			So(s.Stop(), ShouldBeNil)
			So(s.Seek(0.5), ShouldBeNil)
			So(s.TogglePause(), ShouldBeNil)
			So(s.BeginSeek(0.5), ShouldBeFalse)
			So(s.CommitSeek(), ShouldBeNil)
			So(s.Reflector().Status(), ShouldEqual, "No media loaded")
			So(s.Reflector().State(), ShouldEqual, Idle)
		})

		Convey("Volume set before loading reaches the engine", func() {
			So(s.SetVolume(0.3), ShouldBeNil)
			s.Open(transport.NewSource("clip.mp4"))
			So(recorder.Calls()[0], ShouldEqual, "1:volume 0.30")
		})

		Convey("Volume nudges are clamped", func() {
			v, err := s.NudgeVolume(0.2)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 1.0)

			v, err = s.NudgeVolume(-0.25)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0.75)
			So(s.Volume(), ShouldEqual, 0.75)
		})

		Convey("Playing clip.mp4 end to end", func() {
			s.Open(transport.NewSource("clip.mp4"))
			fake := recorder.Last()

			So(fake.Emit(engine.Ready{Duration: 120 * time.Second}), ShouldBeNil)
			pump(s)

			So(s.Play(), ShouldBeNil)
			So(s.Reflector().Status(), ShouldEqual, "Ready - clip.mp4")

			So(fake.Emit(engine.Playing{}), ShouldBeNil)
			pump(s)
			So(s.Reflector().Status(), ShouldEqual, "Playing - clip.mp4")

			So(fake.Emit(engine.PositionChanged{Offset: 60 * time.Second}), ShouldBeNil)
			pump(s)
			So(s.Reflector().Slider(), ShouldEqual, 50)
			So(s.Reflector().CurrentLabel(), ShouldEqual, "00:01:00")
			So(s.Reflector().TotalLabel(), ShouldEqual, "00:02:00")

			Convey("TogglePause pauses while playing", func() {
				So(s.TogglePause(), ShouldBeNil)
				calls := recorder.Calls()
				So(calls[len(calls)-1], ShouldEqual, "1:pause")
			})

			Convey("SeekBy moves relative to the current position", func() {
				So(s.SeekBy(-90*time.Second), ShouldBeNil)
				So(s.SeekBy(30*time.Second), ShouldBeNil)
				calls := recorder.Calls()
				So(calls[len(calls)-2:], ShouldResemble, []string{"1:seek 0s", "1:seek 1m30s"})
			})

			Convey("A slider drag commits one seek on release", func() {
				So(s.BeginSeek(0.1), ShouldBeTrue)
				s.DragSeek(0.25)
				So(s.CommitSeek(), ShouldBeNil)

				calls := recorder.Calls()
				So(calls[len(calls)-1], ShouldEqual, "1:seek 30s")
				So(s.CommitSeek(), ShouldBeNil)
				So(recorder.Calls(), ShouldHaveLength, len(calls))
			})
		})

		Convey("Seeking to d1/d2 then reporting d1 puts the slider at round(d1/d2*100)", func() {
			pairs := [][2]time.Duration{
				{0, time.Second},
				{time.Second, 3 * time.Second},
				{45 * time.Second, 120 * time.Second},
				{2 * time.Hour, 2 * time.Hour},
				{7 * time.Second, 9 * time.Minute},
			}

			for _, pair := range pairs {
				d1, d2 := pair[0], pair[1]

				s.Open(transport.NewSource("clip.mp4"))
				fake := recorder.Last()
				So(fake.Emit(engine.Ready{Duration: d2}), ShouldBeNil)
				pump(s)

				So(s.Seek(float64(d1)/float64(d2)), ShouldBeNil)
				So(fake.Emit(engine.PositionChanged{Offset: d1}), ShouldBeNil)
				pump(s)

				want := int(float64(d1)/float64(d2)*100 + 0.5)
				So(s.Reflector().Slider(), ShouldEqual, want)
			}
		})

		Convey("Starting shows loading at once and commands wait for the engine", func() {
			recorder.Gate = make(chan struct{})
			load := s.Start(transport.NewSource("clip.mp4"))
			So(s.Reflector().Status(), ShouldEqual, "Loading - clip.mp4")
			So(s.Reflector().State(), ShouldEqual, Loading)

			loaded := make(chan struct{})
			go func() {
				load()
				close(loaded)
			}()

			So(s.Play(), ShouldEqual, transport.ErrLoading)
			So(s.Reflector().Status(), ShouldEqual, "Loading - clip.mp4")

			close(recorder.Gate)
			<-loaded
			So(s.Play(), ShouldBeNil)
		})

		Convey("Events of a replaced source never reach the display", func() {
			s.Open(transport.NewSource("first.mp4"))
			first := recorder.Last()
			So(first.Emit(engine.Ready{Duration: time.Minute}), ShouldBeNil)
			So(first.Emit(engine.Playing{}), ShouldBeNil)

			s.Open(transport.NewSource("second.mp4"))
			So(recorder.Last().Emit(engine.Ready{Duration: 2 * time.Minute}), ShouldBeNil)
			pump(s)

			So(s.Reflector().Status(), ShouldEqual, "Ready - second.mp4")
			So(s.Reflector().TotalLabel(), ShouldEqual, "00:02:00")
		})
	})
}
