package mini

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseSeek(t *testing.T) {
	Convey("Given a two minute source", t, func() {
		duration := 2 * time.Minute

		Convey("Percentages, seconds and timecodes are understood", func() {
			cases := map[string]float64{
				"50%":      0.5,
				" 25 % ":   0.25,
				"30":       0.25,
				"1:30":     0.75,
				"00:02:00": 1,
				"0":        0,
			}

			for in, want := range cases {
				got, ok := parseSeek(in, duration)
				So(ok, ShouldBeTrue)
				So(got, ShouldAlmostEqual, want)
			}
		})

		Convey("Garbage and out of range positions are refused", func() {
			for _, in := range []string{"", "abc", "101%", "-5", "3:00", "1:2:3:4", "1:-1"} {
				_, ok := parseSeek(in, duration)
				So(ok, ShouldBeFalse)
			}
		})

		Convey("Unknown durations cannot seek", func() {
			_, ok := parseSeek("50%", 0)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestParseVolume(t *testing.T) {
	Convey("parseVolume", t, func() {
		v, ok := parseVolume("30")
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, 0.3)

		v, ok = parseVolume("100%")
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, 1.0)

		_, ok = parseVolume("150")
		So(ok, ShouldBeFalse)
		_, ok = parseVolume("loud")
		So(ok, ShouldBeFalse)
	})
}
