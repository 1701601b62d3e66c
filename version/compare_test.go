package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Given two versions", t, func() {
		for _, tc := range []struct {
			a, b string
			want int
		}{
			{"0.3.1", "0.3.1", 0},
			{"v0.4.0", "0.3.9", 1},
			{"1.0.0", "1.0.1", -1},
			{"2.0.0", "1.9.9", 1},
		} {
			got, err := Compare(tc.a, tc.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, tc.want)
		}

		Convey("Garbage is an error", func() {
			_, err := Compare("latest", "0.3.1")
			So(err, ShouldNotBeNil)
		})
	})
}
