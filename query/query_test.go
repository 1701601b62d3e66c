package query

import (
	"testing"

	"github.com/reelplay/reelplay/filesystem"
	"github.com/reelplay/reelplay/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.TUIURLSuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given remembered URLs", t, func() {
		low := "https://example.com/live/low.m3u8"
		high := "https://example.com/live/high.m3u8"

		So(Remember(low, 1), ShouldBeNil)
		So(Remember(high, 10), ShouldBeNil)

		Convey("Suggestions are ordered by rank", func() {
			s := SuggestMany("example.com/live")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, high)
		})

		Convey("Matching ignores case", func() {
			So(Suggest("EXAMPLE.com/live/LOW").OrEmpty(), ShouldEqual, low)
		})

		Convey("Remembering again bumps the rank", func() {
			So(Remember(low, 100), ShouldBeNil)
			So(Suggest("m3u8").OrEmpty(), ShouldEqual, low)
		})

		Convey("An exact match is not suggested back", func() {
			So(SuggestMany(high), ShouldNotContain, high)
		})

		Convey("Nothing is suggested when disabled", func() {
			viper.Set(key.TUIURLSuggestions, false)
			defer viper.Set(key.TUIURLSuggestions, true)
			So(SuggestMany("example"), ShouldBeEmpty)
		})

		Convey("Blank input is neither stored nor matched", func() {
			So(Remember("   ", 5), ShouldBeNil)
			So(SuggestMany("  "), ShouldBeEmpty)
		})

		Convey("Only surrounding space is trimmed", func() {
			So(sanitize("  HTTPS://A/B  "), ShouldEqual, "HTTPS://A/B")
		})
	})
}
