package log

import (
	"testing"

	"github.com/reelplay/reelplay/filesystem"
	"github.com/reelplay/reelplay/key"
	"github.com/reelplay/reelplay/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup is a no-op", func() {
			So(Setup(), ShouldBeNil)
			So(enabled, ShouldBeFalse)
		})

		Convey("WithField still returns a usable entry", func() {
			So(func() { WithField("generation", 1).Info("dropped") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		Convey("Setup creates a daily log file", func() {
			So(Setup(), ShouldBeNil)
			entries, err := filesystem.API().ReadDir(where.Logs())
			So(err, ShouldBeNil)
			So(len(entries), ShouldEqual, 1)
		})
	})
}
