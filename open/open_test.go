package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a platform", t, func() {
		Convey("Linux uses xdg-open", func() {
			cmd, ok := command("linux", "/tmp/reelplay")
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", "/tmp/reelplay"})
		})

		Convey("macOS uses open", func() {
			cmd, ok := command("darwin", "/tmp/reelplay")
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{"open", "/tmp/reelplay"})
		})

		Convey("Unknown platforms are unsupported", func() {
			_, ok := command("plan9", "/tmp/reelplay")
			So(ok, ShouldBeFalse)
		})
	})
}
