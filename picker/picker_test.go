package picker

import (
	"path/filepath"
	"testing"

	"github.com/reelplay/reelplay/filesystem"
	"github.com/reelplay/reelplay/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestAccept(t *testing.T) {
	Convey("Accept", t, func() {
		Convey("Rejects blank input", func() {
			So(Accept("").IsAbsent(), ShouldBeTrue)
			So(Accept(" \t ").IsAbsent(), ShouldBeTrue)
		})

		Convey("Keeps anything else for the engine to judge", func() {
			source := Accept("  https://example.com/a/clip.mp4 ").MustGet()
			So(source.Locator, ShouldEqual, "https://example.com/a/clip.mp4")
			So(source.Name, ShouldEqual, "clip.mp4")

			So(Accept("not a real file").IsPresent(), ShouldBeTrue)
		})
	})
}

func TestMediaFiles(t *testing.T) {
	Convey("Given a folder with mixed files", t, func() {
		dir := filepath.Join("/", "media", "movies")
		fs := filesystem.API()
		for _, name := range []string{"b.MKV", "a.mp4", "notes.txt", ".hidden.mp4", "song.mp3"} {
			So(fs.WriteFile(filepath.Join(dir, name), []byte{}, 0o644), ShouldBeNil)
		}
		So(fs.MkdirAll(filepath.Join(dir, "extras.mp4"), 0o755), ShouldBeNil)

		Convey("Only visible media files are listed, sorted", func() {
			viper.Set(key.TUIShowHidden, false)
			files, err := MediaFiles(dir)
			So(err, ShouldBeNil)
			So(files, ShouldResemble, []string{
				filepath.Join(dir, "a.mp4"),
				filepath.Join(dir, "b.MKV"),
				filepath.Join(dir, "song.mp3"),
			})
		})

		Convey("Hidden files show up when enabled", func() {
			viper.Set(key.TUIShowHidden, true)
			defer viper.Set(key.TUIShowHidden, false)

			files, err := MediaFiles(dir)
			So(err, ShouldBeNil)
			So(files, ShouldContain, filepath.Join(dir, ".hidden.mp4"))
		})

		Convey("A missing folder is an error", func() {
			_, err := MediaFiles(filepath.Join(dir, "nope"))
			So(err, ShouldNotBeNil)
		})

		Convey("Completion offers folders and media files", func() {
			suggestions := Complete(filepath.Join(dir, "") + string(filepath.Separator))
			So(suggestions, ShouldContain, filepath.Join(dir, "extras.mp4")+string(filepath.Separator))
			So(suggestions, ShouldContain, filepath.Join(dir, "a.mp4"))
			So(suggestions, ShouldNotContain, filepath.Join(dir, "notes.txt"))

			So(Complete(filepath.Join(dir, "so")), ShouldResemble, []string{filepath.Join(dir, "song.mp3")})
		})

		Convey("Names are fuzzy filtered", func() {
			files, err := MediaFiles(dir)
			So(err, ShouldBeNil)
			So(FilterNames(files, "sng"), ShouldResemble, []string{filepath.Join(dir, "song.mp3")})
			So(FilterNames(files, ""), ShouldResemble, files)
		})
	})

	Convey("IsMedia ignores case", t, func() {
		So(IsMedia("CLIP.MP4"), ShouldBeTrue)
		So(IsMedia("stream.m3u8"), ShouldBeTrue)
		So(IsMedia("readme.md"), ShouldBeFalse)
	})
}
