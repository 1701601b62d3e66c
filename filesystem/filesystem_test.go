package filesystem

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestListByExtension(t *testing.T) {
	Convey("Given a folder with mixed files", t, func() {
		SetMemMapFs()
		dir := filepath.Join("/", "media")
		So(API().MkdirAll(filepath.Join(dir, "sub.mkv"), 0o755), ShouldBeNil)
		for _, name := range []string{"b.MP4", "a.mkv", "notes.txt", ".hidden.mp3"} {
			So(API().WriteFile(filepath.Join(dir, name), []byte("x"), 0o644), ShouldBeNil)
		}

		exts := []string{".mp4", ".mkv", ".mp3"}

		Convey("Only visible media files are listed, sorted", func() {
			paths, err := ListByExtension(dir, exts, false)
			So(err, ShouldBeNil)
			So(paths, ShouldResemble, []string{
				filepath.Join(dir, "a.mkv"),
				filepath.Join(dir, "b.MP4"),
			})
		})

		Convey("Hidden files are included on request", func() {
			paths, err := ListByExtension(dir, exts, true)
			So(err, ShouldBeNil)
			So(paths, ShouldContain, filepath.Join(dir, ".hidden.mp3"))
		})

		Convey("A missing folder is an error", func() {
			_, err := ListByExtension("/nope", exts, false)
			So(err, ShouldNotBeNil)
		})
	})
}
