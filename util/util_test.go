package util

import (
	"testing"

	"github.com/reelplay/reelplay/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestUtil(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "file", "files"), ShouldEqual, "1 file")
		So(Quantify(3, "file", "files"), ShouldEqual, "3 files")
	})

	Convey("Capitalize", t, func() {
		So(Capitalize("history file"), ShouldEqual, "History file")
		So(Capitalize(""), ShouldEqual, "")
	})

	Convey("Clamp", t, func() {
		So(Clamp(1.5, 0.0, 1.0), ShouldEqual, 1.0)
		So(Clamp(-0.5, 0.0, 1.0), ShouldEqual, 0.0)
		So(Clamp(42, 0, 100), ShouldEqual, 42)
	})

	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		So(filesystem.API().WriteFile("/tmp/x/file", []byte("1"), 0o644), ShouldBeNil)

		So(Delete("/tmp/x"), ShouldBeNil)
		exists, _ := filesystem.API().Exists("/tmp/x/file")
		So(exists, ShouldBeFalse)
		So(Delete("/tmp/x"), ShouldNotBeNil)
	})
}

func TestStack(t *testing.T) {
	Convey("Given an empty stack", t, func() {
		s := Stack[int]{}
		So(s.Pop(), ShouldEqual, 0)

		Convey("It pops in reverse push order", func() {
			s.Push(1)
			s.Push(2)
			So(s.Len(), ShouldEqual, 2)
			So(s.Pop(), ShouldEqual, 2)
			So(s.Pop(), ShouldEqual, 1)
			So(s.Len(), ShouldEqual, 0)
		})
	})
}
