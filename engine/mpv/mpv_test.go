package mpv

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reelplay/reelplay/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

// fakeMPV answers every command on a unix socket, preceding each reply with an unrelated event.
func fakeMPV(t *testing.T, reply func(command []interface{}) string) string {
	t.Helper()

	socket := filepath.Join(t.TempDir(), "mpv.sock")
	ln, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				reader := bufio.NewReader(conn)
				for {
					line, err := reader.ReadBytes('\n')
					if err != nil {
						return
					}
					var cmd ipcCommand
					if err := json.Unmarshal(line, &cmd); err != nil {
						return
					}
					fmt.Fprintf(conn, "{\"event\":\"audio-reconfig\"}\n")
					fmt.Fprintf(conn, "{%s,\"request_id\":%d}\n", reply(cmd.Command), cmd.RequestID)
				}
			}(conn)
		}
	}()

	return socket
}

func TestDoSendCommand(t *testing.T) {
	Convey("Given an mpv IPC socket", t, func() {
		socket := fakeMPV(t, func(command []interface{}) string {
			switch command[1] {
			case "duration":
				return `"data":120.5,"error":"success"`
			case "chapter":
				return `"data":null,"error":"property unavailable"`
			default:
				return `"error":"invalid parameter"`
			}
		})

		Convey("Replies are matched past broadcast events", func() {
			data, err := doSendCommand(socket, []interface{}{"get_property", "duration"})
			So(err, ShouldBeNil)
			So(data, ShouldEqual, 120.5)
		})

		Convey("Unavailable properties map to a sentinel", func() {
			_, err := doSendCommand(socket, []interface{}{"get_property", "chapter"})
			So(err, ShouldEqual, errPropertyUnavailable)
		})

		Convey("Other mpv errors are surfaced", func() {
			_, err := doSendCommand(socket, []interface{}{"get_property", "bogus"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "invalid parameter")
		})

		Convey("The engine reads float properties through the same path", func() {
			m := New(Options{})
			m.socketPath = socket
			So(m.duration(), ShouldEqual, 120500*time.Millisecond)
		})
	})

	Convey("A missing socket fails to connect", t, func() {
		_, err := doSendCommand(filepath.Join(t.TempDir(), "absent.sock"), []interface{}{"get_property", "pid"})
		So(err, ShouldNotBeNil)
	})
}

func TestClosedEngine(t *testing.T) {
	Convey("Given a closed engine that never started", t, func() {
		m := New(Options{})
		So(m.Close(), ShouldBeNil)

		Convey("Commands fail with ErrClosed", func() {
			So(m.Play(), ShouldNotBeNil)
			So(m.Seek(time.Second), ShouldNotBeNil)
		})

		Convey("The notification channel is closed", func() {
			_, ok := <-m.Notifications()
			So(ok, ShouldBeFalse)
		})

		Convey("Closing twice is harmless", func() {
			So(m.Close(), ShouldBeNil)
		})
	})
}

func TestSanitizeLocator(t *testing.T) {
	Convey("SanitizeLocator", t, func() {
		Convey("Accepts streaming URLs untouched", func() {
			for _, l := range []string{"https://example.com/live.m3u8", "http://a/b.mp4", "rtsp://cam/stream"} {
				got, err := SanitizeLocator(l)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, l)
			}
		})

		Convey("Turns file URLs and paths into clean paths", func() {
			got, err := SanitizeLocator("file:///home/me/Videos/../clip.mp4")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, filepath.Clean("/home/me/clip.mp4"))

			got, err = SanitizeLocator("  ./clips//a.mkv ")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, filepath.Clean("clips/a.mkv"))
		})

		Convey("Rejects dangerous or empty input", func() {
			for _, l := range []string{"", "   ", "--script=evil.lua", "a\nb", "ftp://host/file.mp4"} {
				_, err := SanitizeLocator(l)
				So(err, ShouldNotBeNil)
			}
		})
	})

	Convey("args keep mpv idle, paused and scriptable", t, func() {
		m := New(Options{ExtraArgs: []string{"--hwdec=auto"}})
		m.socketPath = "/tmp/x.sock"
		args := m.args()
		So(args, ShouldContain, "--input-ipc-server=/tmp/x.sock")
		So(args, ShouldContain, "--pause=yes")
		So(args, ShouldContain, "--hwdec=auto")
		So(args[len(args)-1], ShouldEqual, "--idle=yes")
	})
}

func TestSocketPath(t *testing.T) {
	Convey("Socket paths live directly in the system temp directory", t, func() {
		first, err := newSocketPath()
		So(err, ShouldBeNil)
		second, err := newSocketPath()
		So(err, ShouldBeNil)

		So(filepath.Dir(first), ShouldEqual, filepath.Clean(os.TempDir()))
		So(filepath.Base(first), ShouldStartWith, "reelplay-")
		So(first, ShouldEndWith, ".sock")
		So(first, ShouldNotEqual, second)

		Convey("so no application directory owns them", func() {
			So(filepath.Dir(first), ShouldNotEqual, filepath.Join(os.TempDir(), "reelplay"))
		})
	})
}

func TestOptionsFromConfig(t *testing.T) {
	Convey("Options follow the player settings", t, func() {
		viper.Set(key.PlayerBinary, "/opt/mpv/bin/mpv")
		viper.Set(key.PlayerExtraArgs, []string{"--hwdec=auto"})
		viper.Set(key.PlayerSocketTimeout, 1500)

		options := OptionsFromConfig()
		So(options.Binary, ShouldEqual, "/opt/mpv/bin/mpv")
		So(options.ExtraArgs, ShouldResemble, []string{"--hwdec=auto"})
		So(options.SocketTimeout, ShouldEqual, 1500*time.Millisecond)

		Convey("Zero values fall back to defaults in New", func() {
			viper.Set(key.PlayerBinary, "")
			viper.Set(key.PlayerSocketTimeout, 0)

			m := New(OptionsFromConfig())
			So(m.options.Binary, ShouldEqual, "mpv")
			So(m.options.SocketTimeout, ShouldEqual, 3*time.Second)
		})
	})
}
