package mpv

import (
	"bufio"
	"fmt"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/reelplay/reelplay/engine"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTranslator(t *testing.T) {
	Convey("Given a translator for a fresh mpv instance", t, func() {
		var stopping, eof bool
		tr := &translator{
			stopping: func() bool { return stopping },
			duration: func() time.Duration { return 2 * time.Minute },
			atEOF:    func() { eof = true; stopping = true },
		}

		change := func(name string, data interface{}) ipcMessage {
			return ipcMessage{Event: "property-change", Name: name, Data: data}
		}

		Convey("Property changes before the file is loaded are ignored", func() {
			So(tr.translate(change("pause", true)), ShouldBeEmpty)
			So(tr.translate(change("time-pos", 1.0)), ShouldBeEmpty)
			So(tr.translate(change("duration", 90.0)), ShouldBeEmpty)
		})

		Convey("file-loaded reports Ready with the queried duration", func() {
			So(tr.translate(ipcMessage{Event: "file-loaded"}), ShouldResemble,
				[]engine.Notification{engine.Ready{Duration: 2 * time.Minute}})

			Convey("time-pos becomes PositionChanged", func() {
				So(tr.translate(change("time-pos", 60.5)), ShouldResemble,
					[]engine.Notification{engine.PositionChanged{Offset: 60500 * time.Millisecond}})
			})

			Convey("A duration learned later refreshes Ready once", func() {
				So(tr.translate(change("duration", 120.0)), ShouldBeEmpty)
				So(tr.translate(change("duration", 300.5)), ShouldResemble,
					[]engine.Notification{engine.Ready{Duration: 300500 * time.Millisecond}})
				So(tr.translate(change("duration", 300.5)), ShouldBeEmpty)
				So(tr.translate(change("duration", nil)), ShouldBeEmpty)
			})

			Convey("A nil time-pos is dropped", func() {
				So(tr.translate(change("time-pos", nil)), ShouldBeEmpty)
			})

			Convey("pause toggles map to Playing and Paused", func() {
				So(tr.translate(change("pause", false)), ShouldResemble, []engine.Notification{engine.Playing{}})
				So(tr.translate(change("pause", true)), ShouldResemble, []engine.Notification{engine.Paused{}})
			})

			Convey("A pause caused by Stop is swallowed", func() {
				stopping = true
				So(tr.translate(change("pause", true)), ShouldBeEmpty)
			})

			Convey("Reaching the end reports Stopped", func() {
				So(tr.translate(change("eof-reached", true)), ShouldResemble, []engine.Notification{engine.Stopped{}})
				So(eof, ShouldBeTrue)
				So(tr.translate(change("pause", true)), ShouldBeEmpty)
			})

			Convey("A failing file reports Error with mpv's reason", func() {
				So(tr.translate(ipcMessage{Event: "end-file", Reason: "error", FileError: "unrecognized file format"}), ShouldResemble,
					[]engine.Notification{engine.Error{Message: "unrecognized file format"}})
				So(tr.loaded, ShouldBeFalse)
			})
		})

		Convey("end-file errors without details get a generic message", func() {
			So(tr.translate(ipcMessage{Event: "end-file", Reason: "error"}), ShouldResemble,
				[]engine.Notification{engine.Error{Message: "playback failed"}})
		})

		Convey("Unknown events are ignored", func() {
			So(tr.translate(ipcMessage{Event: "seek"}), ShouldBeEmpty)
		})
	})
}

// scriptedMPV accepts one connection, waits for the observers, writes lines and optionally hangs up.
func scriptedMPV(t *testing.T, lines []string, hangUp bool) string {
	t.Helper()

	socket := filepath.Join(t.TempDir(), "events.sock")
	ln, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		reader := bufio.NewReader(conn)
		for range observed {
			if _, err := reader.ReadBytes('\n'); err != nil {
				conn.Close()
				return
			}
		}
		for _, line := range lines {
			fmt.Fprintln(conn, line)
		}
		if hangUp {
			conn.Close()
			return
		}
		_, _ = reader.ReadBytes('\n')
		conn.Close()
	}()

	return socket
}

type collector struct {
	mu   sync.Mutex
	seen []engine.Notification
}

func (c *collector) emit(n engine.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = append(c.seen, n)
}

func (c *collector) notifications() []engine.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]engine.Notification(nil), c.seen...)
}

func TestListener(t *testing.T) {
	Convey("Given a listener on an mpv socket", t, func() {
		tr := &translator{
			stopping: func() bool { return false },
			duration: func() time.Duration { return time.Minute },
			atEOF:    func() {},
		}
		c := &collector{}

		Convey("Events are translated and a hang up reports the engine gone", func() {
			socket := scriptedMPV(t, []string{
				`{"event":"file-loaded"}`,
				`{"event":"property-change","name":"duration","data":60}`,
				`{"event":"property-change","name":"time-pos","data":1.5}`,
				`{"event":"property-change","name":"duration","data":90.5}`,
			}, true)

			l, err := listen(socket, tr, c.emit)
			So(err, ShouldBeNil)
			<-l.done

			So(c.notifications(), ShouldResemble, []engine.Notification{
				engine.Ready{Duration: time.Minute},
				engine.PositionChanged{Offset: 1500 * time.Millisecond},
				engine.Ready{Duration: 90500 * time.Millisecond},
				engine.Error{Message: "mpv exited"},
			})
		})

		Convey("Closing the listener is silent", func() {
			socket := scriptedMPV(t, nil, false)

			l, err := listen(socket, tr, c.emit)
			So(err, ShouldBeNil)
			l.close()

			So(c.notifications(), ShouldBeEmpty)
		})
	})
}
