package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/reelplay/reelplay/engine"
	"github.com/reelplay/reelplay/log"
)

var errEngineExited = errors.New("mpv exited")

// observed lists the properties watched on the persistent connection.
// mpv scopes observe_property to the connection that issued it.
var observed = []string{"time-pos", "duration", "pause", "eof-reached"}

// translator maps raw mpv events onto engine notifications.
type translator struct {
	loaded bool

	// known is the duration last reported through Ready.
	known time.Duration

	// stopping reports whether a Stop is in effect, so the pause it causes is not reported as Paused.
	stopping func() bool

	// duration queries the duration of the loaded file; zero when unknown.
	duration func() time.Duration

	// atEOF is called when playback ran off the end of the file.
	atEOF func()
}

func (t *translator) translate(msg ipcMessage) []engine.Notification {
	switch msg.Event {
	case "file-loaded":
		t.loaded = true
		t.known = t.duration()
		return []engine.Notification{engine.Ready{Duration: t.known}}
	case "end-file":
		wasLoaded := t.loaded
		t.loaded = false

		switch msg.Reason {
		case "error":
			message := msg.FileError
			if message == "" {
				message = "playback failed"
			}
			return []engine.Notification{engine.Error{Message: message}}
		case "eof":
			if wasLoaded {
				return []engine.Notification{engine.Stopped{}}
			}
		}
	case "property-change":
		if !t.loaded {
			return nil
		}

		switch msg.Name {
		case "time-pos":
			if pos, ok := msg.Data.(float64); ok {
				return []engine.Notification{engine.PositionChanged{Offset: seconds(pos)}}
			}
		case "duration":
			// streams often learn their length after file-loaded
			d, ok := msg.Data.(float64)
			if !ok || d <= 0 || seconds(d) == t.known {
				return nil
			}
			t.known = seconds(d)
			return []engine.Notification{engine.Ready{Duration: t.known}}
		case "pause":
			paused, ok := msg.Data.(bool)
			if !ok {
				return nil
			}
			if !paused {
				return []engine.Notification{engine.Playing{}}
			}
			if !t.stopping() {
				return []engine.Notification{engine.Paused{}}
			}
		case "eof-reached":
			if eof, ok := msg.Data.(bool); ok && eof {
				t.atEOF()
				return []engine.Notification{engine.Stopped{}}
			}
		}
	}

	return nil
}

// listener keeps a persistent IPC connection open and turns its event stream into notifications.
type listener struct {
	conn       net.Conn
	translator *translator
	emit       func(engine.Notification)
	done       chan struct{}
	closing    atomic.Bool
}

// listen dials the socket, registers the property observers and starts the read loop.
func listen(socketPath string, tr *translator, emit func(engine.Notification)) (*listener, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		if err := writeCommand(conn, requestIDs.Add(1), []interface{}{"observe_property", i + 1, name}); err != nil {
			conn.Close()
			return nil, fmt.Errorf("observe %s: %w", name, err)
		}
	}

	l := &listener{
		conn:       conn,
		translator: tr,
		emit:       emit,
		done:       make(chan struct{}),
	}
	go l.readLoop()

	log.WithField("socket", socketPath).Debugf("mpv event listener started, observing %v", observed)
	return l, nil
}

func (l *listener) readLoop() {
	defer close(l.done)

	reader := bufio.NewReader(l.conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if l.closing.Load() {
				return
			}
			if !errors.Is(err, io.EOF) {
				log.Warnf("mpv event listener read error: %v", err)
			}
			l.emit(engine.Error{Message: errEngineExited.Error()})
			return
		}

		var msg ipcMessage
		if err := json.Unmarshal(line, &msg); err != nil || msg.Event == "" {
			continue
		}

		for _, n := range l.translator.translate(msg) {
			l.emit(n)
		}
	}
}

// close terminates the read loop and waits for it to exit.
func (l *listener) close() {
	l.closing.Store(true)
	_ = l.conn.Close()
	<-l.done
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
