// Package mpv implements engine.Engine on top of an mpv process driven through its JSON-IPC socket.
package mpv

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/reelplay/reelplay/constant"
	"github.com/reelplay/reelplay/engine"
	"github.com/reelplay/reelplay/log"
)

const socketPollDelay = 100 * time.Millisecond

// Options configures how mpv processes are spawned.
type Options struct {
	// Binary is the mpv executable name or path.
	Binary string

	// ExtraArgs are appended to the command line before the idle flags.
	ExtraArgs []string

	// SocketTimeout bounds how long Start waits for the IPC socket.
	SocketTimeout time.Duration
}

// MPV is one mpv process. It satisfies engine.Engine.
type MPV struct {
	options    Options
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	listener   *listener

	notifications chan engine.Notification
	done          chan struct{}

	ipcMu sync.Mutex // serializes short-lived IPC round trips

	mu       sync.Mutex
	stopping bool
	rewind   bool // playback sits at the end of the file
	closed   bool
}

// New creates an MPV engine without starting the process.
func New(options Options) *MPV {
	if options.Binary == "" {
		options.Binary = "mpv"
	}
	if options.SocketTimeout <= 0 {
		options.SocketTimeout = 3 * time.Second
	}

	return &MPV{
		options:       options,
		exited:        make(chan struct{}),
		notifications: make(chan engine.Notification, 64),
		done:          make(chan struct{}),
	}
}

// Factory returns an engine.Factory spawning a fresh mpv process per call.
func Factory(options Options) engine.Factory {
	return func() (engine.Engine, error) {
		m := New(options)
		if err := m.Start(); err != nil {
			return nil, err
		}
		return m, nil
	}
}

// Start spawns mpv in idle mode and attaches the event listener.
func (m *MPV) Start() error {
	socketPath, err := newSocketPath()
	if err != nil {
		return err
	}
	m.socketPath = socketPath

	m.cmd = exec.Command(m.options.Binary, m.args()...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// reap the process so it never lingers as a zombie
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	tr := &translator{
		stopping: m.isStopping,
		duration: m.duration,
		atEOF:    m.markEOF,
	}

	l, err := listen(m.socketPath, tr, m.emit)
	if err != nil {
		_ = m.Close()
		return err
	}
	m.listener = l

	return nil
}

// newSocketPath picks a fresh socket name directly in the system temp directory.
// Every process gets its own name, so concurrent instances never share one.
func newSocketPath() (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("generate socket name: %w", err)
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.App, randomBytes)), nil
}

func (m *MPV) args() []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		"--force-window=yes",
		"--keep-open=yes",
		"--pause=yes",
	}
	args = append(args, m.options.ExtraArgs...)
	return append(args, "--idle=yes")
}

func (m *MPV) waitForSocket() error {
	deadline := time.Now().Add(m.options.SocketTimeout)
	for time.Now().Before(deadline) {
		time.Sleep(socketPollDelay)

		select {
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %s", m.socketPath, m.options.SocketTimeout)
}

// emit delivers a notification unless the engine is shutting down.
func (m *MPV) emit(n engine.Notification) {
	select {
	case m.notifications <- n:
	case <-m.done:
	}
}

func (m *MPV) isStopping() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopping
}

func (m *MPV) setStopping(v bool) {
	m.mu.Lock()
	m.stopping = v
	m.mu.Unlock()
}

func (m *MPV) markEOF() {
	m.mu.Lock()
	m.stopping = true
	m.rewind = true
	m.mu.Unlock()
}

func (m *MPV) duration() time.Duration {
	d, err := m.getFloatProperty("duration")
	if err != nil || d <= 0 {
		return 0
	}
	return seconds(d)
}

func (m *MPV) command(command ...interface{}) error {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()

	if closed {
		return engine.ErrClosed
	}

	_, err := m.sendCommand(command...)
	return err
}

// Prepare loads locator into the idle player. It stays paused until Play.
func (m *MPV) Prepare(locator string) error {
	target, err := SanitizeLocator(locator)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	return m.command("loadfile", target, "replace")
}

func (m *MPV) Play() error {
	m.mu.Lock()
	rewind := m.rewind
	m.stopping = false
	m.rewind = false
	m.mu.Unlock()

	if rewind {
		if err := m.command("seek", 0, "absolute"); err != nil {
			return err
		}
	}
	return m.command("set_property", "pause", false)
}

func (m *MPV) Pause() error {
	return m.command("set_property", "pause", true)
}

// Stop pauses and rewinds. mpv has no stopped-but-loaded state, so Stopped is emitted here.
func (m *MPV) Stop() error {
	m.setStopping(true)

	if err := m.command("set_property", "pause", true); err != nil {
		return err
	}
	if err := m.command("seek", 0, "absolute"); err != nil {
		return err
	}

	m.emit(engine.Stopped{})
	return nil
}

func (m *MPV) Seek(offset time.Duration) error {
	return m.command("seek", offset.Seconds(), "absolute")
}

func (m *MPV) SetVolume(fraction float64) error {
	return m.command("set_property", "volume", fraction*100)
}

func (m *MPV) Notifications() <-chan engine.Notification {
	return m.notifications
}

// Close quits mpv, waits for it to exit (killing it after a grace period) and removes the socket.
func (m *MPV) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	close(m.done)

	// mpv hangs up on quit; that is not an engine failure
	if m.listener != nil {
		m.listener.closing.Store(true)
	}

	if m.socketPath != "" {
		_, _ = m.sendCommand("quit")
	}

	if m.listener != nil {
		m.listener.close()
	}

	if m.cmd != nil {
		select {
		case <-m.exited:
		case <-time.After(3 * time.Second):
			_ = killProcess(m.cmd)
		}
	}

	if m.socketPath != "" {
		_ = os.Remove(m.socketPath)
	}

	close(m.notifications)
	return nil
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// SanitizeLocator validates that a locator is safe to hand to mpv.
// URLs must use a streaming-capable scheme; anything else is treated as a local path.
func SanitizeLocator(locator string) (string, error) {
	l := strings.TrimSpace(locator)
	if l == "" {
		return "", errors.New("empty locator")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in locator")
	}

	// mpv would parse a leading dash as an option
	if strings.HasPrefix(l, "-") {
		return "", errors.New("locator must not start with '-'")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "rtmp", "rtsp":
			return l, nil
		case "file":
			return filepath.Clean(u.Path), nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}
