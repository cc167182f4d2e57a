package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/playcheck-cli/playcheck/constant"
	"github.com/playcheck-cli/playcheck/dispatch"
	"github.com/playcheck-cli/playcheck/log"
	"github.com/playcheck-cli/playcheck/source"
	"github.com/playcheck-cli/playcheck/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// MPV drives an mpv process over JSON-IPC and reports its activity as player events.
type MPV struct {
	handler *dispatch.Handler
	surface Surface
	config  Config
	meter   *source.BandwidthMeter

	// mu guards the fields below; the watcher goroutine writes them.
	mu        sync.Mutex
	tracker   *stateTracker
	listeners []Listener
	disabled  map[TrackType]bool

	ipcMu      sync.Mutex
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	watcher    *watcher
}

// NewMPV returns an mpv player posting its notifications through h.
// No process is started until SetSource.
func NewMPV(h *dispatch.Handler, surface Surface, cfg Config) *MPV {
	return &MPV{
		handler:  h,
		surface:  surface,
		config:   cfg,
		meter:    source.NewBandwidthMeter(),
		tracker:  newStateTracker(h.Queue().Clock()),
		disabled: make(map[TrackType]bool),
	}
}

func (m *MPV) AddListener(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// apply runs fn against the tracker and posts the events it produced to the listeners.
// Posting happens under the lock so events reach the control queue in tracker order.
func (m *MPV) apply(fn func(t *stateTracker) []Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := fn(m.tracker)
	if len(events) == 0 {
		return
	}

	m.handler.Post(func() {
		m.mu.Lock()
		listeners := append([]Listener(nil), m.listeners...)
		m.mu.Unlock()

		for _, ev := range events {
			for _, l := range listeners {
				l.Handle(ev)
			}
		}
	})
}

// SetSource starts mpv paused on the given media, or loads it into a running instance.
func (m *MPV) SetSource(media source.Media) error {
	if m.running() {
		if _, err := m.sendCommand("loadfile", media.URL, "replace"); err != nil {
			return fmt.Errorf("load %s: %w", media.URL, err)
		}
		m.apply((*stateTracker).setSource)
		return nil
	}

	if err := m.start(media); err != nil {
		return err
	}
	m.apply((*stateTracker).setSource)
	return nil
}

func (m *MPV) start(media source.Media) error {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Errorf("generate socket name: %w", err)
	}
	socketPath := filepath.Join(where.Temp(), fmt.Sprintf("mpv-%x.sock", randomBytes))

	m.mu.Lock()
	disabled := make(map[TrackType]bool, len(m.disabled))
	for t, d := range m.disabled {
		disabled[t] = d
	}
	m.mu.Unlock()

	executable := m.config.Executable
	if executable == "" {
		executable = "mpv"
	}

	cmd := exec.Command(executable, buildArgs(socketPath, media, m.surface, m.config, disabled)...)

	// Detach from the parent process group so terminal signals do not cascade.
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := waitForSocket(socketPath, exited); err != nil {
		select {
		case <-exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.ipcMu.Lock()
	m.socketPath = socketPath
	m.cmd = cmd
	m.exited = exited
	m.ipcMu.Unlock()

	w, err := watch(socketPath, m.onRaw)
	if err != nil {
		_ = m.Release()
		return err
	}
	m.watcher = w
	return nil
}

// onRaw runs on the watcher goroutine.
func (m *MPV) onRaw(name string, data interface{}, payload map[string]interface{}) {
	if payload != nil {
		m.apply(func(t *stateTracker) []Event { return t.event(name, payload) })
		return
	}

	if name == "cache-speed" {
		if speed, ok := data.(float64); ok {
			m.meter.Sample(int64(speed), time.Second)
		}
		return
	}

	m.apply(func(t *stateTracker) []Event { return t.property(name, data) })
}

func (m *MPV) SetPlayWhenReady(playWhenReady bool) error {
	if _, err := m.sendCommand("set_property", "pause", !playWhenReady); err != nil {
		return fmt.Errorf("set play when ready: %w", err)
	}
	m.apply(func(t *stateTracker) []Event { return t.setPlayWhenReady(playWhenReady) })
	return nil
}

func (m *MPV) PlayWhenReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.playWhenReady
}

func (m *MPV) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.state
}

// Duration asks mpv for the media duration.
func (m *MPV) Duration() time.Duration {
	data, err := m.sendCommand("get_property", "duration")
	if err != nil {
		return DurationUnknown
	}
	secs, ok := data.(float64)
	if !ok || secs <= 0 {
		return DurationUnknown
	}
	return time.Duration(secs * float64(time.Second))
}

func (m *MPV) Seek(position time.Duration) error {
	if _, err := m.sendCommand("seek", position.Seconds(), "absolute"); err != nil {
		return fmt.Errorf("seek to %s: %w", position, err)
	}
	return nil
}

func (m *MPV) Stop() error {
	if _, err := m.sendCommand("stop"); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	m.apply((*stateTracker).stop)
	return nil
}

// SetTrackEnabled toggles a renderer. Before mpv runs the choice is applied at start.
func (m *MPV) SetTrackEnabled(track TrackType, enabled bool) error {
	m.mu.Lock()
	m.disabled[track] = !enabled
	m.mu.Unlock()

	if !m.running() {
		return nil
	}

	value := "auto"
	if !enabled {
		value = "no"
	}
	if _, err := m.sendCommand("set_property", trackProperty(track), value); err != nil {
		return fmt.Errorf("set %s track: %w", track, err)
	}
	return nil
}

func (m *MPV) BandwidthMeter() *source.BandwidthMeter {
	return m.meter
}

// Release reports the counters of every enabled track, quits mpv and removes its socket.
func (m *MPV) Release() error {
	if m.watcher != nil {
		m.watcher.stop()
		m.watcher = nil
	}
	m.apply((*stateTracker).release)

	m.ipcMu.Lock()
	socketPath, cmd, exited := m.socketPath, m.cmd, m.exited
	m.ipcMu.Unlock()

	if socketPath == "" {
		return nil
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-exited:
	case <-time.After(quitTimeout):
		if err := terminateProcess(cmd); err != nil {
			log.Warnf("terminate mpv: %s", err)
		}
		select {
		case <-exited:
		case <-time.After(quitTimeout):
			_ = killProcess(cmd)
		}
	}

	m.ipcMu.Lock()
	m.socketPath = ""
	m.ipcMu.Unlock()

	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove mpv socket: %w", err)
	}
	return nil
}

func (m *MPV) running() bool {
	m.ipcMu.Lock()
	defer m.ipcMu.Unlock()

	if m.socketPath == "" {
		return false
	}
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func waitForSocket(socketPath string, exited <-chan struct{}) error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", socketPath, socketWaitRetries)
}

// buildArgs returns the mpv command line for a session.
func buildArgs(socketPath string, media source.Media, surface Surface, cfg Config, disabled map[TrackType]bool) []string {
	title := sanitizeTitle(media.Title)
	if title == "" {
		title = constant.Playcheck
	}

	correctPTS := "no"
	if cfg.StrictAudioTimestamps {
		correctPTS = "yes"
	}

	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		fmt.Sprintf("--force-media-title=%s", title),
		"--idle=yes",
		"--keep-open=yes",
		"--pause=yes",
		fmt.Sprintf("--correct-pts=%s", correctPTS),
	}

	if surface.VideoOutput != "" {
		args = append(args, fmt.Sprintf("--vo=%s", surface.VideoOutput))
	}
	if disabled[TrackVideo] {
		args = append(args, "--vid=no")
	}
	if disabled[TrackAudio] {
		args = append(args, "--aid=no")
	}

	var fields []string
	for k, v := range media.Headers {
		if strings.EqualFold(k, "User-Agent") {
			args = append(args, fmt.Sprintf("--user-agent=%s", v))
			continue
		}
		fields = append(fields, fmt.Sprintf("%s: %s", k, strings.ReplaceAll(v, ",", "%2C")))
	}
	if len(fields) > 0 {
		sort.Strings(fields)
		args = append(args, fmt.Sprintf("--http-header-fields=%s", strings.Join(fields, ",")))
	}

	return append(args, media.URL)
}

func trackProperty(track TrackType) string {
	if track == TrackVideo {
		return "vid"
	}
	return "aid"
}

// sanitizeTitle cleans up the title for mpv.
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
