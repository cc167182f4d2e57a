package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/playcheck-cli/playcheck/log"
)

// observedProperties are the mpv properties the watcher subscribes to.
var observedProperties = []string{
	"pause",
	"idle-active",
	"eof-reached",
	"seeking",
	"paused-for-cache",
	"demuxer-cache-duration",
	"cache-speed",
	"vid",
	"aid",
	"video-codec",
	"audio-codec-name",
	"video-params/pixelformat",
	"audio-params/format",
	"estimated-frame-number",
	"frame-drop-count",
	"decoder-frame-drop-count",
}

// rawCallback receives either a property change (payload nil) or an mpv event.
type rawCallback func(name string, data interface{}, payload map[string]interface{})

// watcher holds a persistent IPC connection on which mpv pushes property changes and events.
type watcher struct {
	conn     net.Conn
	callback rawCallback
	done     chan struct{}
	once     sync.Once
}

// watch connects to socketPath, subscribes to observedProperties and starts the read loop.
func watch(socketPath string, callback rawCallback) (*watcher, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("event watcher connect: %w", err)
	}

	w, err := startWatcher(conn, callback)
	if err != nil {
		return nil, err
	}

	log.Infof("mpv event watcher started on %s (observing %d properties)", socketPath, len(observedProperties))
	return w, nil
}

// startWatcher subscribes on conn and reads from it until stop. conn is closed on failure.
func startWatcher(conn net.Conn, callback rawCallback) (*watcher, error) {
	for i, name := range observedProperties {
		payload, err := encodeCommand(requestIDs.Add(1), []interface{}{"observe_property", i + 1, name})
		if err != nil {
			conn.Close()
			return nil, err
		}
		if _, err := conn.Write(payload); err != nil {
			conn.Close()
			return nil, fmt.Errorf("observe %s: %w", name, err)
		}
	}

	w := &watcher{
		conn:     conn,
		callback: callback,
		done:     make(chan struct{}),
	}
	go w.readLoop()
	return w, nil
}

// stop closes the connection and waits for the read loop to exit.
func (w *watcher) stop() {
	w.once.Do(func() {
		w.conn.Close()
	})
	<-w.done
}

// readLoop reads newline-delimited JSON messages until the connection closes.
func (w *watcher) readLoop() {
	defer close(w.done)

	reader := bufio.NewReader(w.conn)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			w.process(line)
		}
		if err != nil {
			log.Debugf("mpv event watcher stopped: %v", err)
			return
		}
	}
}

// process parses one message. Command replies carry no "event" field and are ignored.
func (w *watcher) process(line []byte) {
	var msg map[string]interface{}
	if err := json.Unmarshal(line, &msg); err != nil {
		return
	}

	event, ok := msg["event"].(string)
	if !ok {
		return
	}

	if event == "property-change" {
		name, _ := msg["name"].(string)
		if name != "" {
			w.callback(name, msg["data"], nil)
		}
		return
	}

	w.callback(event, nil, msg)
}
