package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"time"
)

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	replyTimeout = time.Second
)

// errNotReply marks a line that is not the reply to our request, such as an event.
var errNotReply = errors.New("not a reply")

var requestIDs atomic.Int64

type ipcRequest struct {
	Command   []interface{} `json:"command"`
	RequestID int64         `json:"request_id"`
}

type ipcReply struct {
	Event     string      `json:"event"`
	RequestID int64       `json:"request_id"`
	Data      interface{} `json:"data"`
	Error     string      `json:"error"`
}

// sendCommand runs a JSON-IPC command on a fresh connection and returns its data.
// Connection failures are retried; mpv errors are not.
func (m *MPV) sendCommand(command ...interface{}) (interface{}, error) {
	m.ipcMu.Lock()
	defer m.ipcMu.Unlock()

	if m.socketPath == "" {
		return nil, fmt.Errorf("mpv is not running")
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err != nil {
			lastErr = err
			continue
		}

		data, err := roundTrip(conn, command)
		conn.Close()
		return data, err
	}

	return nil, fmt.Errorf("%v: connect after %d attempts: %w", command[0], maxRetries, lastErr)
}

// roundTrip writes one request and reads lines until its reply arrives.
func roundTrip(conn net.Conn, command []interface{}) (interface{}, error) {
	id := requestIDs.Add(1)

	payload, err := encodeCommand(id, command)
	if err != nil {
		return nil, err
	}
	if err := conn.SetDeadline(time.Now().Add(replyTimeout)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}
	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("%v: write: %w", command[0], err)
	}

	return readReply(conn, id)
}

func readReply(r io.Reader, id int64) (interface{}, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for scanner.Scan() {
		data, err := decodeReply(scanner.Bytes(), id)
		if errors.Is(err, errNotReply) {
			continue
		}
		return data, err
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	return nil, fmt.Errorf("read reply: %w", io.ErrUnexpectedEOF)
}

// encodeCommand marshals a request as a newline-terminated JSON line.
func encodeCommand(id int64, command []interface{}) ([]byte, error) {
	payload, err := json.Marshal(ipcRequest{Command: command, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return append(payload, '\n'), nil
}

// decodeReply returns the data of the reply to request id, or errNotReply.
func decodeReply(line []byte, id int64) (interface{}, error) {
	var reply ipcReply
	if err := json.Unmarshal(line, &reply); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if reply.Event != "" || reply.RequestID != id {
		return nil, errNotReply
	}
	if reply.Error != "" && reply.Error != "success" {
		return nil, fmt.Errorf("mpv error: %s", reply.Error)
	}
	return reply.Data, nil
}
