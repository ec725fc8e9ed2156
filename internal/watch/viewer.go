package watch

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Viewer is a WebSocket client that collects the frames a watch server
// streams. It backs the wireview command and the server tests.
type Viewer struct {
	conn    *websocket.Conn
	frames  []string
	mu      sync.Mutex
	updated chan struct{}
	done    chan struct{}
	err     error
}

// DialViewer connects to a watch server, e.g. "ws://localhost:8080/ws".
// An empty origin sends no Origin header.
func DialViewer(url, origin string) (*Viewer, error) {
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	v := &Viewer{
		conn:    conn,
		updated: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go v.readFrames()
	return v, nil
}

// readFrames continuously reads frames from the server
func (v *Viewer) readFrames() {
	defer close(v.done)
	for {
		_, msg, err := v.conn.ReadMessage()
		if err != nil {
			v.mu.Lock()
			v.err = err
			v.mu.Unlock()
			return
		}

		v.mu.Lock()
		v.frames = append(v.frames, string(msg))
		v.mu.Unlock()

		select {
		case v.updated <- struct{}{}:
		default:
		}
	}
}

// Updated signals after one or more new frames arrived
func (v *Viewer) Updated() <-chan struct{} { return v.updated }

// Done is closed once the connection ends
func (v *Viewer) Done() <-chan struct{} { return v.done }

// Err returns the error that ended the connection, if any
func (v *Viewer) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Frames returns all frames received so far
func (v *Viewer) Frames() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	result := make([]string, len(v.frames))
	copy(result, v.frames)
	return result
}

// LastFrame returns the most recent frame, or "" before the first one
func (v *Viewer) LastFrame() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.frames) == 0 {
		return ""
	}
	return v.frames[len(v.frames)-1]
}

// WaitForFrame waits for a frame containing text (with timeout)
func (v *Viewer) WaitForFrame(text string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		for _, frame := range v.Frames() {
			if strings.Contains(frame, text) {
				return true
			}
		}
		time.Sleep(20 * time.Millisecond)
	}

	return false
}

// WaitForFrames waits until at least n frames arrived (with timeout)
func (v *Viewer) WaitForFrames(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		v.mu.Lock()
		got := len(v.frames)
		v.mu.Unlock()
		if got >= n {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}

	return false
}

// Close closes the viewer connection
func (v *Viewer) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	v.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	return v.conn.Close()
}
