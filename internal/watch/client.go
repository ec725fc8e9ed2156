package watch

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/lawnchairsociety/wiremaze/internal/logger"
)

const (
	writeWait = 3 * time.Second

	// Frames a slow viewer may fall behind by before older ones are dropped
	sendQueue = 8
)

// Client wraps a viewer's WebSocket connection. Viewers only receive frames;
// anything they send is read and discarded so close frames are noticed.
// Frames are queued on send and written by the client's own writer, so a
// stalled viewer never holds up the hub.
type Client struct {
	conn *websocket.Conn
	send chan []byte   // closed by the Hub
	done chan struct{} // closed when the writer exits
}

// NewClient creates a new Client from a WebSocket connection.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendQueue),
		done: make(chan struct{}),
	}
}

// enqueue queues a frame without blocking. Every frame is a full snapshot,
// so when the queue is full the oldest pending frame is discarded.
// Only the Hub calls it, under its lock.
func (c *Client) enqueue(frame []byte) {
	for {
		select {
		case c.send <- frame:
			return
		default:
		}
		select {
		case <-c.send:
		default:
		}
	}
}

// writePump writes queued frames until the Hub closes send, then tells the
// viewer the generator went away and closes the connection.
func (c *Client) writePump() {
	defer close(c.done)

	for frame := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			logger.Debug("Viewer dropped", "remote_addr", c.RemoteAddr(), "error", err)
			c.conn.Close()
			for range c.send {
			}
			return
		}
	}

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "generator stopped")
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	c.conn.Close()
}

// drain reads until the connection fails or the peer closes it.
func (c *Client) drain(limit int64) error {
	if limit > 0 {
		c.conn.SetReadLimit(limit)
	}
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return err
		}
	}
}

// RemoteAddr returns the remote address as a string.
func (c *Client) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
