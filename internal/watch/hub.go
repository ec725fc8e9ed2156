package watch

import (
	"sync"
)

// Hub fans frames out to every connected viewer and remembers the most
// recent one so late joiners see the current state immediately.
// Broadcast only queues; each viewer's writer does the network I/O.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	latest  []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Add registers a viewer, starts its writer and queues the latest frame, if any.
func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	go c.writePump()
	if h.latest != nil {
		c.enqueue(h.latest)
	}
}

// Remove unregisters a viewer and stops its writer. It is safe to call more than once.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast stores frame as the latest and queues it for every viewer.
// It never blocks on a viewer's connection.
func (h *Hub) Broadcast(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = frame
	for c := range h.clients {
		c.enqueue(frame)
	}
}

// Latest returns the most recent frame, or nil before the first broadcast.
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Len returns the number of connected viewers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// CloseAll disconnects every viewer and waits until their writers have
// flushed the queued frames and sent the close frame.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	closing := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		closing = append(closing, c)
	}
	h.mu.Unlock()

	for _, c := range closing {
		<-c.done
	}
}
