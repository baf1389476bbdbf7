package relay

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub owns the registry of live sessions and fans inbound frames out to
// them. One hub serves the whole process.
type Hub struct {
	opts     Options
	registry *registry

	mu     sync.Mutex
	closed bool
}

// NewHub creates a Hub with the given transport options.
func NewHub(opts Options) *Hub {
	return &Hub{
		opts:     opts.withDefaults(),
		registry: newRegistry(),
	}
}

// Attach wraps an upgraded connection in a Session, registers it and starts
// its read loop. The connection must have completed the handshake already.
func (h *Hub) Attach(conn wire) (*Session, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}
	h.mu.Unlock()

	s := newSession(h, conn)
	h.registry.insert(s)
	log.Printf("session %s: client connected, total clients: %d", s.id, h.registry.len())

	go s.readLoop()
	return s, nil
}

// broadcast enqueues payload on every live session except origin. The
// registry lock is held only for the enqueue mapping, never across a write.
func (h *Hub) broadcast(origin *Session, payload []byte) {
	h.registry.forEachExcept(origin, func(peer *Session) {
		peer.Enqueue(websocket.TextMessage, payload)
	})
}

// detach removes s from the registry. It may be reached from several
// teardown paths; only the first removal logs the disconnect.
func (h *Hub) detach(s *Session) {
	if h.registry.remove(s) {
		log.Printf("session %s: client disconnected, total clients: %d", s.id, h.registry.len())
	}
}

// SessionCount reports the number of currently attached sessions.
func (h *Hub) SessionCount() int {
	return h.registry.len()
}

// Close rejects further attaches and asks every live session to shut down.
// The close frame travels through each session's own queue, so it trails any
// broadcasts already enqueued for that peer.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	var sessions []*Session
	h.registry.forEachExcept(nil, func(s *Session) {
		sessions = append(sessions, s)
	})
	for _, s := range sessions {
		s.Enqueue(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
	}
}
