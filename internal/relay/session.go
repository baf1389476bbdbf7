package relay

import (
	"log"
	"sync"
	"time"

	"github.com/eapache/queue"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wire is the subset of *websocket.Conn a session drives. Narrowing the
// connection to this interface lets tests attach in-memory fakes.
type wire interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// frame is one queued outbound message.
type frame struct {
	messageType int
	payload     []byte
}

// Session wraps one accepted connection. Peers append to its outbound queue
// via Enqueue; only the session itself drains the queue, one write at a
// time, so frames reach the peer in enqueue order and no two writes ever
// overlap on the same connection.
type Session struct {
	id   string
	hub  *Hub
	conn wire

	mu       sync.Mutex
	outbound *queue.Queue // frames, FIFO
	writing  bool
	closed   bool
}

func newSession(hub *Hub, conn wire) *Session {
	return &Session{
		id:       uuid.NewString(),
		hub:      hub,
		conn:     conn,
		outbound: queue.New(),
	}
}

// ID returns the session identifier used in log lines.
func (s *Session) ID() string {
	return s.id
}

// Enqueue appends a frame to the session's outbound queue and starts a drain
// if none is in flight. It never blocks on I/O and silently drops the frame
// if the session has already been torn down.
func (s *Session) Enqueue(messageType int, payload []byte) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.outbound.Add(frame{messageType: messageType, payload: payload})
	if s.writing {
		s.mu.Unlock()
		return
	}
	s.writing = true
	s.mu.Unlock()

	go s.drain()
}

// drain pops queued frames and writes them to the connection one at a time.
// The writing flag guarantees a single drain per session, so at most one
// write is outstanding at any instant. A write failure discards the failed
// frame and closes the session; writes are never retried.
func (s *Session) drain() {
	for {
		s.mu.Lock()
		if s.closed || s.outbound.Length() == 0 {
			s.writing = false
			s.mu.Unlock()
			return
		}
		f := s.outbound.Remove().(frame)
		s.mu.Unlock()

		s.conn.SetWriteDeadline(time.Now().Add(s.hub.opts.WriteTimeout))
		if err := s.conn.WriteMessage(f.messageType, f.payload); err != nil {
			log.Printf("session %s: write error: %v", s.id, err)
			s.stopWriting()
			s.close()
			return
		}
		if f.messageType == websocket.CloseMessage {
			s.stopWriting()
			s.close()
			return
		}
	}
}

func (s *Session) stopWriting() {
	s.mu.Lock()
	s.writing = false
	s.mu.Unlock()
}

// readLoop receives inbound frames and relays each to every other live
// session before issuing the next receive. Any receive failure, including a
// clean close from the peer, ends the loop and closes the session.
func (s *Session) readLoop() {
	defer s.close()

	s.conn.SetReadLimit(s.hub.opts.MaxMessageSize)
	for {
		if s.hub.opts.IdleTimeout > 0 {
			s.conn.SetReadDeadline(time.Now().Add(s.hub.opts.IdleTimeout))
		}
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if !s.isClosed() && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("session %s: read error: %v", s.id, err)
			}
			return
		}
		s.hub.broadcast(s, payload)
	}
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// close deregisters the session and releases its connection. It may be
// triggered from both the read and the write path; only the first caller
// performs the transition.
func (s *Session) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.hub.detach(s)
	s.conn.Close()
}
