package relay

import (
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// inboundResult is one scripted outcome for fakeWire.ReadMessage.
type inboundResult struct {
	payload []byte
	err     error
}

// fakeWire is an in-memory wire implementation. Inbound frames are scripted
// through a channel; outbound writes are recorded along with whether any two
// of them ever overlapped.
type fakeWire struct {
	inbound   chan inboundResult
	closeOnce sync.Once

	inflight int32

	mu         sync.Mutex
	writes     []frame
	writeErr   error
	writeDelay time.Duration
	overlapped bool
	closed     bool
	closeCount int
}

func newFakeWire() *fakeWire {
	return &fakeWire{
		inbound: make(chan inboundResult, 16),
	}
}

func (w *fakeWire) ReadMessage() (int, []byte, error) {
	r, ok := <-w.inbound
	if !ok {
		w.mu.Lock()
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return 0, nil, net.ErrClosed
		}
		return 0, nil, &websocket.CloseError{Code: websocket.CloseNormalClosure}
	}
	if r.err != nil {
		return 0, nil, r.err
	}
	return websocket.TextMessage, r.payload, nil
}

func (w *fakeWire) WriteMessage(messageType int, data []byte) error {
	if atomic.AddInt32(&w.inflight, 1) > 1 {
		w.mu.Lock()
		w.overlapped = true
		w.mu.Unlock()
	}
	defer atomic.AddInt32(&w.inflight, -1)

	w.mu.Lock()
	delay := w.writeDelay
	w.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writeErr != nil {
		return w.writeErr
	}
	w.writes = append(w.writes, frame{messageType: messageType, payload: append([]byte(nil), data...)})
	return nil
}

func (w *fakeWire) SetReadLimit(int64)               {}
func (w *fakeWire) SetReadDeadline(time.Time) error  { return nil }
func (w *fakeWire) SetWriteDeadline(time.Time) error { return nil }

func (w *fakeWire) Close() error {
	w.mu.Lock()
	w.closed = true
	w.closeCount++
	w.mu.Unlock()
	w.closeOnce.Do(func() { close(w.inbound) })
	return nil
}

// pushText scripts one inbound text frame.
func (w *fakeWire) pushText(payload string) {
	w.inbound <- inboundResult{payload: []byte(payload)}
}

// failRead scripts one inbound read error.
func (w *fakeWire) failRead(err error) {
	w.inbound <- inboundResult{err: err}
}

// closePeer simulates a clean close initiated by the peer.
func (w *fakeWire) closePeer() {
	w.closeOnce.Do(func() { close(w.inbound) })
}

// setWriteErr makes every subsequent write fail with err.
func (w *fakeWire) setWriteErr(err error) {
	w.mu.Lock()
	w.writeErr = err
	w.mu.Unlock()
}

func (w *fakeWire) writeCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.writes)
}

// written returns a copy of the recorded outbound frames.
func (w *fakeWire) written() []frame {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]frame, len(w.writes))
	copy(out, w.writes)
	return out
}

func (w *fakeWire) sawOverlap() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.overlapped
}

func (w *fakeWire) closeCalls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeCount
}

// waitWrites polls until at least n frames were written or the timeout
// expires, and reports whether n was reached.
func (w *fakeWire) waitWrites(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if w.writeCount() >= n {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return w.writeCount() >= n
}

// waitSessionCount polls the hub until the live-session count matches want.
func waitSessionCount(t *testing.T, hub *Hub, want int, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if hub.SessionCount() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("session count did not reach %d, got %d", want, hub.SessionCount())
}
