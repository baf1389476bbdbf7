package relay

import "sync"

// registry is the shared set of live sessions. It is the single source of
// truth for broadcast targets: a session is a member exactly while it is
// attached and not closed.
type registry struct {
	mu       sync.RWMutex
	sessions map[*Session]bool
}

func newRegistry() *registry {
	return &registry{
		sessions: make(map[*Session]bool),
	}
}

func (r *registry) insert(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s] = true
}

// remove deletes s and reports whether it was present. Removing an absent
// session is a no-op, which keeps session close idempotent.
func (r *registry) remove(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.sessions[s] {
		return false
	}
	delete(r.sessions, s)
	return true
}

// forEachExcept applies fn to every member but origin. Removal and iteration
// exclude each other under the lock, so fn never observes a session
// mid-teardown. fn must not block on I/O.
func (r *registry) forEachExcept(origin *Session, fn func(*Session)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for s := range r.sessions {
		if s != origin {
			fn(s)
		}
	}
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
