package quote

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session id is unknown or expired.
var ErrSessionNotFound = errors.New("quote session not found")

// Store keeps live quote sessions in process memory.  Sessions are
// deliberately not persisted: they mirror the transient selection state of a
// single console tab and are discarded when idle past the TTL or when the
// process exits.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewStore creates a store whose janitor evicts sessions idle for longer
// than ttl.  A non-positive ttl defaults to 30 minutes.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	st := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go st.janitor()
	return st
}

// Create registers a fresh empty session and returns it.
func (st *Store) Create() *Session {
	s := NewSession(uuid.NewString())
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the live session for an id.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete discards a session.  Deleting an unknown id is a no-op.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Close stops the janitor.  Live sessions are simply dropped.
func (st *Store) Close() {
	st.once.Do(func() { close(st.stop) })
}

func (st *Store) janitor() {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-st.stop:
			return
		case <-t.C:
			cutoff := time.Now().UTC().Add(-st.ttl)
			st.mu.Lock()
			for id, s := range st.sessions {
				s.mu.Lock()
				idle := s.touchedAt.Before(cutoff)
				s.mu.Unlock()
				if idle {
					delete(st.sessions, id)
				}
			}
			st.mu.Unlock()
		}
	}
}
