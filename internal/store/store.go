package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"mansaf-kitchen/internal/models"
)

// SessionStore keeps the active order sessions in memory. Sessions are not
// persisted; they live and die with the process. Each session is mutated by
// one customer at a time, but different sessions arrive on concurrent
// requests, so the map itself is guarded.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

// New creates an empty session store.
func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*models.Session),
	}
}

// Create opens a fresh session and registers it.
func (s *SessionStore) Create() *models.Session {
	session := models.NewSession()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session
}

// Get returns the session with the given id.
func (s *SessionStore) Get(id uuid.UUID) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete discards a session. Discarding is the only form of cancellation the
// order flow has.
func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of active sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PurgeIdle drops sessions that have not been touched within maxIdle and
// returns how many were removed.
func (s *SessionStore) PurgeIdle(maxIdle time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged
}
