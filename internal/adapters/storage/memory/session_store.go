package memory

import (
	"sync"

	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/domain"
)

// SessionStore is an in-memory domain.SessionStore. Transcripts live for the
// lifetime of the process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]domain.Transcript
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]domain.Transcript),
	}
}

func (s *SessionStore) Get(id domain.SessionID) domain.Transcript {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sessions[id].Clone()
}

func (s *SessionStore) Append(id domain.SessionID, turns ...domain.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = append(s.sessions[id], turns...)
}

// Clear drops every session. Used to reset state between tests.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[domain.SessionID]domain.Transcript)
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
