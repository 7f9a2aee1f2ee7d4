package storage

import (
	"sync"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

// SessionStorage keeps the active quiz session of each user in memory.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*entities.QuizSession
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*entities.QuizSession),
	}
}

// Store replaces the session of a user.
func (s *SessionStorage) Store(userID int64, session *entities.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = session
}

// Get retrieves the session of a user.
func (s *SessionStorage) Get(userID int64) (*entities.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	return session, ok
}

// Delete removes the session of a user.
func (s *SessionStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
