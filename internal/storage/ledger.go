package storage

import (
	"sync"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

// LedgerStorage keeps one exclusion ledger per user. The ledgers themselves are
// not locked; callers serialize work per user.
type LedgerStorage struct {
	mu      sync.RWMutex
	ledgers map[int64]*entities.ExclusionLedger
}

// NewLedgerStorage creates a new LedgerStorage.
func NewLedgerStorage() *LedgerStorage {
	return &LedgerStorage{
		ledgers: make(map[int64]*entities.ExclusionLedger),
	}
}

// Get returns the ledger of a user if it has been loaded.
func (s *LedgerStorage) Get(userID int64) (*entities.ExclusionLedger, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.ledgers[userID]
	return l, ok
}

// GetOrCreate returns the ledger of a user, creating an empty one on first access.
func (s *LedgerStorage) GetOrCreate(userID int64) *entities.ExclusionLedger {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ledgers[userID]
	if !ok {
		l = entities.NewExclusionLedger()
		s.ledgers[userID] = l
	}
	return l
}

// Store replaces the ledger of a user.
func (s *LedgerStorage) Store(userID int64, ledger *entities.ExclusionLedger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgers[userID] = ledger
}

// Delete forgets the ledger of a user.
func (s *LedgerStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, userID)
}
