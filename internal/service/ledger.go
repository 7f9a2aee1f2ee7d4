package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/storage"
)

// LedgerService owns the exclusion ledgers of all users. Ledgers are loaded
// from the repository on first use and kept in memory afterwards.
type LedgerService struct {
	ledgers    *storage.LedgerStorage
	repository LedgerRepository
	logger     *zap.Logger
}

// NewLedgerService creates a LedgerService. A nil repository keeps ledgers in memory only.
func NewLedgerService(ledgers *storage.LedgerStorage, repository LedgerRepository, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{
		ledgers:    ledgers,
		repository: repository,
		logger:     logger,
	}
}

// Ledger returns the ledger of a user.
func (s *LedgerService) Ledger(ctx context.Context, userID int64) (*entities.ExclusionLedger, error) {
	if l, ok := s.ledgers.Get(userID); ok {
		return l, nil
	}
	if s.repository == nil {
		return s.ledgers.GetOrCreate(userID), nil
	}

	l, err := s.repository.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	s.ledgers.Store(userID, l)

	return l, nil
}

// Exclude removes a word from future quizzes of key for a user.
func (s *LedgerService) Exclude(ctx context.Context, userID int64, key entities.LedgerKey, wordID string) error {
	l, err := s.Ledger(ctx, userID)
	if err != nil {
		return err
	}
	if s.repository != nil {
		if err := s.repository.Add(ctx, userID, key, entities.SetExcludedWrong, []string{wordID}); err != nil {
			return fmt.Errorf("exclude word: %w", err)
		}
	}
	l.MarkExcluded(key, wordID)

	s.logger.Info("word excluded",
		zap.Int64("user_id", userID),
		zap.String("key", key.String()),
		zap.String("word", wordID),
	)
	return nil
}

// ResetKey clears mastered, excluded and seen words of key, so an exhausted
// filter becomes available again.
func (s *LedgerService) ResetKey(ctx context.Context, userID int64, key entities.LedgerKey) error {
	l, err := s.Ledger(ctx, userID)
	if err != nil {
		return err
	}
	if s.repository != nil {
		if err := s.repository.Reset(ctx, userID, key); err != nil {
			return fmt.Errorf("reset ledger key: %w", err)
		}
	}
	l.Reset(key)
	return nil
}

// Forget drops the cached ledger of a user.
func (s *LedgerService) Forget(userID int64) {
	s.ledgers.Delete(userID)
}
