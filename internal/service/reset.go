package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

// ResetService clears learning state.
type ResetService struct {
	repository ResetRepository
	ledgers    *LedgerService
	sessions   *SessionService
}

func NewResetService(
	repository ResetRepository,
	ledgers *LedgerService,
	sessions *SessionService,
) *ResetService {
	return &ResetService{
		repository: repository,
		ledgers:    ledgers,
		sessions:   sessions,
	}
}

// ResetKey makes every word of one filter and question type available again.
func (s *ResetService) ResetKey(ctx context.Context, userID int64, key entities.LedgerKey) error {
	return s.ledgers.ResetKey(ctx, userID, key)
}

// ResetUser deletes attempts, ledgers and saved progress of a user.
func (s *ResetService) ResetUser(ctx context.Context, userID int64) error {
	if s.repository != nil {
		if err := s.repository.ResetUser(ctx, userID); err != nil {
			return fmt.Errorf("reset user: %w", err)
		}
	}

	s.ledgers.Forget(userID)
	s.sessions.Finish(userID)

	return nil
}
