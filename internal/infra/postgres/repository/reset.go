package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/infra/postgres"
)

type ResetRepository struct {
	tr *postgres.Transactor
}

func NewResetRepository(tr *postgres.Transactor) *ResetRepository {
	return &ResetRepository{tr: tr}
}

// ResetUser deletes attempts, statistics, ledgers and saved progress of a
// user. Settings are kept.
func (s *ResetRepository) ResetUser(ctx context.Context, userID int64) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM quiz_attempts WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("delete quiz_attempts: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM word_results WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("delete word_results: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM ledger_words WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("delete ledger_words: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM quiz_progress WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("delete quiz_progress: %w", err)
		}

		return nil
	})
}
