package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/infra/postgres"
)

// ProgressRepository keeps the unfinished quiz of each user as a JSON blob.
type ProgressRepository struct {
	db postgres.DBTX
}

// NewProgressRepository creates a new ProgressRepository with the provided database pool.
func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Save creates or replaces the stored session.
func (r *ProgressRepository) Save(ctx context.Context, session *entities.QuizSession) error {
	query := `
		INSERT INTO quiz_progress (user_id, session, version, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			session = EXCLUDED.session,
			version = EXCLUDED.version,
			updated_at = NOW()
	`

	blob, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, session.UserID, blob, session.Version); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}

	return nil
}

// Load returns the stored session of a user.
func (r *ProgressRepository) Load(ctx context.Context, userID int64) (*entities.QuizSession, error) {
	var blob []byte
	err := r.db.QueryRow(ctx, `SELECT session FROM quiz_progress WHERE user_id = $1`, userID).Scan(&blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrProgressNotFound
		}
		return nil, fmt.Errorf("load progress: %w", err)
	}

	var session entities.QuizSession
	if err := json.Unmarshal(blob, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if session.Quiz == nil {
		return nil, entities.ErrProgressNotFound
	}

	return &session, nil
}

func (r *ProgressRepository) Clear(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM quiz_progress WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}

	return nil
}
