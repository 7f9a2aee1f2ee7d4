package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/infra/postgres"
)

// AttemptRepository stores submitted quizzes and per-word statistics.
type AttemptRepository struct {
	db postgres.DBTX
}

func NewAttemptRepository(db postgres.DBTX) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Save inserts an attempt and returns its id.
func (r *AttemptRepository) Save(ctx context.Context, a *entities.Attempt) (int64, error) {
	query := `
		INSERT INTO quiz_attempts (
			user_id, group_key, level, question_type, quiz_len, score, wrong_count, wrong_list, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	wrong := a.Wrong
	if wrong == nil {
		wrong = []entities.WrongAnswer{}
	}
	wrongJSON, err := json.Marshal(wrong)
	if err != nil {
		return 0, fmt.Errorf("marshal wrong list: %w", err)
	}

	var id int64
	err = r.db.QueryRow(
		ctx,
		query,
		a.UserID,
		a.GroupKey,
		string(a.Level),
		string(a.Type),
		a.Length,
		a.Score,
		a.WrongCount(),
		wrongJSON,
		a.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save attempt: %w", err)
	}

	return id, nil
}

// SaveWordResults bumps the correct or wrong counter of every word.
func (r *AttemptRepository) SaveWordResults(ctx context.Context, userID int64, results []entities.WordResult) error {
	query := `
		INSERT INTO word_results (user_id, word_id, question_type, level, pos, correct_count, wrong_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id, word_id, question_type) DO UPDATE SET
			correct_count = word_results.correct_count + EXCLUDED.correct_count,
			wrong_count = word_results.wrong_count + EXCLUDED.wrong_count,
			updated_at = NOW()
	`

	for _, res := range results {
		correct, wrong := 0, 1
		if res.Correct {
			correct, wrong = 1, 0
		}
		_, err := r.db.Exec(
			ctx,
			query,
			userID,
			res.WordID,
			string(res.Type),
			string(res.Level),
			string(res.POS),
			correct,
			wrong,
		)
		if err != nil {
			return fmt.Errorf("save word result %s: %w", res.WordID, err)
		}
	}

	return nil
}

// Recent returns the latest attempts of a user, newest first.
func (r *AttemptRepository) Recent(ctx context.Context, userID int64, limit int) ([]entities.Attempt, error) {
	query := `
		SELECT id, user_id, group_key, level, question_type, quiz_len, score, wrong_list, created_at
		FROM quiz_attempts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent attempts: %w", err)
	}
	defer rows.Close()

	var attempts []entities.Attempt
	for rows.Next() {
		var (
			a            entities.Attempt
			level, qtype string
			wrongJSON    []byte
		)
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.GroupKey, &level, &qtype, &a.Length, &a.Score, &wrongJSON, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal(wrongJSON, &a.Wrong); err != nil {
			return nil, fmt.Errorf("unmarshal wrong list of attempt %d: %w", a.ID, err)
		}
		a.Level = entities.Level(level)
		a.Type = entities.QuestionType(qtype)
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

// TopWrongWords returns the words the user missed most often.
func (r *AttemptRepository) TopWrongWords(ctx context.Context, userID int64, limit int) ([]entities.WordStat, error) {
	query := `
		SELECT word_id, question_type, correct_count, wrong_count
		FROM word_results
		WHERE user_id = $1 AND wrong_count > 0
		ORDER BY wrong_count DESC, correct_count ASC, word_id
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("top wrong words: %w", err)
	}
	defer rows.Close()

	var stats []entities.WordStat
	for rows.Next() {
		var (
			s     entities.WordStat
			qtype string
		)
		if err := rows.Scan(&s.WordID, &qtype, &s.Correct, &s.Wrong); err != nil {
			return nil, fmt.Errorf("scan word stat: %w", err)
		}
		s.Type = entities.QuestionType(qtype)
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
