package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/infra/postgres"
)

// LedgerRepository persists exclusion ledgers as one row per word and set.
type LedgerRepository struct {
	db postgres.DBTX
}

func NewLedgerRepository(db postgres.DBTX) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Load rebuilds the whole ledger of a user.
func (r *LedgerRepository) Load(ctx context.Context, userID int64) (*entities.ExclusionLedger, error) {
	query := `
		SELECT ledger_key, set_name, word_id
		FROM ledger_words
		WHERE user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	defer rows.Close()

	ledger := entities.NewExclusionLedger()
	for rows.Next() {
		var rawKey, rawSet, wordID string
		if err := rows.Scan(&rawKey, &rawSet, &wordID); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}

		key, err := entities.ParseLedgerKey(rawKey)
		if err != nil {
			return nil, err
		}
		set, err := entities.ParseLedgerSet(rawSet)
		if err != nil {
			return nil, err
		}
		if err := ledger.Mark(key, set, wordID); err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	return ledger, nil
}

// Add inserts words into one set. Words already present are ignored.
func (r *LedgerRepository) Add(
	ctx context.Context,
	userID int64,
	key entities.LedgerKey,
	set entities.LedgerSet,
	wordIDs []string,
) error {
	if len(wordIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO ledger_words (user_id, ledger_key, set_name, word_id)
		SELECT $1, $2, $3, UNNEST($4::text[])
		ON CONFLICT DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, key.String(), string(set), wordIDs)
	if err != nil {
		return fmt.Errorf("add %s to %s: %w", set, key, err)
	}

	return nil
}

// Reset removes every set of one key.
func (r *LedgerRepository) Reset(ctx context.Context, userID int64, key entities.LedgerKey) error {
	_, err := r.db.Exec(ctx, `DELETE FROM ledger_words WHERE user_id = $1 AND ledger_key = $2`, userID, key.String())
	if err != nil {
		return fmt.Errorf("reset ledger %s: %w", key, err)
	}

	return nil
}
