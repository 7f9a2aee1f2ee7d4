package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/infra/postgres"
)

// SubmissionRepository writes everything a submitted quiz produces in a
// single transaction.
type SubmissionRepository struct {
	tr *postgres.Transactor
}

func NewSubmissionRepository(tr *postgres.Transactor) *SubmissionRepository {
	return &SubmissionRepository{tr: tr}
}

// SaveSubmission stores the attempt, word results and ledger marks, then
// drops the saved progress. It returns the attempt id.
func (r *SubmissionRepository) SaveSubmission(ctx context.Context, sub *entities.Submission) (int64, error) {
	var id int64

	err := r.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		attempts := NewAttemptRepository(tx)
		ledgers := NewLedgerRepository(tx)
		progress := NewProgressRepository(tx)

		var err error
		id, err = attempts.Save(ctx, &sub.Attempt)
		if err != nil {
			return err
		}

		if err := attempts.SaveWordResults(ctx, sub.Attempt.UserID, sub.WordResults); err != nil {
			return err
		}

		for _, m := range sub.Marks {
			if err := ledgers.Add(ctx, sub.Attempt.UserID, m.Key, m.Set, m.WordIDs); err != nil {
				return err
			}
		}

		return progress.Clear(ctx, sub.Attempt.UserID)
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}
