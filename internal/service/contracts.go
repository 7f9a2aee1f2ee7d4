package service

import (
	"context"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

// WordSource is the read side of the word pool.
type WordSource interface {
	Filter(f entities.FilterKey) []entities.Word
	SamePOS(pos entities.POS) []entities.Word
	ByIDs(ids []string) []entities.Word
}

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

type SettingsRepository interface {
	Create(ctx context.Context, userID int64) error
	GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error)
	Update(ctx context.Context, settings *entities.UserSettings) error
}

// SubmissionRepository stores a graded quiz, its word results and ledger
// updates in one transaction.
type SubmissionRepository interface {
	SaveSubmission(ctx context.Context, sub *entities.Submission) (int64, error)
}

type AttemptRepository interface {
	Recent(ctx context.Context, userID int64, limit int) ([]entities.Attempt, error)
	TopWrongWords(ctx context.Context, userID int64, limit int) ([]entities.WordStat, error)
}

// LedgerRepository mirrors exclusion ledgers to durable storage.
type LedgerRepository interface {
	Load(ctx context.Context, userID int64) (*entities.ExclusionLedger, error)
	Add(ctx context.Context, userID int64, key entities.LedgerKey, set entities.LedgerSet, wordIDs []string) error
	Reset(ctx context.Context, userID int64, key entities.LedgerKey) error
}

// ProgressRepository keeps the in-flight quiz so it survives restarts.
type ProgressRepository interface {
	Save(ctx context.Context, session *entities.QuizSession) error
	Load(ctx context.Context, userID int64) (*entities.QuizSession, error)
	Clear(ctx context.Context, userID int64) error
}

// ResetRepository wipes every learning record of a user.
type ResetRepository interface {
	ResetUser(ctx context.Context, userID int64) error
}
