package telegram

import (
	"context"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/service"
)

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) (bool, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

type SettingsService interface {
	GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error)
	SetLevel(ctx context.Context, userID int64, level entities.Level) (*entities.UserSettings, error)
	SetGroup(ctx context.Context, userID int64, group entities.POSGroup) (*entities.UserSettings, error)
	SetQuestionType(ctx context.Context, userID int64, qt entities.QuestionType) (*entities.UserSettings, error)
	ToggleOtherTag(ctx context.Context, userID int64, tag entities.POS) (*entities.UserSettings, error)
}

type SessionService interface {
	Start(ctx context.Context, settings *entities.UserSettings) (service.QuizResult, error)
	StartReview(ctx context.Context, settings *entities.UserSettings, wordIDs []string) (service.QuizResult, error)
	Current(ctx context.Context, userID int64) (*entities.QuizSession, error)
	Answer(ctx context.Context, userID int64, questionIndex, choice int) (*entities.QuizSession, error)
}

type AttemptService interface {
	Submit(ctx context.Context, userID int64) (*entities.Attempt, error)
	Recent(ctx context.Context, userID int64, limit int) ([]entities.Attempt, error)
	TopWrongWords(ctx context.Context, userID int64, limit int) ([]entities.WordStat, error)
}

type LedgerService interface {
	Exclude(ctx context.Context, userID int64, key entities.LedgerKey, wordID string) error
}

type ResetService interface {
	ResetKey(ctx context.Context, userID int64, key entities.LedgerKey) error
	ResetUser(ctx context.Context, userID int64) error
}
