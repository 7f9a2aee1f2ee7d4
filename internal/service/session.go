package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/storage"
)

// SessionService starts quizzes and records answers. The active session is
// kept in memory and mirrored to the progress repository after every change.
type SessionService struct {
	quizzes  *QuizService
	ledgers  *LedgerService
	sessions *storage.SessionStorage
	progress ProgressRepository
	logger   *zap.Logger
}

// NewSessionService creates a SessionService. A nil progress repository
// disables restoring quizzes after a restart.
func NewSessionService(
	quizzes *QuizService,
	ledgers *LedgerService,
	sessions *storage.SessionStorage,
	progress ProgressRepository,
	logger *zap.Logger,
) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		quizzes:  quizzes,
		ledgers:  ledgers,
		sessions: sessions,
		progress: progress,
		logger:   logger,
	}
}

// Start builds a new quiz for the user's current settings and replaces any
// active session. Exhaustion is reported through the result, not as an error.
func (s *SessionService) Start(ctx context.Context, settings *entities.UserSettings) (QuizResult, error) {
	ledger, err := s.ledgers.Ledger(ctx, settings.UserID)
	if err != nil {
		return QuizResult{}, err
	}

	res, err := s.quizzes.BuildQuiz(settings.QuestionType, settings.Filter(), ledger)
	if err != nil {
		return QuizResult{}, err
	}
	if res.Outcome == OutcomeReady {
		s.begin(ctx, entities.NewQuizSession(settings.UserID, settings.Filter(), settings.QuestionType, res.Quiz, false))
	}

	return res, nil
}

// StartReview builds a quiz from the given words, capped at the regular quiz length.
func (s *SessionService) StartReview(ctx context.Context, settings *entities.UserSettings, wordIDs []string) (QuizResult, error) {
	res, err := s.quizzes.BuildQuizFromWords(wordIDs, settings.QuestionType, settings.Filter(), s.quizzes.Length())
	if err != nil {
		return QuizResult{}, err
	}
	if res.Outcome == OutcomeReady {
		s.begin(ctx, entities.NewQuizSession(settings.UserID, settings.Filter(), settings.QuestionType, res.Quiz, true))
	}

	return res, nil
}

// Current returns the active session, restoring it from the progress
// repository when it is not in memory.
func (s *SessionService) Current(ctx context.Context, userID int64) (*entities.QuizSession, error) {
	if session, ok := s.sessions.Get(userID); ok {
		return session, nil
	}
	if s.progress == nil {
		return nil, entities.ErrProgressNotFound
	}

	session, err := s.progress.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrProgressNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("restore quiz: %w", err)
	}
	s.sessions.Store(userID, session)

	s.logger.Debug("quiz restored",
		zap.Int64("user_id", userID),
		zap.Int("answered", session.Quiz.Answered()),
	)
	return session, nil
}

// Answer records a choice for one question of the active quiz.
func (s *SessionService) Answer(ctx context.Context, userID int64, questionIndex, choice int) (*entities.QuizSession, error) {
	session, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := session.Answer(questionIndex, choice); err != nil {
		return nil, err
	}

	s.saveProgress(ctx, session)
	return session, nil
}

// Finish forgets the active session after it has been submitted.
func (s *SessionService) Finish(userID int64) {
	s.sessions.Delete(userID)
}

// Discard drops the active session and its saved progress.
func (s *SessionService) Discard(ctx context.Context, userID int64) error {
	s.sessions.Delete(userID)
	if s.progress == nil {
		return nil
	}
	if err := s.progress.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

func (s *SessionService) begin(ctx context.Context, session *entities.QuizSession) {
	s.sessions.Store(session.UserID, session)
	s.saveProgress(ctx, session)
}

// saveProgress is best effort: the in-memory session stays authoritative.
func (s *SessionService) saveProgress(ctx context.Context, session *entities.QuizSession) {
	if s.progress == nil {
		return
	}
	if err := s.progress.Save(ctx, session); err != nil {
		s.logger.Warn("failed to save quiz progress",
			zap.Int64("user_id", session.UserID),
			zap.Error(err),
		)
	}
}
