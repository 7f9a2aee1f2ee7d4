package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

// GradeQuiz scores a session. Unanswered questions count as wrong.
func GradeQuiz(session *entities.QuizSession) ([]entities.AnswerResult, entities.Attempt) {
	quiz := session.Quiz
	results := make([]entities.AnswerResult, quiz.Len())
	attempt := entities.Attempt{
		UserID:    session.UserID,
		GroupKey:  session.Filter.GroupKey(),
		Level:     session.Filter.Level,
		Type:      session.Type,
		Length:    quiz.Len(),
		CreatedAt: time.Now(),
	}

	for i, q := range quiz.Questions {
		choice := quiz.Answers[i]
		picked := ""
		if choice != entities.NoAnswer {
			picked = q.Choices[choice]
		}

		correct := q.IsCorrect(choice)
		results[i] = entities.AnswerResult{
			QuestionIndex: i,
			Correct:       correct,
			UserAnswer:    picked,
		}

		if correct {
			attempt.Score++
			continue
		}
		attempt.Wrong = append(attempt.Wrong, entities.WrongAnswer{
			Number:  i + 1,
			Prompt:  q.Prompt,
			Picked:  picked,
			Correct: q.CorrectAnswer,
			WordID:  q.WordID,
			Reading: q.Reading,
			Meaning: q.Meaning,
			Type:    q.Type,
		})
	}

	return results, attempt
}

// AttemptService submits finished quizzes and reports past attempts.
type AttemptService struct {
	sessions    *SessionService
	ledgers     *LedgerService
	submissions SubmissionRepository
	attempts    AttemptRepository
	logger      *zap.Logger
}

// NewAttemptService creates an AttemptService.
func NewAttemptService(
	sessions *SessionService,
	ledgers *LedgerService,
	submissions SubmissionRepository,
	attempts AttemptRepository,
	logger *zap.Logger,
) *AttemptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttemptService{
		sessions:    sessions,
		ledgers:     ledgers,
		submissions: submissions,
		attempts:    attempts,
		logger:      logger,
	}
}

// Submit grades the active quiz of a user, marks correctly answered words as
// mastered and every shown word as seen, and persists the attempt.
func (s *AttemptService) Submit(ctx context.Context, userID int64) (*entities.Attempt, error) {
	session, err := s.sessions.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Submitted() {
		return nil, entities.ErrQuizSubmitted
	}

	results, attempt := GradeQuiz(session)
	key := session.LedgerKey()

	var mastered []string
	wordResults := make([]entities.WordResult, len(results))
	for i, r := range results {
		q := session.Quiz.Questions[r.QuestionIndex]
		if r.Correct {
			mastered = append(mastered, q.WordID)
		}
		wordResults[i] = entities.WordResult{
			WordID:  q.WordID,
			Level:   q.Level,
			POS:     q.POS,
			Type:    q.Type,
			Correct: r.Correct,
		}
	}
	seen := session.Quiz.WordIDs()

	ledger, err := s.ledgers.Ledger(ctx, userID)
	if err != nil {
		return nil, err
	}
	ledger.MarkMastered(key, mastered...)
	ledger.MarkSeen(key, seen...)

	session.Submit()
	s.sessions.Finish(userID)

	sub := &entities.Submission{
		Attempt:     attempt,
		WordResults: wordResults,
		Marks: []entities.LedgerMark{
			{Key: key, Set: entities.SetMastered, WordIDs: mastered},
			{Key: key, Set: entities.SetSeen, WordIDs: seen},
		},
	}

	if s.submissions != nil {
		id, err := s.submissions.SaveSubmission(ctx, sub)
		if err != nil {
			s.logger.Error("failed to save attempt",
				zap.Int64("user_id", userID),
				zap.String("key", key.String()),
				zap.Error(err),
			)
			return &attempt, fmt.Errorf("save attempt: %w", err)
		}
		attempt.ID = id
	}

	s.logger.Info("quiz submitted",
		zap.Int64("user_id", userID),
		zap.String("key", key.String()),
		zap.Int("score", attempt.Score),
		zap.Int("length", attempt.Length),
	)

	return &attempt, nil
}

// Recent returns the latest attempts of a user, newest first.
func (s *AttemptService) Recent(ctx context.Context, userID int64, limit int) ([]entities.Attempt, error) {
	if s.attempts == nil {
		return nil, nil
	}
	return s.attempts.Recent(ctx, userID, limit)
}

// TopWrongWords returns the words a user missed most often.
func (s *AttemptService) TopWrongWords(ctx context.Context, userID int64, limit int) ([]entities.WordStat, error) {
	if s.attempts == nil {
		return nil, nil
	}
	return s.attempts.TopWrongWords(ctx, userID, limit)
}
