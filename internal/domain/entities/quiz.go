package entities

import (
	"errors"
	"time"
)

// NoAnswer marks a question the learner has not answered yet.
const NoAnswer = -1

var (
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrChoiceOutOfRange   = errors.New("choice index out of range")
	ErrQuizSubmitted      = errors.New("quiz already submitted")
)

// Quiz is an ordered set of questions with the learner's answers alongside.
// A quiz is replaced as a whole, never edited question by question.
type Quiz struct {
	Questions []Question `json:"questions"`
	Answers   []int      `json:"answers"`
}

// NewQuiz creates a quiz with every answer unset.
func NewQuiz(questions []Question) *Quiz {
	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = NoAnswer
	}
	return &Quiz{Questions: questions, Answers: answers}
}

// Len returns the number of questions.
func (q *Quiz) Len() int {
	return len(q.Questions)
}

// Answer records choice for question i, overwriting an earlier answer.
func (q *Quiz) Answer(i, choice int) error {
	if i < 0 || i >= len(q.Questions) {
		return ErrQuestionOutOfRange
	}
	if choice < 0 || choice >= len(q.Questions[i].Choices) {
		return ErrChoiceOutOfRange
	}
	q.Answers[i] = choice
	return nil
}

// Answered returns how many questions have an answer.
func (q *Quiz) Answered() int {
	n := 0
	for _, a := range q.Answers {
		if a != NoAnswer {
			n++
		}
	}
	return n
}

// NextUnanswered returns the first question without an answer.
func (q *Quiz) NextUnanswered() (int, bool) {
	for i, a := range q.Answers {
		if a == NoAnswer {
			return i, true
		}
	}
	return 0, false
}

// Complete reports whether every question has been answered.
func (q *Quiz) Complete() bool {
	_, pending := q.NextUnanswered()
	return !pending
}

// WordIDs returns the source word of every question in order.
func (q *Quiz) WordIDs() []string {
	ids := make([]string, len(q.Questions))
	for i, question := range q.Questions {
		ids[i] = question.WordID
	}
	return ids
}

// QuizSession is the quiz a user is currently working through.
type QuizSession struct {
	UserID      int64        `json:"user_id"`
	Filter      FilterKey    `json:"filter"`
	Type        QuestionType `json:"type"`
	Quiz        *Quiz        `json:"quiz"`
	Review      bool         `json:"review"`  // built from an explicit word list
	Version     int          `json:"version"` // bumped on every recorded answer
	StartedAt   time.Time    `json:"started_at"`
	SubmittedAt *time.Time   `json:"submitted_at,omitempty"`
}

// NewQuizSession starts a session for the given quiz.
func NewQuizSession(userID int64, filter FilterKey, qt QuestionType, quiz *Quiz, review bool) *QuizSession {
	return &QuizSession{
		UserID:    userID,
		Filter:    filter,
		Type:      qt,
		Quiz:      quiz,
		Review:    review,
		StartedAt: time.Now(),
	}
}

// LedgerKey returns the ledger namespace this session reads and updates.
func (s *QuizSession) LedgerKey() LedgerKey {
	return LedgerKey{Group: s.Filter.GroupKey(), Type: s.Type}
}

// Answer records an answer unless the session was already submitted.
func (s *QuizSession) Answer(i, choice int) error {
	if s.Submitted() {
		return ErrQuizSubmitted
	}
	if err := s.Quiz.Answer(i, choice); err != nil {
		return err
	}
	s.Version++
	return nil
}

// Submit marks the session as submitted.
func (s *QuizSession) Submit() {
	now := time.Now()
	s.SubmittedAt = &now
}

// Submitted reports whether Submit was called.
func (s *QuizSession) Submitted() bool {
	return s.SubmittedAt != nil
}
