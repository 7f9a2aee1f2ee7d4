package entities

import "time"

// AnswerResult is the graded outcome of one question.
type AnswerResult struct {
	QuestionIndex int
	Correct       bool
	UserAnswer    string // empty when the question was left unanswered
}

// WrongAnswer describes a missed question for review.
type WrongAnswer struct {
	Number  int          `json:"no"` // 1-based position in the quiz
	Prompt  string       `json:"prompt"`
	Picked  string       `json:"picked"`
	Correct string       `json:"correct"`
	WordID  string       `json:"word"`
	Reading string       `json:"reading"`
	Meaning string       `json:"meaning"`
	Type    QuestionType `json:"type"`
}

// Attempt summarizes one submitted quiz.
type Attempt struct {
	ID        int64
	UserID    int64
	GroupKey  string
	Level     Level
	Type      QuestionType
	Length    int
	Score     int
	Wrong     []WrongAnswer
	CreatedAt time.Time
}

// WrongCount returns the number of missed questions.
func (a Attempt) WrongCount() int {
	return len(a.Wrong)
}

// WrongWordIDs returns the words of the missed questions, in quiz order.
func (a Attempt) WrongWordIDs() []string {
	ids := make([]string, len(a.Wrong))
	for i, w := range a.Wrong {
		ids[i] = w.WordID
	}
	return ids
}

// WordResult is the per-word statistic stored after each attempt.
type WordResult struct {
	WordID  string
	Level   Level
	POS     POS
	Type    QuestionType
	Correct bool
}

// WordStat aggregates results of one word for a user.
type WordStat struct {
	WordID  string
	Type    QuestionType
	Correct int
	Wrong   int
}

// LedgerMark adds words to one ledger set.
type LedgerMark struct {
	Key     LedgerKey
	Set     LedgerSet
	WordIDs []string
}

// Submission is everything persisted when a quiz is submitted.
type Submission struct {
	Attempt     Attempt
	WordResults []WordResult
	Marks       []LedgerMark
}
