package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownQuestionType = errors.New("unknown question type")
	ErrMalformedQuestion   = errors.New("malformed question")
)

// QuestionType is the direction a question asks in.
type QuestionType string

const (
	QuestionReading   QuestionType = "reading"    // surface form -> kana reading
	QuestionMeaning   QuestionType = "meaning"    // surface form -> Korean gloss
	QuestionKrToJp    QuestionType = "kr2jp"      // Korean gloss -> surface form
	QuestionFillBlank QuestionType = "fill_blank" // example sentence with the word blanked out
)

// QuestionTypes lists the types offered to learners.
var QuestionTypes = []QuestionType{QuestionReading, QuestionMeaning, QuestionKrToJp, QuestionFillBlank}

// ParseQuestionType accepts the canonical names plus a few short spellings.
func ParseQuestionType(raw string) (QuestionType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "reading", "read", "발음":
		return QuestionReading, nil
	case "meaning", "mean", "뜻":
		return QuestionMeaning, nil
	case "kr2jp", "kr", "ko2jp":
		return QuestionKrToJp, nil
	case "fill_blank", "blank", "fill":
		return QuestionFillBlank, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownQuestionType, raw)
	}
}

const (
	// ChoiceCount is the number of options every question offers.
	ChoiceCount = 4
	// BlankMarker replaces the target word inside a fill-in-the-blank template.
	BlankMarker = "（　　）"
)

// Question is one multiple-choice item built from a Word.
type Question struct {
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"prompt"`
	Template      string       `json:"template,omitempty"` // example sentence containing BlankMarker
	Choices       []string     `json:"choices"`
	CorrectIndex  int          `json:"correct_index"`
	CorrectAnswer string       `json:"correct_answer"`

	WordID  string `json:"word_id"`
	Surface string `json:"surface"`
	Reading string `json:"reading"`
	Meaning string `json:"meaning"`
	Level   Level  `json:"level"`
	POS     POS    `json:"pos"`
}

// Validate checks that q has ChoiceCount distinct choices and that the
// correct answer sits at CorrectIndex.
func (q Question) Validate() error {
	if len(q.Choices) != ChoiceCount {
		return fmt.Errorf("%w: %d choices", ErrMalformedQuestion, len(q.Choices))
	}

	seen := make(map[string]struct{}, len(q.Choices))
	for _, c := range q.Choices {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: duplicate choice %q", ErrMalformedQuestion, c)
		}
		seen[c] = struct{}{}
	}

	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) || q.Choices[q.CorrectIndex] != q.CorrectAnswer {
		return fmt.Errorf("%w: correct answer %q not at index %d", ErrMalformedQuestion, q.CorrectAnswer, q.CorrectIndex)
	}

	return nil
}

// IsCorrect reports whether choice is the index of the correct answer.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.CorrectIndex
}
