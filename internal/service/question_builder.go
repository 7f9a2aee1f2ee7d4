package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/samber/lo"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

// Prompt templates shown to learners.
const (
	promptReading        = "%s의 발음은?"
	promptMeaning        = "%s의 뜻은?"
	promptKrToJp         = "'%s'의 일본어(한자)는?"
	promptFillBlank      = "빈칸에 들어갈 알맞은 단어는?"
	promptFillBlankPlain = "빈칸에 들어갈 알맞은 단어를 고르세요. (뜻: %s)"
)

// QuestionBuilder turns a word into a multiple-choice question.
type QuestionBuilder struct {
	distractors        *DistractorSelector
	blanks             *BlankLocator
	rng                *rand.Rand
	minKanjiConfidence float64
}

// NewQuestionBuilder creates a builder. A nil rng is replaced by a time-seeded source.
func NewQuestionBuilder(
	distractors *DistractorSelector,
	blanks *BlankLocator,
	rng *rand.Rand,
	minKanjiConfidence float64,
) *QuestionBuilder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if blanks == nil {
		blanks = NewBlankLocator(nil)
	}
	return &QuestionBuilder{
		distractors:        distractors,
		blanks:             blanks,
		rng:                rng,
		minKanjiConfidence: minKanjiConfidence,
	}
}

// Build creates one question of type qt for w. Distractors come from words of
// the same part of speech in pool. An *InsufficientCandidatesError means the
// word cannot be asked and must not be replaced by a shorter question.
func (b *QuestionBuilder) Build(w entities.Word, qt entities.QuestionType, pool WordSource) (entities.Question, error) {
	peers := lo.Filter(pool.SamePOS(w.POS), func(p entities.Word, _ int) bool {
		return p.ID() != w.ID()
	})
	display := w.DisplayForm(b.minKanjiConfidence)

	q := entities.Question{
		Type:    qt,
		WordID:  w.ID(),
		Surface: w.Surface,
		Reading: w.Reading,
		Meaning: w.Meaning,
		Level:   w.Level,
		POS:     w.POS,
	}

	var (
		wrongs []string
		err    error
	)
	switch qt {
	case entities.QuestionReading:
		q.Prompt = fmt.Sprintf(promptReading, display)
		q.CorrectAnswer = w.Reading
		wrongs, err = b.distractors.PickReading(
			lo.Map(peers, func(p entities.Word, _ int) string { return p.Reading }),
			w.Reading, w.POS, w.Surface, DistractorCount,
		)
	case entities.QuestionMeaning:
		q.Prompt = fmt.Sprintf(promptMeaning, display)
		q.CorrectAnswer = w.Meaning
		wrongs, err = b.distractors.PickUniform(
			lo.Map(peers, func(p entities.Word, _ int) string { return p.Meaning }),
			w.Meaning, DistractorCount,
		)
	case entities.QuestionKrToJp:
		q.Prompt = fmt.Sprintf(promptKrToJp, w.Meaning)
		q.CorrectAnswer = w.Surface
		wrongs, err = b.distractors.PickUniform(
			lo.Map(peers, func(p entities.Word, _ int) string { return p.Surface }),
			w.Surface, DistractorCount,
		)
	case entities.QuestionFillBlank:
		if template, ok := b.blanks.Locate(w.Example, w); ok {
			q.Prompt = promptFillBlank
			q.Template = template
		} else {
			q.Prompt = fmt.Sprintf(promptFillBlankPlain, w.Meaning)
		}
		q.CorrectAnswer = w.Surface
		wrongs, err = b.distractors.PickUniform(
			lo.Map(peers, func(p entities.Word, _ int) string { return p.Surface }),
			w.Surface, DistractorCount,
		)
	default:
		return entities.Question{}, fmt.Errorf("%w: %q", entities.ErrUnknownQuestionType, qt)
	}

	if err != nil {
		var insufficient *InsufficientCandidatesError
		if errors.As(err, &insufficient) {
			insufficient.Word = w.ID()
			insufficient.POS = w.POS
			insufficient.Type = qt
		}
		return entities.Question{}, err
	}

	q.Choices, q.CorrectIndex = b.buildChoices(q.CorrectAnswer, wrongs)

	return q, nil
}

// buildChoices shuffles the correct answer in among the distractors.
func (b *QuestionBuilder) buildChoices(correct string, distractors []string) ([]string, int) {
	choices := make([]string, 0, 1+len(distractors))
	choices = append(choices, distractors...)
	choices = append(choices, correct)

	b.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	correctIndex := 0
	for i, c := range choices {
		if c == correct {
			correctIndex = i
			break
		}
	}

	return choices, correctIndex
}
