package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

// DefaultQuizLength is the number of questions in a regular quiz.
const DefaultQuizLength = 10

// Outcome tells whether a quiz could be built.
type Outcome int

const (
	// OutcomeReady means Quiz holds the built questions.
	OutcomeReady Outcome = iota
	// OutcomeExhausted means fewer unexcluded words remain than the quiz needs.
	OutcomeExhausted
	// OutcomeNoMatchingWords means none of the requested review words are in the filtered pool.
	OutcomeNoMatchingWords
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReady:
		return "ready"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeNoMatchingWords:
		return "no_matching_words"
	default:
		return "unknown"
	}
}

// QuizResult is the outcome of a build request with the counts behind it.
type QuizResult struct {
	Outcome   Outcome
	Quiz      *entities.Quiz
	Key       entities.LedgerKey
	Total     int // words matching the filter
	Eligible  int // words left after exclusion
	Required  int // questions a full quiz needs
	Requested int // distinct review words requested
	Matched   int // review words found in the filtered pool
}

// QuizConfig tunes quiz assembly.
type QuizConfig struct {
	Length    int
	Policy    entities.ExclusionPolicy
	Promotion map[entities.Level]float64 // share of questions drawn from the next harder level
}

// QuizService assembles quizzes from the word pool.
type QuizService struct {
	words   WordSource
	builder *QuestionBuilder
	cfg     QuizConfig
	logger  *zap.Logger

	rng *rand.Rand
}

// NewQuizService creates a QuizService. A nil rng is replaced by a time-seeded
// source and a nil logger by a no-op one.
func NewQuizService(
	words WordSource,
	builder *QuestionBuilder,
	cfg QuizConfig,
	rng *rand.Rand,
	logger *zap.Logger,
) *QuizService {
	if cfg.Length <= 0 {
		cfg.Length = DefaultQuizLength
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{
		words:   words,
		builder: builder,
		cfg:     cfg,
		logger:  logger,
		rng:     rng,
	}
}

// Length returns the size of a regular quiz.
func (s *QuizService) Length() int {
	return s.cfg.Length
}

// BuildQuiz samples a full quiz of type qt from the words matching filter,
// skipping words the ledger blocks for this filter and type. When too few
// words remain the result is OutcomeExhausted and no quiz is built.
func (s *QuizService) BuildQuiz(
	qt entities.QuestionType,
	filter entities.FilterKey,
	ledger *entities.ExclusionLedger,
) (QuizResult, error) {
	n := s.cfg.Length
	key := entities.LedgerKey{Group: filter.GroupKey(), Type: qt}
	blocked := s.blocked(ledger, key)

	candidates := s.candidates(qt, filter)
	remaining := withoutBlocked(candidates, blocked)

	res := QuizResult{
		Key:      key,
		Total:    len(candidates),
		Eligible: len(remaining),
		Required: n,
	}

	if len(remaining) < n {
		res.Outcome = OutcomeExhausted
		s.logger.Debug("quiz exhausted",
			zap.String("key", key.String()),
			zap.Int("total", res.Total),
			zap.Int("eligible", res.Eligible),
		)
		return res, nil
	}

	picked := s.sample(remaining, n)
	picked = s.promote(picked, qt, filter, blocked)
	s.shuffle(picked)

	quiz, err := s.buildQuestions(picked, qt)
	if err != nil {
		return QuizResult{}, err
	}

	res.Outcome = OutcomeReady
	res.Quiz = quiz

	s.logger.Debug("quiz built",
		zap.String("key", key.String()),
		zap.Int("questions", quiz.Len()),
		zap.Int("eligible", res.Eligible),
	)

	return res, nil
}

// BuildQuizFromWords builds a review quiz from explicit word identifiers,
// ignoring the ledger. Identifiers outside the filtered pool are skipped.
// A limit of zero or less means no cap.
func (s *QuizService) BuildQuizFromWords(
	ids []string,
	qt entities.QuestionType,
	filter entities.FilterKey,
	limit int,
) (QuizResult, error) {
	requested := lo.Uniq(ids)
	allowed := lo.Associate(s.candidates(qt, filter), func(w entities.Word) (string, struct{}) {
		return w.ID(), struct{}{}
	})

	matched := lo.Filter(s.words.ByIDs(requested), func(w entities.Word, _ int) bool {
		_, ok := allowed[w.ID()]
		return ok
	})

	res := QuizResult{
		Key:       entities.LedgerKey{Group: filter.GroupKey(), Type: qt},
		Total:     len(allowed),
		Required:  len(matched),
		Requested: len(requested),
		Matched:   len(matched),
	}

	if len(matched) == 0 {
		res.Outcome = OutcomeNoMatchingWords
		return res, nil
	}

	s.shuffle(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	res.Required = len(matched)

	quiz, err := s.buildQuestions(matched, qt)
	if err != nil {
		return QuizResult{}, err
	}

	res.Outcome = OutcomeReady
	res.Quiz = quiz

	return res, nil
}

// candidates returns the words matching filter. Reading quizzes only use words
// written with kanji.
func (s *QuizService) candidates(qt entities.QuestionType, filter entities.FilterKey) []entities.Word {
	words := s.words.Filter(filter)
	if qt != entities.QuestionReading {
		return words
	}
	return lo.Filter(words, func(w entities.Word, _ int) bool {
		return w.HasIdeograph()
	})
}

func (s *QuizService) blocked(ledger *entities.ExclusionLedger, key entities.LedgerKey) entities.WordSet {
	if ledger == nil {
		return entities.WordSet{}
	}
	return ledger.Blocked(key, s.cfg.Policy)
}

// promote swaps part of picked for words from the next harder level, with the
// configured probability per question. Swapped-in words obey the same exclusions.
func (s *QuizService) promote(
	picked []entities.Word,
	qt entities.QuestionType,
	filter entities.FilterKey,
	blocked entities.WordSet,
) []entities.Word {
	ratio := s.cfg.Promotion[filter.Level]
	if ratio <= 0 {
		return picked
	}
	harder, ok := filter.Level.Harder()
	if !ok {
		return picked
	}

	want := 0
	for range picked {
		if s.rng.Float64() < ratio {
			want++
		}
	}
	if want == 0 {
		return picked
	}

	pool := withoutBlocked(s.candidates(qt, filter.WithLevel(harder)), blocked)
	chosen := lo.Associate(picked, func(w entities.Word) (string, struct{}) {
		return w.ID(), struct{}{}
	})
	pool = lo.Filter(pool, func(w entities.Word, _ int) bool {
		_, dup := chosen[w.ID()]
		return !dup
	})
	if len(pool) == 0 {
		return picked
	}

	extra := s.sample(pool, min(want, len(pool)))
	out := append([]entities.Word(nil), picked[:len(picked)-len(extra)]...)
	out = append(out, extra...)

	s.logger.Debug("soft promotion",
		zap.String("from", filter.Level.String()),
		zap.String("to", harder.String()),
		zap.Int("promoted", len(extra)),
	)

	return out
}

func (s *QuizService) buildQuestions(words []entities.Word, qt entities.QuestionType) (*entities.Quiz, error) {
	questions := make([]entities.Question, 0, len(words))
	for _, w := range words {
		q, err := s.builder.Build(w, qt, s.words)
		if err != nil {
			s.logger.Warn("failed to build question",
				zap.String("word", w.ID()),
				zap.String("type", string(qt)),
				zap.Error(err),
			)
			return nil, fmt.Errorf("build question for %q: %w", w.ID(), err)
		}
		questions = append(questions, q)
	}
	return entities.NewQuiz(questions), nil
}

// sample returns n words chosen uniformly without replacement.
func (s *QuizService) sample(words []entities.Word, n int) []entities.Word {
	out := append([]entities.Word(nil), words...)
	s.shuffle(out)
	return out[:n]
}

func (s *QuizService) shuffle(words []entities.Word) {
	s.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}

func withoutBlocked(words []entities.Word, blocked entities.WordSet) []entities.Word {
	if len(blocked) == 0 {
		return words
	}
	return lo.Filter(words, func(w entities.Word, _ int) bool {
		return !blocked.Has(w.ID())
	})
}
