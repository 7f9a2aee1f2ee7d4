package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

var n5Nouns = entities.FilterKey{Level: entities.LevelN5, Group: entities.GroupNoun}

func TestBuildQuiz_Ready(t *testing.T) {
	pool := newPool(numberedNouns(t, "N5", 25))
	s := newQuizService(pool, QuizConfig{}, 1)

	for i := 0; i < 10; i++ {
		res, err := s.BuildQuiz(entities.QuestionMeaning, n5Nouns, entities.NewExclusionLedger())
		require.NoError(t, err)
		require.Equal(t, OutcomeReady, res.Outcome)
		require.NotNil(t, res.Quiz)
		assert.Equal(t, DefaultQuizLength, res.Quiz.Len())
		assert.Equal(t, 25, res.Eligible)

		ids := map[string]struct{}{}
		for _, q := range res.Quiz.Questions {
			require.NoError(t, q.Validate())
			ids[q.WordID] = struct{}{}
		}
		assert.Len(t, ids, DefaultQuizLength, "every question must use a different word")
		assert.Equal(t, []int{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1}, res.Quiz.Answers)
	}
}

func TestBuildQuiz_ExhaustedWithNineWords(t *testing.T) {
	pool := newPool(numberedNouns(t, "N5", 9))
	s := newQuizService(pool, QuizConfig{}, 1)

	res, err := s.BuildQuiz(entities.QuestionMeaning, n5Nouns, entities.NewExclusionLedger())
	require.NoError(t, err)
	assert.Equal(t, OutcomeExhausted, res.Outcome)
	assert.Nil(t, res.Quiz)
	assert.Equal(t, 9, res.Total)
	assert.Equal(t, 9, res.Eligible)
	assert.Equal(t, 10, res.Required)
}

func TestBuildQuiz_ReadingSkipsKanaOnlyWords(t *testing.T) {
	kanji := nouns(t, "N5", kanjiNouns[:10])
	kana := nouns(t, "N5", kanaNouns)
	s := newQuizService(newPool(kanji, kana), QuizConfig{}, 5)

	for i := 0; i < 10; i++ {
		res, err := s.BuildQuiz(entities.QuestionReading, n5Nouns, nil)
		require.NoError(t, err)
		require.Equal(t, OutcomeReady, res.Outcome)
		for _, q := range res.Quiz.Questions {
			assert.NotContains(t, []string{"りんご", "テレビ", "パン", "ノート", "カメラ"}, q.WordID)
		}
	}

	res, err := s.BuildQuiz(entities.QuestionMeaning, n5Nouns, nil)
	require.NoError(t, err)
	assert.Equal(t, 15, res.Total)

	short := newQuizService(newPool(nouns(t, "N5", kanjiNouns[:9]), kana), QuizConfig{}, 5)
	res, err = short.BuildQuiz(entities.QuestionReading, n5Nouns, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeExhausted, res.Outcome)
	assert.Equal(t, 9, res.Total)
}

func TestBuildQuiz_HonorsLedger(t *testing.T) {
	words := numberedNouns(t, "N5", 12)
	s := newQuizService(newPool(words), QuizConfig{}, 2)
	ledger := entities.NewExclusionLedger()
	key := entities.LedgerKey{Group: n5Nouns.GroupKey(), Type: entities.QuestionMeaning}

	ledger.MarkMastered(key, words[0].ID())
	ledger.MarkExcluded(key, words[1].ID())
	ledger.MarkSeen(key, words[2].ID(), words[3].ID(), words[4].ID())

	res, err := s.BuildQuiz(entities.QuestionMeaning, n5Nouns, ledger)
	require.NoError(t, err)
	require.Equal(t, OutcomeReady, res.Outcome)
	assert.Equal(t, 10, res.Eligible)
	for _, q := range res.Quiz.Questions {
		assert.NotEqual(t, words[0].ID(), q.WordID)
		assert.NotEqual(t, words[1].ID(), q.WordID)
	}

	// a different question type has its own sets
	res, err = s.BuildQuiz(entities.QuestionKrToJp, n5Nouns, ledger)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Eligible)

	ledger.MarkMastered(key, words[5].ID())
	res, err = s.BuildQuiz(entities.QuestionMeaning, n5Nouns, ledger)
	require.NoError(t, err)
	assert.Equal(t, OutcomeExhausted, res.Outcome)
	assert.Equal(t, 9, res.Eligible)

	seenToo := newQuizService(newPool(words), QuizConfig{
		Policy: entities.ExclusionPolicy{Mastered: true, ExcludedWrong: true, Seen: true},
	}, 2)
	res, err = seenToo.BuildQuiz(entities.QuestionMeaning, n5Nouns, ledger)
	require.NoError(t, err)
	assert.Equal(t, OutcomeExhausted, res.Outcome)
	assert.Equal(t, 6, res.Eligible)

	ledger.Reset(key)
	res, err = s.BuildQuiz(entities.QuestionMeaning, n5Nouns, ledger)
	require.NoError(t, err)
	assert.Equal(t, OutcomeReady, res.Outcome)
}

func TestBuildQuiz_PropagatesInsufficientCandidates(t *testing.T) {
	var words []entities.Word
	for _, r := range kanjiNouns[:10] {
		words = append(words, word(t, "N5", "n", r.surface, r.reading, "같은 뜻"))
	}
	s := newQuizService(newPool(words), QuizConfig{}, 1)

	res, err := s.BuildQuiz(entities.QuestionMeaning, n5Nouns, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientCandidates)
	assert.Nil(t, res.Quiz)
}

func TestBuildQuiz_SoftPromotion(t *testing.T) {
	pool := newPool(numberedNouns(t, "N5", 12), numberedNouns(t, "N4", 12))

	always := newQuizService(pool, QuizConfig{
		Promotion: map[entities.Level]float64{entities.LevelN5: 1},
	}, 4)
	res, err := always.BuildQuiz(entities.QuestionMeaning, n5Nouns, nil)
	require.NoError(t, err)
	require.Equal(t, OutcomeReady, res.Outcome)
	for _, q := range res.Quiz.Questions {
		assert.Equal(t, entities.LevelN4, q.Level)
	}

	never := newQuizService(pool, QuizConfig{}, 4)
	res, err = never.BuildQuiz(entities.QuestionMeaning, n5Nouns, nil)
	require.NoError(t, err)
	for _, q := range res.Quiz.Questions {
		assert.Equal(t, entities.LevelN5, q.Level)
	}

	// N1 has nothing above it
	top := newQuizService(newPool(numberedNouns(t, "N1", 12)), QuizConfig{
		Promotion: map[entities.Level]float64{entities.LevelN1: 1},
	}, 4)
	res, err = top.BuildQuiz(entities.QuestionMeaning, entities.FilterKey{Level: entities.LevelN1}, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Quiz.Len())
}

func TestBuildQuizFromWords(t *testing.T) {
	words := numberedNouns(t, "N5", 12)
	s := newQuizService(newPool(words, numberedNouns(t, "N4", 5)), QuizConfig{}, 6)

	ids := []string{words[3].ID(), "missing", words[7].ID(), words[3].ID(), "語N40"}
	res, err := s.BuildQuizFromWords(ids, entities.QuestionMeaning, n5Nouns, 0)
	require.NoError(t, err)
	require.Equal(t, OutcomeReady, res.Outcome)
	assert.Equal(t, 4, res.Requested)
	assert.Equal(t, 2, res.Matched)
	assert.ElementsMatch(t, []string{words[3].ID(), words[7].ID()}, res.Quiz.WordIDs())

	res, err = s.BuildQuizFromWords([]string{"missing", "語N40"}, entities.QuestionMeaning, n5Nouns, 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoMatchingWords, res.Outcome)
	assert.Nil(t, res.Quiz)
	assert.Equal(t, 2, res.Requested)
	assert.Equal(t, 0, res.Matched)

	all := make([]string, 0, len(words))
	for _, w := range words {
		all = append(all, w.ID())
	}
	res, err = s.BuildQuizFromWords(all, entities.QuestionMeaning, n5Nouns, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Quiz.Len())
	assert.Equal(t, 12, res.Matched)

	res, err = s.BuildQuizFromWords(all, entities.QuestionMeaning, n5Nouns, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Quiz.Len())
}

func TestBuildQuizFromWords_IgnoresLedgerButKeepsReadingRule(t *testing.T) {
	kanji := nouns(t, "N5", kanjiNouns)
	kana := nouns(t, "N5", kanaNouns)
	s := newQuizService(newPool(kanji, kana), QuizConfig{}, 8)

	res, err := s.BuildQuizFromWords([]string{"りんご", "本"}, entities.QuestionReading, n5Nouns, 0)
	require.NoError(t, err)
	require.Equal(t, OutcomeReady, res.Outcome)
	assert.Equal(t, []string{"本"}, res.Quiz.WordIDs())

	res, err = s.BuildQuizFromWords([]string{"りんご"}, entities.QuestionReading, n5Nouns, 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoMatchingWords, res.Outcome)
}
