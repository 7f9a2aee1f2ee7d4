package telegram

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/service"
)

func sampleSession() *entities.QuizSession {
	q := entities.Question{
		Type:          entities.QuestionFillBlank,
		Prompt:        "빈칸에 들어갈 알맞은 단어는?",
		Template:      "毎日" + entities.BlankMarker + "を飲みます。",
		Choices:       []string{"水", "<本>", "山", "川"},
		CorrectAnswer: "水",
		WordID:        "水",
	}
	return entities.NewQuizSession(1, entities.FilterKey{Level: entities.LevelN5}, entities.QuestionFillBlank,
		entities.NewQuiz([]entities.Question{q, q, q}), false)
}

func TestRenderQuestion(t *testing.T) {
	text := renderQuestion(sampleSession(), 1)
	assert.Contains(t, text, "문제 2/3")
	assert.Contains(t, text, entities.BlankMarker)
}

func TestBuildQuestionKeyboard(t *testing.T) {
	s := sampleSession()

	kb := buildQuestionKeyboard(s, 0, false)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Equal(t, "<本>", kb.InlineKeyboard[0][1].Text)
	assert.Equal(t, buildAnswerCallback(quizID(s), 0, 1), *kb.InlineKeyboard[0][1].CallbackData)

	admin := buildQuestionKeyboard(s, 0, true)
	require.Len(t, admin.InlineKeyboard, 3)
	assert.Equal(t, buildExcludeCallback(quizID(s), 0), *admin.InlineKeyboard[2][0].CallbackData)
}

func TestRenderAttempt(t *testing.T) {
	perfect := &entities.Attempt{GroupKey: "N5", Type: entities.QuestionReading, Length: 10, Score: 10}
	assert.Contains(t, renderAttempt(perfect), "10/10")
	assert.Len(t, buildResultKeyboard(perfect).InlineKeyboard, 1)

	missed := &entities.Attempt{
		GroupKey: "N5-verb",
		Type:     entities.QuestionMeaning,
		Length:   10,
		Score:    9,
		Wrong: []entities.WrongAnswer{
			{Number: 4, WordID: "食べる", Reading: "たべる", Meaning: "먹다", Correct: "먹다"},
		},
	}
	text := renderAttempt(missed)
	assert.Contains(t, text, "9/10")
	assert.Contains(t, text, "食べる")
	assert.Contains(t, text, "(미응답)")
	assert.Len(t, buildResultKeyboard(missed).InlineKeyboard, 2)
}

func TestRenderAttempt_TruncatesLongWrongList(t *testing.T) {
	a := &entities.Attempt{Length: 15}
	for i := range 15 {
		a.Wrong = append(a.Wrong, entities.WrongAnswer{Number: i + 1, WordID: fmt.Sprintf("語%d", i)})
	}

	text := renderAttempt(a)
	assert.Contains(t, text, "외 5개")
	assert.NotContains(t, text, "語14")
}

func TestRenderNotReady(t *testing.T) {
	key := entities.LedgerKey{Group: "N5", Type: entities.QuestionReading}

	covered := renderNotReady(service.QuizResult{Outcome: service.OutcomeExhausted, Key: key, Total: 40, Eligible: 3, Required: 10})
	assert.Contains(t, covered, "모두 학습했습니다")

	small := renderNotReady(service.QuizResult{Outcome: service.OutcomeExhausted, Key: key, Total: 6, Eligible: 6, Required: 10})
	assert.Contains(t, small, "6개뿐")

	assert.Equal(t, msgNoReviewMatch, renderNotReady(service.QuizResult{Outcome: service.OutcomeNoMatchingWords}))
}

func TestRenderBuildError(t *testing.T) {
	err := fmt.Errorf("build quiz: %w", &service.InsufficientCandidatesError{
		Word: "猫", POS: entities.POSNoun, Type: entities.QuestionReading, Available: 1, Need: 3,
	})

	text, ok := renderBuildError(err, false)
	require.True(t, ok)
	assert.Equal(t, msgDataError, text)

	text, ok = renderBuildError(err, true)
	require.True(t, ok)
	assert.Contains(t, text, "猫")
	assert.Contains(t, text, "1개 / 필요 3개")

	_, ok = renderBuildError(fmt.Errorf("db down"), true)
	assert.False(t, ok)
}

func TestRenderStats(t *testing.T) {
	assert.Equal(t, msgNoStats, renderStats(nil, nil))

	text := renderStats(
		[]entities.Attempt{{GroupKey: "N4", Type: entities.QuestionKrToJp, Length: 10, Score: 7, CreatedAt: time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)}},
		[]entities.WordStat{{WordID: "会う", Type: entities.QuestionKrToJp, Wrong: 3, Correct: 1}},
	)
	assert.Contains(t, text, "10-01 09:30")
	assert.Contains(t, text, "7/10")
	assert.Contains(t, text, "会う")
}

func TestParseLevelArg(t *testing.T) {
	level, ok := parseLevelArg("n3")
	assert.True(t, ok)
	assert.Equal(t, entities.LevelN3, level)

	level, ok = parseLevelArg("ALL")
	assert.True(t, ok)
	assert.Equal(t, entities.Level(""), level)

	_, ok = parseLevelArg("N7")
	assert.False(t, ok)
}

func TestBuildGroupKeyboard_OtherShowsTags(t *testing.T) {
	s := entities.NewUserSettings(1)
	assert.Len(t, buildGroupKeyboard(s).InlineKeyboard, 3)

	s.Group = entities.GroupOther
	s.EnabledTags = []entities.POS{entities.POSAdverb}
	kb := buildGroupKeyboard(s)
	// two group rows, three tag rows, back row
	require.Len(t, kb.InlineKeyboard, 6)
	assert.Equal(t, "✅ 부사", kb.InlineKeyboard[2][0].Text)
	assert.Equal(t, "조사", kb.InlineKeyboard[2][1].Text)
}
