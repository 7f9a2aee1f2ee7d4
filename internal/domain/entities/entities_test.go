package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePOS(t *testing.T) {
	tests := []struct {
		raw  string
		want POS
	}{
		{raw: "v", want: POSVerb},
		{raw: " Verb ", want: POSVerb},
		{raw: "adj_i", want: POSAdjI},
		{raw: "i_adj", want: POSAdjI},
		{raw: "ADJ-I", want: POSAdjI},
		{raw: "い형용사", want: POSAdjI},
		{raw: "adj_na", want: POSAdjNa},
		{raw: "명사", want: POSNoun},
		{raw: "adv", want: POSAdverb},
		{raw: "Suffix", want: POS("suffix")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePOS(tt.raw))
		})
	}
}

func TestPOSGroupTags(t *testing.T) {
	assert.Nil(t, GroupAll.Tags(nil))
	assert.Equal(t, []POS{POSAdjI, POSAdjNa}, GroupAdjective.Tags(nil))
	assert.Equal(t, OtherTags, GroupOther.Tags(nil))
	assert.Equal(t, []POS{POSAdverb}, GroupOther.Tags([]POS{POSAdverb, POSNoun}))
}

func TestLevelHarder(t *testing.T) {
	next, ok := LevelN5.Harder()
	require.True(t, ok)
	assert.Equal(t, LevelN4, next)

	_, ok = LevelN1.Harder()
	assert.False(t, ok)
}

func TestNewWord(t *testing.T) {
	w, err := NewWord(WordInput{
		Level:   "ｎ５",
		POS:     "v",
		Surface: " 食べる ",
		Reading: "たべる",
		Meaning: " 먹다 ",
	})
	require.NoError(t, err)
	assert.Equal(t, LevelN5, w.Level)
	assert.Equal(t, POSVerb, w.POS)
	assert.Equal(t, "食べる", w.ID())
	assert.Equal(t, "먹다", w.Meaning)
	assert.True(t, w.HasIdeograph())

	for _, in := range []WordInput{
		{Surface: "", Reading: "a", Meaning: "b"},
		{Surface: "a", Reading: "  ", Meaning: "b"},
		{Surface: "a", Reading: "b", Meaning: ""},
	} {
		_, err := NewWord(in)
		assert.ErrorIs(t, err, ErrInvalidWord)
	}
}

func TestWordDisplayForm(t *testing.T) {
	w := Word{Surface: "たべる", KanjiCandidate: "食べる", KanjiConfidence: 0.9, DisplayKanji: true}
	assert.Equal(t, "食べる", w.DisplayForm(0.8))
	assert.Equal(t, "たべる", w.DisplayForm(0.95))

	w.DisplayKanji = false
	assert.Equal(t, "たべる", w.DisplayForm(0))
}

func TestFilterKey(t *testing.T) {
	verb := Word{Level: LevelN5, POS: POSVerb, Surface: "食べる"}
	adv := Word{Level: LevelN4, POS: POSAdverb, Surface: "とても"}

	assert.Equal(t, "all", FilterKey{}.GroupKey())
	assert.Equal(t, "N5", FilterKey{Level: LevelN5, Group: GroupAll}.GroupKey())
	assert.Equal(t, "N5-verb", FilterKey{Level: LevelN5, Group: GroupVerb}.GroupKey())

	other := FilterKey{Level: LevelN5, Group: GroupOther}
	assert.Equal(t, "N5-other", other.GroupKey())
	assert.Equal(t, "N5-other", FilterKey{Level: LevelN5, Group: GroupOther, EnabledTags: OtherTags}.GroupKey())
	particles := FilterKey{Level: LevelN5, Group: GroupOther, EnabledTags: []POS{POSParticle}}
	adverbs := FilterKey{Level: LevelN5, Group: GroupOther, EnabledTags: []POS{POSAdverb}}
	assert.Equal(t, "N5-other+particle", particles.GroupKey())
	assert.NotEqual(t, particles.GroupKey(), adverbs.GroupKey())
	assert.Equal(t, "N5-other+adverb+particle",
		FilterKey{Level: LevelN5, Group: GroupOther, EnabledTags: []POS{POSParticle, POSAdverb}}.GroupKey())

	key, err := ParseLedgerKey(LedgerKey{Group: particles.GroupKey(), Type: QuestionReading}.String())
	require.NoError(t, err)
	assert.Equal(t, "N5-other+particle", key.Group)

	assert.True(t, FilterKey{Level: LevelN5}.Matches(verb))
	assert.False(t, FilterKey{Level: LevelN5}.Matches(adv))
	assert.True(t, FilterKey{Group: GroupOther}.Matches(adv))
	assert.False(t, FilterKey{Group: GroupOther, EnabledTags: []POS{POSParticle}}.Matches(adv))
	assert.False(t, FilterKey{Group: GroupNoun}.Matches(verb))
}

func TestExclusionLedger(t *testing.T) {
	l := NewExclusionLedger()
	key := LedgerKey{Group: "N5", Type: QuestionReading}
	other := LedgerKey{Group: "N5", Type: QuestionMeaning}

	l.MarkMastered(key, "食べる")
	l.MarkExcluded(key, "飲む")
	l.MarkSeen(key, "見る", "食べる")
	require.NoError(t, l.Mark(other, SetMastered, "本"))

	blocked := l.Blocked(key, DefaultExclusionPolicy())
	assert.Len(t, blocked, 2)
	assert.True(t, blocked.Has("食べる"))
	assert.True(t, blocked.Has("飲む"))
	assert.False(t, blocked.Has("見る"))

	all := l.Blocked(key, ExclusionPolicy{Mastered: true, ExcludedWrong: true, Seen: true})
	assert.Len(t, all, 3)

	assert.Empty(t, l.Blocked(key, ExclusionPolicy{}))
	assert.False(t, l.Blocked(key, DefaultExclusionPolicy()).Has("本"))

	l.Reset(key)
	assert.Empty(t, l.Blocked(key, ExclusionPolicy{Mastered: true, ExcludedWrong: true, Seen: true}))
	assert.True(t, l.Blocked(other, DefaultExclusionPolicy()).Has("本"))

	assert.ErrorIs(t, l.Mark(key, LedgerSet("bogus"), "x"), ErrUnknownLedgerSet)
}

func TestLedgerKeyRoundTrip(t *testing.T) {
	key := LedgerKey{Group: "N5-verb", Type: QuestionKrToJp}
	assert.Equal(t, "N5-verb__kr2jp", key.String())

	parsed, err := ParseLedgerKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, parsed)

	_, err = ParseLedgerKey("N5")
	assert.Error(t, err)
}

func TestQuizAnswers(t *testing.T) {
	q := NewQuiz([]Question{
		{Choices: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		{Choices: []string{"e", "f", "g", "h"}, CorrectIndex: 0},
	})
	assert.Equal(t, []int{NoAnswer, NoAnswer}, q.Answers)
	assert.False(t, q.Complete())

	require.NoError(t, q.Answer(0, 1))
	next, ok := q.NextUnanswered()
	require.True(t, ok)
	assert.Equal(t, 1, next)

	assert.ErrorIs(t, q.Answer(2, 0), ErrQuestionOutOfRange)
	assert.ErrorIs(t, q.Answer(1, 4), ErrChoiceOutOfRange)

	require.NoError(t, q.Answer(1, 3))
	assert.True(t, q.Complete())
	assert.Equal(t, 2, q.Answered())
}

func TestQuizSessionRejectsAnswersAfterSubmit(t *testing.T) {
	s := NewQuizSession(1, FilterKey{Level: LevelN5}, QuestionMeaning, NewQuiz([]Question{
		{Choices: []string{"a", "b", "c", "d"}},
	}), false)
	assert.Equal(t, LedgerKey{Group: "N5", Type: QuestionMeaning}, s.LedgerKey())

	require.NoError(t, s.Answer(0, 2))
	assert.Equal(t, 1, s.Version)

	s.Submit()
	assert.ErrorIs(t, s.Answer(0, 1), ErrQuizSubmitted)
}

func TestQuestionValidate(t *testing.T) {
	ok := Question{Choices: []string{"a", "b", "c", "d"}, CorrectIndex: 2, CorrectAnswer: "c"}
	assert.NoError(t, ok.Validate())

	dup := Question{Choices: []string{"a", "a", "c", "d"}, CorrectIndex: 2, CorrectAnswer: "c"}
	assert.ErrorIs(t, dup.Validate(), ErrMalformedQuestion)

	short := Question{Choices: []string{"a", "b", "c"}, CorrectIndex: 0, CorrectAnswer: "a"}
	assert.ErrorIs(t, short.Validate(), ErrMalformedQuestion)

	misplaced := Question{Choices: []string{"a", "b", "c", "d"}, CorrectIndex: 0, CorrectAnswer: "c"}
	assert.ErrorIs(t, misplaced.Validate(), ErrMalformedQuestion)
}
