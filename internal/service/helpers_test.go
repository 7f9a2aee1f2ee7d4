package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/repository"
)

type nounRow struct {
	surface, reading, meaning string
}

var kanjiNouns = []nounRow{
	{"本", "ほん", "책"},
	{"山", "やま", "산"},
	{"川", "かわ", "강"},
	{"海", "うみ", "바다"},
	{"空", "そら", "하늘"},
	{"花", "はな", "꽃"},
	{"犬", "いぬ", "개"},
	{"猫", "ねこ", "고양이"},
	{"車", "くるま", "자동차"},
	{"雨", "あめ", "비"},
	{"水", "みず", "물"},
	{"木", "き", "나무"},
	{"魚", "さかな", "물고기"},
	{"肉", "にく", "고기"},
	{"駅", "えき", "역"},
}

var kanaNouns = []nounRow{
	{"りんご", "りんご", "사과"},
	{"テレビ", "てれび", "텔레비전"},
	{"パン", "ぱん", "빵"},
	{"ノート", "のーと", "공책"},
	{"カメラ", "かめら", "카메라"},
}

func word(t *testing.T, level, pos, surface, reading, meaning string) entities.Word {
	t.Helper()
	w, err := entities.NewWord(entities.WordInput{
		Level:   level,
		POS:     pos,
		Surface: surface,
		Reading: reading,
		Meaning: meaning,
	})
	require.NoError(t, err)
	return w
}

func nouns(t *testing.T, level string, rows []nounRow) []entities.Word {
	t.Helper()
	out := make([]entities.Word, 0, len(rows))
	for _, r := range rows {
		out = append(out, word(t, level, "n", r.surface, r.reading, r.meaning))
	}
	return out
}

// numberedNouns returns n kanji nouns with unique surfaces and meanings.
func numberedNouns(t *testing.T, level string, n int) []entities.Word {
	t.Helper()
	out := make([]entities.Word, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, word(t, level, "n",
			fmt.Sprintf("語%s%d", level, i),
			fmt.Sprintf("ご%d", i),
			fmt.Sprintf("단어 %s-%d", level, i),
		))
	}
	return out
}

func newPool(words ...[]entities.Word) *repository.WordPool {
	var all []entities.Word
	for _, ws := range words {
		all = append(all, ws...)
	}
	return repository.NewWordPool(all)
}

func newBuilder(seed int64) *QuestionBuilder {
	return NewQuestionBuilder(
		NewDistractorSelector(rand.New(rand.NewSource(seed))),
		NewBlankLocator(nil),
		rand.New(rand.NewSource(seed+1)),
		0.8,
	)
}

func newQuizService(pool WordSource, cfg QuizConfig, seed int64) *QuizService {
	if cfg.Policy == (entities.ExclusionPolicy{}) {
		cfg.Policy = entities.DefaultExclusionPolicy()
	}
	return NewQuizService(pool, newBuilder(seed), cfg, rand.New(rand.NewSource(seed+2)), nil)
}

// fakeSubmissions clears saved progress on success like the real transaction does.
type fakeSubmissions struct {
	mu       sync.Mutex
	subs     []*entities.Submission
	err      error
	progress *fakeProgress
}

func (f *fakeSubmissions) SaveSubmission(_ context.Context, sub *entities.Submission) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.subs = append(f.subs, sub)
	if f.progress != nil {
		delete(f.progress.saved, sub.Attempt.UserID)
	}
	return int64(len(f.subs)), nil
}

type fakeProgress struct {
	saved map[int64]*entities.QuizSession
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{saved: make(map[int64]*entities.QuizSession)}
}

func (f *fakeProgress) Save(_ context.Context, s *entities.QuizSession) error {
	f.saved[s.UserID] = s
	return nil
}

func (f *fakeProgress) Load(_ context.Context, userID int64) (*entities.QuizSession, error) {
	s, ok := f.saved[userID]
	if !ok {
		return nil, entities.ErrProgressNotFound
	}
	return s, nil
}

func (f *fakeProgress) Clear(_ context.Context, userID int64) error {
	delete(f.saved, userID)
	return nil
}

type fakeLedgers struct {
	loaded *entities.ExclusionLedger
	added  []entities.LedgerMark
	resets []entities.LedgerKey
	err    error
}

func (f *fakeLedgers) Load(context.Context, int64) (*entities.ExclusionLedger, error) {
	if f.loaded == nil {
		return entities.NewExclusionLedger(), nil
	}
	return f.loaded, nil
}

func (f *fakeLedgers) Add(_ context.Context, _ int64, key entities.LedgerKey, set entities.LedgerSet, ids []string) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, entities.LedgerMark{Key: key, Set: set, WordIDs: ids})
	return nil
}

func (f *fakeLedgers) Reset(_ context.Context, _ int64, key entities.LedgerKey) error {
	if f.err != nil {
		return f.err
	}
	f.resets = append(f.resets, key)
	return nil
}

type fakeSettings struct {
	stored map[int64]*entities.UserSettings
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{stored: make(map[int64]*entities.UserSettings)}
}

func (f *fakeSettings) Create(_ context.Context, userID int64) error {
	f.stored[userID] = entities.NewUserSettings(userID)
	return nil
}

func (f *fakeSettings) GetByUserID(_ context.Context, userID int64) (*entities.UserSettings, error) {
	s, ok := f.stored[userID]
	if !ok {
		return nil, entities.ErrSettingsNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSettings) Update(_ context.Context, s *entities.UserSettings) error {
	cp := *s
	f.stored[s.UserID] = &cp
	return nil
}
