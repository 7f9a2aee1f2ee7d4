package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/textnorm"
)

var ErrInsufficientCandidates = errors.New("insufficient distractor candidates")

// InsufficientCandidatesError is returned when fewer than the needed number of
// distinct distractors exist. It signals a data problem in the word table.
type InsufficientCandidatesError struct {
	Word      string
	POS       entities.POS
	Type      entities.QuestionType
	Available int
	Need      int
}

func (e *InsufficientCandidatesError) Error() string {
	return fmt.Sprintf("%s: word %q (pos %q, type %q): %d available, %d needed",
		ErrInsufficientCandidates, e.Word, e.POS, e.Type, e.Available, e.Need)
}

func (e *InsufficientCandidatesError) Unwrap() error {
	return ErrInsufficientCandidates
}

// DistractorCount is the number of wrong options per question.
const DistractorCount = entities.ChoiceCount - 1

const irregularVerbSuffix = "する"

// Reading candidate scores.
const (
	scoreIrregularMatch = 100
	scoreIrregularMiss  = -50
	scoreSameSuffix2    = 10
	scoreSameSuffix1    = 3
	scoreSameVowelRow   = 1
)

// DistractorSelector picks wrong answers for a question.
type DistractorSelector struct {
	rng *rand.Rand
}

// NewDistractorSelector creates a selector drawing from rng. A nil rng is
// replaced by a time-seeded source.
func NewDistractorSelector(rng *rand.Rand) *DistractorSelector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &DistractorSelector{rng: rng}
}

// PickUniform returns k distinct candidates other than correct, chosen uniformly.
func (s *DistractorSelector) PickUniform(candidates []string, correct string, k int) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}
	cands := prepareCandidates(candidates, correct, textnorm.Fold)
	if len(cands) < k {
		return nil, &InsufficientCandidatesError{Available: len(cands), Need: k}
	}

	s.shuffle(cands)
	return cands[:k], nil
}

// PickReading returns k distinct readings other than correct.
//
// For verbs and adjectives, and for any word whose surface and reading both end
// in い, candidates sharing the inflectional ending of sourceWord come first:
// same trailing two kana, then same trailing kana, then the rest ranked by
// score. Other parts of speech get distractors with distinct final characters.
func (s *DistractorSelector) PickReading(
	candidates []string,
	correct string,
	pos entities.POS,
	sourceWord string,
	k int,
) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}
	cands := prepareCandidates(candidates, correct, textnorm.ToPhoneticBaseForm)
	if len(cands) < k {
		return nil, &InsufficientCandidatesError{POS: pos, Available: len(cands), Need: k}
	}

	s.shuffle(cands)

	if !pos.ShapeSensitive() && !endsWithI(sourceWord, correct) {
		return spreadByLastChar(cands, k), nil
	}

	return s.rankBySuffix(cands, correct, sourceWord, k), nil
}

type scoredCandidate struct {
	text      string
	sameTail2 bool
	sameTail1 bool
	score     int
}

func (s *DistractorSelector) rankBySuffix(cands []string, correct, sourceWord string, k int) []string {
	target2 := targetSuffix(sourceWord, correct, 2)
	target1 := targetSuffix(sourceWord, correct, 1)
	wantIrregular := target2 == irregularVerbSuffix
	vowel := textnorm.VowelRow(correct)

	scored := make([]scoredCandidate, len(cands))
	for i, c := range cands {
		sc := scoredCandidate{
			text:      c,
			sameTail2: textnorm.LastNCharsFolded(c, 2) == target2,
			sameTail1: textnorm.LastNCharsFolded(c, 1) == target1,
		}
		if wantIrregular {
			if strings.HasSuffix(textnorm.ToPhoneticBaseForm(c), irregularVerbSuffix) {
				sc.score += scoreIrregularMatch
			} else {
				sc.score += scoreIrregularMiss
			}
		}
		if sc.sameTail2 {
			sc.score += scoreSameSuffix2
		}
		if sc.sameTail1 {
			sc.score += scoreSameSuffix1
		}
		if vowel != "other" && textnorm.VowelRow(c) == vowel {
			sc.score += scoreSameVowelRow
		}
		scored[i] = sc
	}

	// cands is already shuffled, so equal scores keep a random order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	picked := make([]string, 0, k)
	used := make(map[string]struct{}, k)
	take := func(keep func(scoredCandidate) bool) {
		for _, sc := range scored {
			if len(picked) == k {
				return
			}
			if _, ok := used[sc.text]; ok || !keep(sc) {
				continue
			}
			used[sc.text] = struct{}{}
			picked = append(picked, sc.text)
		}
	}

	take(func(sc scoredCandidate) bool { return sc.sameTail2 })
	take(func(sc scoredCandidate) bool { return sc.sameTail1 })
	take(func(scoredCandidate) bool { return true })

	return picked
}

// spreadByLastChar prefers candidates whose final characters differ, then fills
// the remainder in the given order.
func spreadByLastChar(cands []string, k int) []string {
	picked := make([]string, 0, k)
	used := make(map[int]struct{}, k)
	lastSeen := make(map[string]struct{}, k)

	for i, c := range cands {
		if len(picked) == k {
			return picked
		}
		last := textnorm.LastChar(c)
		if _, ok := lastSeen[last]; ok || last == "" {
			continue
		}
		lastSeen[last] = struct{}{}
		used[i] = struct{}{}
		picked = append(picked, c)
	}

	for i, c := range cands {
		if len(picked) == k {
			break
		}
		if _, ok := used[i]; ok {
			continue
		}
		picked = append(picked, c)
	}

	return picked
}

// targetSuffix takes the trailing n kana of the inflectional tail of
// sourceWord, or of correct when the tail is shorter than n.
func targetSuffix(sourceWord, correct string, n int) string {
	tail := textnorm.ExtractTrailingKanaRun(sourceWord)
	if utf8.RuneCountInString(tail) >= n {
		return textnorm.LastNCharsFolded(tail, n)
	}
	return textnorm.LastNCharsFolded(correct, n)
}

func endsWithI(sourceWord, reading string) bool {
	if sourceWord == "" {
		return false
	}
	return strings.HasSuffix(textnorm.ToPhoneticBaseForm(sourceWord), "い") &&
		strings.HasSuffix(textnorm.ToPhoneticBaseForm(reading), "い")
}

// prepareCandidates normalizes and deduplicates candidates by key, dropping
// empty strings and anything equal to correct.
func prepareCandidates(candidates []string, correct string, key func(string) string) []string {
	correctKey := key(correct)
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))

	for _, c := range candidates {
		text := textnorm.Fold(c)
		ck := key(text)
		if text == "" || ck == correctKey {
			continue
		}
		if _, dup := seen[ck]; dup {
			continue
		}
		seen[ck] = struct{}{}
		out = append(out, text)
	}

	return out
}

func (s *DistractorSelector) shuffle(xs []string) {
	s.rng.Shuffle(len(xs), func(i, j int) {
		xs[i], xs[j] = xs[j], xs[i]
	})
}
