package service

import (
	"strings"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/morph"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/textnorm"
)

// Tokenizer splits a sentence into morphemes.
type Tokenizer interface {
	Tokenize(text string) []morph.Token
}

var bracketPairs = [][2]string{
	{"「", "」"},
	{"『", "』"},
	{"【", "】"},
	{"[", "]"},
}

const trimPunct = "。、．，.,!?！？「」『』()（）\"'"

// maxMorphemeRun bounds how many morphemes one word may span, e.g. 勉強+し.
const maxMorphemeRun = 4

// BlankLocator finds a word inside its example sentence and blanks it out.
type BlankLocator struct {
	tokenizer Tokenizer
}

// NewBlankLocator creates a locator. A nil tokenizer disables the
// morphological match.
func NewBlankLocator(tokenizer Tokenizer) *BlankLocator {
	return &BlankLocator{tokenizer: tokenizer}
}

// Locate returns sentence with w replaced by entities.BlankMarker. Matches are
// tried in order: bracket-marked, whitespace-delimited, morphological (a
// conjugated form whose dictionary form is w), raw substring.
func (l *BlankLocator) Locate(sentence string, w entities.Word) (string, bool) {
	sentence = textnorm.Fold(sentence)
	if sentence == "" {
		return "", false
	}

	targets := blankTargets(w)

	for _, try := range []func(string, []string) (int, int, bool){
		locateBracketed,
		locateDelimited,
		l.locateMorpheme,
		locateSubstring,
	} {
		if start, end, ok := try(sentence, targets); ok {
			return sentence[:start] + entities.BlankMarker + sentence[end:], true
		}
	}

	return "", false
}

func blankTargets(w entities.Word) []string {
	targets := []string{w.Surface}
	if w.KanjiCandidate != "" && w.KanjiCandidate != w.Surface {
		targets = append(targets, w.KanjiCandidate)
	}
	if w.Reading != w.Surface {
		targets = append(targets, w.Reading)
	}
	return targets
}

// locateBracketed matches a bracket pair whose content is exactly a target.
// The brackets are replaced along with the word.
func locateBracketed(sentence string, targets []string) (int, int, bool) {
	for _, pair := range bracketPairs {
		for _, t := range targets {
			needle := pair[0] + t + pair[1]
			if i := strings.Index(sentence, needle); i >= 0 {
				return i, i + len(needle), true
			}
		}
	}
	return 0, 0, false
}

// locateDelimited matches a whitespace-separated field equal to a target,
// ignoring surrounding punctuation.
func locateDelimited(sentence string, targets []string) (int, int, bool) {
	offset := 0
	for _, field := range strings.Fields(sentence) {
		pos := strings.Index(sentence[offset:], field) + offset
		offset = pos + len(field)

		core := strings.Trim(field, trimPunct)
		if core == "" {
			continue
		}
		for _, t := range targets {
			if core == t {
				start := pos + strings.Index(field, core)
				return start, start + len(core), true
			}
		}
	}
	return 0, 0, false
}

// locateMorpheme matches a run of morphemes whose surfaces, with the last one
// replaced by its dictionary form, spell a target.
func (l *BlankLocator) locateMorpheme(sentence string, targets []string) (int, int, bool) {
	if l.tokenizer == nil {
		return 0, 0, false
	}

	tokens := l.tokenizer.Tokenize(sentence)
	starts := make([]int, len(tokens))
	offset := 0
	for i, tok := range tokens {
		pos := strings.Index(sentence[offset:], tok.Surface)
		if pos < 0 {
			return 0, 0, false
		}
		starts[i] = offset + pos
		offset = starts[i] + len(tok.Surface)
	}

	for i := range tokens {
		prefix := ""
		for j := i; j < len(tokens) && j-i < maxMorphemeRun; j++ {
			spelled := prefix + tokens[j].BaseForm
			for _, t := range targets {
				if spelled == t {
					return starts[i], starts[j] + len(tokens[j].Surface), true
				}
			}
			prefix += tokens[j].Surface
		}
	}

	return 0, 0, false
}

func locateSubstring(sentence string, targets []string) (int, int, bool) {
	for _, t := range targets {
		if t == "" {
			continue
		}
		if i := strings.Index(sentence, t); i >= 0 {
			return i, i + len(t), true
		}
	}
	return 0, 0, false
}
