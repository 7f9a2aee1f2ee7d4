package entities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/textnorm"
)

var ErrInvalidWord = errors.New("invalid word")

// WordInput carries the raw column values of one word table row.
type WordInput struct {
	Level              string
	POS                string
	Surface            string
	Reading            string
	Meaning            string
	Example            string
	ExampleTranslation string
	KanjiCandidate     string
	KanjiConfidence    float64
	DisplayKanji       bool
}

// Word is one vocabulary entry of the pool. Values are never mutated after NewWord.
type Word struct {
	Level              Level   // normalized JLPT tier, empty if unclassifiable
	POS                POS     // canonical part of speech
	Surface            string  // written form, may contain kanji
	Reading            string  // kana reading
	Meaning            string  // Korean gloss
	Example            string  // optional example sentence
	ExampleTranslation string  // optional translation of Example
	KanjiCandidate     string  // optional kanji spelling for kana-only rows
	KanjiConfidence    float64 // confidence of KanjiCandidate, 0..1
	DisplayKanji       bool    // whether KanjiCandidate may replace Surface in prompts
}

// NewWord validates and normalizes a table row.
func NewWord(in WordInput) (Word, error) {
	w := Word{
		Level:              ParseLevel(in.Level),
		POS:                ParsePOS(in.POS),
		Surface:            textnorm.Fold(in.Surface),
		Reading:            textnorm.Fold(in.Reading),
		Meaning:            textnorm.Fold(in.Meaning),
		Example:            strings.TrimSpace(in.Example),
		ExampleTranslation: strings.TrimSpace(in.ExampleTranslation),
		KanjiCandidate:     textnorm.Fold(in.KanjiCandidate),
		KanjiConfidence:    in.KanjiConfidence,
		DisplayKanji:       in.DisplayKanji,
	}

	switch {
	case w.Surface == "":
		return Word{}, fmt.Errorf("%w: empty surface form", ErrInvalidWord)
	case w.Reading == "":
		return Word{}, fmt.Errorf("%w: empty reading for %q", ErrInvalidWord, w.Surface)
	case w.Meaning == "":
		return Word{}, fmt.Errorf("%w: empty meaning for %q", ErrInvalidWord, w.Surface)
	}

	return w, nil
}

// ID identifies the word in ledgers and review lists.
func (w Word) ID() string {
	return w.Surface
}

// HasIdeograph reports whether the surface form contains kanji.
func (w Word) HasIdeograph() bool {
	return textnorm.HasIdeograph(w.Surface)
}

// DisplayForm returns the form shown to learners. A kanji candidate replaces
// the surface form only when the row allows it and its confidence reaches minConfidence.
func (w Word) DisplayForm(minConfidence float64) string {
	if w.DisplayKanji && w.KanjiCandidate != "" && w.KanjiConfidence >= minConfidence {
		return w.KanjiCandidate
	}
	return w.Surface
}
