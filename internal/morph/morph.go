// Package morph wraps the kagome morphological analyzer.
package morph

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is a single morpheme of a sentence.
type Token struct {
	Surface  string // text as it appears, e.g. "食べ"
	BaseForm string // dictionary form, e.g. "食べる"
	POS      string // primary IPA part of speech, e.g. "動詞"
}

// Analyzer splits Japanese text into morphemes.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// NewAnalyzer loads the IPA dictionary.
func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Tokenize returns the morphemes of text in order. Whitespace tokens are kept
// so that surfaces concatenate back to the input.
func (a *Analyzer) Tokenize(text string) []Token {
	tokens := a.t.Tokenize(text)
	out := make([]Token, 0, len(tokens))

	for _, tok := range tokens {
		if tok.Class == tokenizer.DUMMY {
			continue
		}

		// IPA features: 0 POS, 1-3 sub-POS, 4-5 conjugation, 6 base form, 7-8 reading.
		features := tok.Features()

		base := tok.Surface
		if len(features) > 6 && features[6] != "*" {
			base = features[6]
		}

		pos := ""
		if len(features) > 0 {
			pos = features[0]
		}

		out = append(out, Token{
			Surface:  tok.Surface,
			BaseForm: strings.TrimSpace(base),
			POS:      pos,
		})
	}

	return out
}
