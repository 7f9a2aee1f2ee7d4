// Package textnorm canonicalizes raw strings from the word table so that level
// tags and kana endings can be compared reliably.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	katakanaFoldStart = 'ァ' // U+30A1
	katakanaFoldEnd   = 'ヶ' // U+30F6
	katakanaOffset    = 0x60

	hiraganaBlockStart = 0x3040
	hiraganaBlockEnd   = 0x309F
	katakanaBlockStart = 0x30A0
	katakanaBlockEnd   = 0x30FF
)

var (
	levelTokenRe = regexp.MustCompile(`N[1-5]`)
	bareDigitRe  = regexp.MustCompile(`^[1-5]$`)
)

// Fold applies Unicode compatibility normalization (NFKC) and trims surrounding whitespace.
func Fold(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(norm.NFKC.String(raw))
}

// NormalizeLevel collapses a raw level tag ("n5", "ｎ５", " N 3 ", "4") into
// one of "N1".."N5". Anything else yields "".
func NormalizeLevel(raw string) string {
	s := strings.ToUpper(Fold(raw))
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return ""
	}

	if tag := levelTokenRe.FindString(s); tag != "" {
		return tag
	}
	if bareDigitRe.MatchString(s) {
		return "N" + s
	}

	return ""
}

// ToPhoneticBaseForm normalizes raw and folds katakana onto hiragana.
// Other characters are left untouched.
func ToPhoneticBaseForm(raw string) string {
	s := Fold(raw)
	if s == "" {
		return ""
	}

	return strings.Map(func(r rune) rune {
		if r >= katakanaFoldStart && r <= katakanaFoldEnd {
			return r - katakanaOffset
		}
		return r
	}, s)
}

// LastNCharsFolded returns the trailing n characters of the phonetic base form
// of raw, or the whole form when it is shorter than n.
func LastNCharsFolded(raw string, n int) string {
	if n <= 0 {
		return ""
	}

	r := []rune(ToPhoneticBaseForm(raw))
	if len(r) <= n {
		return string(r)
	}

	return string(r[len(r)-n:])
}

// LastChar returns the final character of the phonetic base form.
func LastChar(raw string) string {
	return LastNCharsFolded(raw, 1)
}

// ExtractTrailingKanaRun returns the kana run at the end of word, folded to
// hiragana. For 食べる it is "べる"; for 本 it is "".
func ExtractTrailingKanaRun(word string) string {
	r := []rune(Fold(word))

	i := len(r)
	for i > 0 && IsKana(r[i-1]) {
		i--
	}

	return ToPhoneticBaseForm(string(r[i:]))
}

// IsKana reports whether r lies in the hiragana or katakana block.
func IsKana(r rune) bool {
	return (r >= hiraganaBlockStart && r <= hiraganaBlockEnd) ||
		(r >= katakanaBlockStart && r <= katakanaBlockEnd)
}

// HasIdeograph reports whether s contains at least one Han character.
func HasIdeograph(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// VowelRow groups the final kana of s by its vowel: "a", "i", "u", "e", "o"
// or "n". Small kana, the long vowel mark and non-kana yield "other".
func VowelRow(s string) string {
	last := LastChar(s)
	if last == "" {
		return "other"
	}
	if row, ok := vowelRows[[]rune(last)[0]]; ok {
		return row
	}
	return "other"
}

var vowelRows = buildVowelRows(map[string]string{
	"a": "あかさたなはまやらわがざだばぱ",
	"i": "いきしちにひみりぎじぢびぴ",
	"u": "うくすつぬふむゆるぐずづぶぷゔ",
	"e": "えけせてねへめれげぜでべぺ",
	"o": "おこそとのほもよろをごぞどぼぽ",
	"n": "ん",
})

func buildVowelRows(rows map[string]string) map[rune]string {
	out := make(map[rune]string)
	for row, chars := range rows {
		for _, r := range chars {
			out[r] = row
		}
	}
	return out
}
