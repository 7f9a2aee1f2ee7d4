package entities

import (
	"strings"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/textnorm"
)

// POS is a canonical part-of-speech tag.
type POS string

const (
	POSNoun         POS = "noun"
	POSVerb         POS = "verb"
	POSAdjI         POS = "adj-i"
	POSAdjNa        POS = "adj-na"
	POSAdverb       POS = "adverb"
	POSParticle     POS = "particle"
	POSConjunction  POS = "conjunction"
	POSInterjection POS = "interjection"
	POSPronoun      POS = "pronoun"
	POSCounter      POS = "counter"
	POSExpression   POS = "expression"
)

// posAliases lists every spelling seen in word tables per canonical tag.
var posAliases = buildPOSAliases(map[POS][]string{
	POSNoun:         {"n", "noun", "명사", "名詞"},
	POSVerb:         {"v", "verb", "동사", "動詞"},
	POSAdjI:         {"adj", "adj_i", "adj-i", "i_adj", "i-adj", "い형용사", "형용사", "形容詞"},
	POSAdjNa:        {"adj_na", "adj-na", "na_adj", "na-adj", "な형용사", "형용동사", "形容動詞"},
	POSAdverb:       {"adv", "adverb", "부사", "副詞"},
	POSParticle:     {"prt", "particle", "조사", "助詞"},
	POSConjunction:  {"conj", "conjunction", "접속사", "接続詞"},
	POSInterjection: {"int", "interj", "interjection", "감탄사", "感動詞"},
	POSPronoun:      {"pron", "pronoun", "대명사", "代名詞"},
	POSCounter:      {"ctr", "counter", "조수사", "助数詞"},
	POSExpression:   {"exp", "expr", "expression", "표현"},
})

func buildPOSAliases(aliases map[POS][]string) map[string]POS {
	out := make(map[string]POS)
	for pos, spellings := range aliases {
		for _, s := range spellings {
			out[s] = pos
		}
	}
	return out
}

// ParsePOS lower-cases raw and maps it through the alias table.
// Unknown tags are kept as their normalized text.
func ParsePOS(raw string) POS {
	key := strings.ToLower(textnorm.Fold(raw))
	key = strings.Join(strings.Fields(key), "")
	if p, ok := posAliases[key]; ok {
		return p
	}
	return POS(key)
}

// ShapeSensitive reports whether reading distractors for this POS must share
// the inflectional ending of the correct answer.
func (p POS) ShapeSensitive() bool {
	switch p {
	case POSVerb, POSAdjI, POSAdjNa:
		return true
	default:
		return false
	}
}

func (p POS) String() string {
	return string(p)
}

// POSGroup is the coarse bucket a learner picks in the menu.
type POSGroup string

const (
	GroupAll       POSGroup = "all"
	GroupNoun      POSGroup = "noun"
	GroupVerb      POSGroup = "verb"
	GroupAdjective POSGroup = "adjective"
	GroupOther     POSGroup = "other"
)

// POSGroups lists the selectable groups in menu order.
var POSGroups = []POSGroup{GroupAll, GroupNoun, GroupVerb, GroupAdjective, GroupOther}

// OtherTags are the sub-tags of GroupOther.
var OtherTags = []POS{
	POSAdverb,
	POSParticle,
	POSConjunction,
	POSInterjection,
	POSPronoun,
	POSCounter,
	POSExpression,
}

// ParsePOSGroup returns the group named raw, or GroupAll when it is unknown.
func ParsePOSGroup(raw string) POSGroup {
	g := POSGroup(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range POSGroups {
		if g == known {
			return g
		}
	}
	return GroupAll
}

// Tags returns the canonical tags covered by g. For GroupOther, enabled narrows
// the bucket to the listed sub-tags when it is not empty. GroupAll returns nil,
// meaning no restriction.
func (g POSGroup) Tags(enabled []POS) []POS {
	switch g {
	case GroupNoun:
		return []POS{POSNoun}
	case GroupVerb:
		return []POS{POSVerb}
	case GroupAdjective:
		return []POS{POSAdjI, POSAdjNa}
	case GroupOther:
		if len(enabled) == 0 {
			return append([]POS(nil), OtherTags...)
		}
		var tags []POS
		for _, p := range enabled {
			for _, o := range OtherTags {
				if p == o {
					tags = append(tags, p)
					break
				}
			}
		}
		return tags
	default:
		return nil
	}
}
