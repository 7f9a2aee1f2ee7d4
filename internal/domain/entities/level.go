package entities

import "github.com/aliskhannn/jlpt-quiz-bot/internal/textnorm"

// Level is a JLPT tier. LevelUnknown marks rows whose level could not be classified.
type Level string

const (
	LevelUnknown Level = ""
	LevelN5      Level = "N5"
	LevelN4      Level = "N4"
	LevelN3      Level = "N3"
	LevelN2      Level = "N2"
	LevelN1      Level = "N1"
)

// Levels lists the tiers from easiest to hardest.
var Levels = []Level{LevelN5, LevelN4, LevelN3, LevelN2, LevelN1}

// ParseLevel normalizes a raw level tag.
func ParseLevel(raw string) Level {
	return Level(textnorm.NormalizeLevel(raw))
}

// Valid reports whether l is one of the five tiers.
func (l Level) Valid() bool {
	switch l {
	case LevelN5, LevelN4, LevelN3, LevelN2, LevelN1:
		return true
	default:
		return false
	}
}

// Harder returns the tier directly above l. N1 has none.
func (l Level) Harder() (Level, bool) {
	switch l {
	case LevelN5:
		return LevelN4, true
	case LevelN4:
		return LevelN3, true
	case LevelN3:
		return LevelN2, true
	case LevelN2:
		return LevelN1, true
	default:
		return LevelUnknown, false
	}
}

func (l Level) String() string {
	return string(l)
}
