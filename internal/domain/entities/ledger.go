package entities

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownLedgerSet = errors.New("unknown ledger set")

// LedgerKey namespaces exclusion sets by filter group and question type.
type LedgerKey struct {
	Group string
	Type  QuestionType
}

// String renders the key as "<group>__<type>", e.g. "N5__reading".
func (k LedgerKey) String() string {
	return k.Group + "__" + string(k.Type)
}

// ParseLedgerKey is the inverse of LedgerKey.String.
func ParseLedgerKey(raw string) (LedgerKey, error) {
	group, qt, ok := strings.Cut(raw, "__")
	if !ok || group == "" || qt == "" {
		return LedgerKey{}, fmt.Errorf("invalid ledger key %q", raw)
	}
	return LedgerKey{Group: group, Type: QuestionType(qt)}, nil
}

// LedgerSet names one of the three word sets kept per key.
type LedgerSet string

const (
	SetMastered      LedgerSet = "mastered"       // answered correctly
	SetExcludedWrong LedgerSet = "excluded_wrong" // excluded by an administrator
	SetSeen          LedgerSet = "seen"           // shown at least once
)

// ParseLedgerSet validates a stored set name.
func ParseLedgerSet(raw string) (LedgerSet, error) {
	switch s := LedgerSet(raw); s {
	case SetMastered, SetExcludedWrong, SetSeen:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLedgerSet, raw)
	}
}

// WordSet is a set of word identifiers.
type WordSet map[string]struct{}

// Add inserts ids into the set.
func (s WordSet) Add(ids ...string) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Has reports whether id is in the set.
func (s WordSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// LedgerEntry holds the three sets of a single key.
type LedgerEntry struct {
	Mastered      WordSet
	ExcludedWrong WordSet
	Seen          WordSet
}

func newLedgerEntry() *LedgerEntry {
	return &LedgerEntry{
		Mastered:      make(WordSet),
		ExcludedWrong: make(WordSet),
		Seen:          make(WordSet),
	}
}

func (e *LedgerEntry) set(s LedgerSet) WordSet {
	switch s {
	case SetMastered:
		return e.Mastered
	case SetExcludedWrong:
		return e.ExcludedWrong
	case SetSeen:
		return e.Seen
	default:
		return nil
	}
}

// ExclusionPolicy switches each set on or off when building a quiz.
type ExclusionPolicy struct {
	Mastered      bool `mapstructure:"exclude_mastered"`
	ExcludedWrong bool `mapstructure:"exclude_wrong"`
	Seen          bool `mapstructure:"exclude_seen"`
}

// DefaultExclusionPolicy skips mastered and excluded words but lets seen words return.
func DefaultExclusionPolicy() ExclusionPolicy {
	return ExclusionPolicy{Mastered: true, ExcludedWrong: true}
}

// ExclusionLedger tracks mastered, excluded and seen words per key for one user.
// It is not safe for concurrent use.
type ExclusionLedger struct {
	entries map[LedgerKey]*LedgerEntry
}

// NewExclusionLedger creates an empty ledger.
func NewExclusionLedger() *ExclusionLedger {
	return &ExclusionLedger{entries: make(map[LedgerKey]*LedgerEntry)}
}

// Entry returns the sets for key, creating them on first access.
func (l *ExclusionLedger) Entry(key LedgerKey) *LedgerEntry {
	e, ok := l.entries[key]
	if !ok {
		e = newLedgerEntry()
		l.entries[key] = e
	}
	return e
}

// Mark adds ids to one set of key.
func (l *ExclusionLedger) Mark(key LedgerKey, set LedgerSet, ids ...string) error {
	ws := l.Entry(key).set(set)
	if ws == nil {
		return fmt.Errorf("%w: %q", ErrUnknownLedgerSet, set)
	}
	ws.Add(ids...)
	return nil
}

func (l *ExclusionLedger) MarkMastered(key LedgerKey, ids ...string) {
	l.Entry(key).Mastered.Add(ids...)
}

func (l *ExclusionLedger) MarkExcluded(key LedgerKey, ids ...string) {
	l.Entry(key).ExcludedWrong.Add(ids...)
}

func (l *ExclusionLedger) MarkSeen(key LedgerKey, ids ...string) {
	l.Entry(key).Seen.Add(ids...)
}

// Blocked returns the union of the sets of key enabled by policy.
func (l *ExclusionLedger) Blocked(key LedgerKey, policy ExclusionPolicy) WordSet {
	e := l.Entry(key)
	blocked := make(WordSet)
	if policy.Mastered {
		for id := range e.Mastered {
			blocked.Add(id)
		}
	}
	if policy.ExcludedWrong {
		for id := range e.ExcludedWrong {
			blocked.Add(id)
		}
	}
	if policy.Seen {
		for id := range e.Seen {
			blocked.Add(id)
		}
	}
	return blocked
}

// Reset clears every set of key.
func (l *ExclusionLedger) Reset(key LedgerKey) {
	delete(l.entries, key)
}

// Keys returns every key that has been touched.
func (l *ExclusionLedger) Keys() []LedgerKey {
	keys := make([]LedgerKey, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	return keys
}
