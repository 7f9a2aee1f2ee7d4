package entities

import (
	"slices"
	"strings"
)

// FilterKey selects the slice of the pool a quiz is drawn from.
type FilterKey struct {
	Level       Level    `json:"level"`                  // empty means every level
	Group       POSGroup `json:"group"`                  // empty or GroupAll means every part of speech
	EnabledTags []POS    `json:"enabled_tags,omitempty"` // sub-tags of GroupOther currently switched on
}

// GroupKey names the filter in ledger keys, e.g. "N5", "N5-verb" or "all".
// A partial sub-tag selection of GroupOther is part of the name
// ("N5-other+adverb+particle"), so each selection keeps its own ledger.
func (f FilterKey) GroupKey() string {
	var parts []string
	if f.Level != LevelUnknown {
		parts = append(parts, string(f.Level))
	}
	if f.Group != "" && f.Group != GroupAll {
		group := string(f.Group)
		if tags := f.partialTags(); len(tags) > 0 {
			group += "+" + strings.Join(tags, "+")
		}
		parts = append(parts, group)
	}
	if len(parts) == 0 {
		return string(GroupAll)
	}
	return strings.Join(parts, "-")
}

// partialTags returns the sorted enabled sub-tags, or nil when the selection
// is empty or covers every tag.
func (f FilterKey) partialTags() []string {
	if f.Group != GroupOther {
		return nil
	}
	var tags []string
	for _, t := range OtherTags {
		if slices.Contains(f.EnabledTags, t) {
			tags = append(tags, string(t))
		}
	}
	if len(tags) == 0 || len(tags) == len(OtherTags) {
		return nil
	}
	slices.Sort(tags)
	return tags
}

// Matches reports whether w belongs to the filtered slice.
func (f FilterKey) Matches(w Word) bool {
	if f.Level != LevelUnknown && w.Level != f.Level {
		return false
	}

	tags := f.Group.Tags(f.EnabledTags)
	if tags == nil {
		return f.Group == "" || f.Group == GroupAll
	}
	return slices.Contains(tags, w.POS)
}

// WithLevel returns a copy of f restricted to level.
func (f FilterKey) WithLevel(level Level) FilterKey {
	f.Level = level
	return f
}
