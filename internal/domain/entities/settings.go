package entities

import (
	"time"
)

// UserSettings stores the quiz filters a user picked last.
type UserSettings struct {
	UserID       int64
	Level        Level        // selected tier, empty for all levels
	Group        POSGroup     // selected part-of-speech group
	QuestionType QuestionType // selected question direction
	EnabledTags  []POS        // enabled sub-tags of GroupOther
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUserSettings creates settings with default values.
func NewUserSettings(userID int64) *UserSettings {
	now := time.Now()
	return &UserSettings{
		UserID:       userID,
		Level:        LevelN5,
		Group:        GroupAll,
		QuestionType: QuestionReading,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Filter builds the pool filter from the current selection.
func (us *UserSettings) Filter() FilterKey {
	return FilterKey{
		Level:       us.Level,
		Group:       us.Group,
		EnabledTags: us.EnabledTags,
	}
}
