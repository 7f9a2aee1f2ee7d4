package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

type SettingsService struct {
	repository SettingsRepository
}

func NewSettingsService(repository SettingsRepository) *SettingsService {
	return &SettingsService{repository: repository}
}

func (s *SettingsService) GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	settings, err := s.repository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrSettingsNotFound) {
			// Create default settings.
			if err := s.repository.Create(ctx, userID); err != nil {
				return nil, err
			}
			// Retrieve newly created settings.
			return s.repository.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	return settings, nil
}

func (s *SettingsService) SetLevel(ctx context.Context, userID int64, level entities.Level) (*entities.UserSettings, error) {
	return s.update(ctx, userID, func(us *entities.UserSettings) {
		us.Level = level
	})
}

func (s *SettingsService) SetGroup(ctx context.Context, userID int64, group entities.POSGroup) (*entities.UserSettings, error) {
	return s.update(ctx, userID, func(us *entities.UserSettings) {
		us.Group = group
	})
}

func (s *SettingsService) SetQuestionType(ctx context.Context, userID int64, qt entities.QuestionType) (*entities.UserSettings, error) {
	return s.update(ctx, userID, func(us *entities.UserSettings) {
		us.QuestionType = qt
	})
}

// ToggleOtherTag switches one sub-tag of the "other" group on or off.
// An empty selection means every sub-tag is enabled.
func (s *SettingsService) ToggleOtherTag(ctx context.Context, userID int64, tag entities.POS) (*entities.UserSettings, error) {
	return s.update(ctx, userID, func(us *entities.UserSettings) {
		enabled := us.EnabledTags
		if len(enabled) == 0 {
			enabled = append([]entities.POS(nil), entities.OtherTags...)
		}
		if i := slices.Index(enabled, tag); i >= 0 {
			enabled = slices.Delete(enabled, i, i+1)
		} else {
			enabled = append(enabled, tag)
		}
		if len(enabled) == len(entities.OtherTags) {
			enabled = nil
		}
		us.EnabledTags = enabled
	})
}

func (s *SettingsService) update(
	ctx context.Context,
	userID int64,
	apply func(*entities.UserSettings),
) (*entities.UserSettings, error) {
	settings, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	apply(settings)
	settings.UpdatedAt = time.Now()

	if err := s.repository.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
