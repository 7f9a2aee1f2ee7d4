package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/infra/postgres"
)

// SettingsRepository provides access to user settings data in the database.
type SettingsRepository struct {
	db postgres.DBTX
}

// NewSettingsRepository creates a new SettingsRepository with the provided database pool.
func NewSettingsRepository(db postgres.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create creates default settings for a user.
func (r *SettingsRepository) Create(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO user_settings (
			user_id, level, pos_group, question_type, enabled_tags, created_at, updated_at
		) VALUES ($1, 'N5', 'all', 'reading', '{}', NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByUserID retrieves settings for a user.
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	query := `
		SELECT user_id, level, pos_group, question_type, enabled_tags, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var (
		settings            entities.UserSettings
		level, group, qtype string
		tags                []string
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&level,
		&group,
		&qtype,
		&tags,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	settings.Level = entities.Level(level)
	settings.Group = entities.POSGroup(group)
	settings.QuestionType = entities.QuestionType(qtype)
	settings.EnabledTags = lo.Map(tags, func(t string, _ int) entities.POS {
		return entities.POS(t)
	})

	return &settings, nil
}

// Update stores the whole selection of a user.
func (r *SettingsRepository) Update(ctx context.Context, settings *entities.UserSettings) error {
	query := `
		UPDATE user_settings SET
			level = $2,
			pos_group = $3,
			question_type = $4,
			enabled_tags = $5,
			updated_at = NOW()
		WHERE user_id = $1
	`

	tags := lo.Map(settings.EnabledTags, func(p entities.POS, _ int) string {
		return string(p)
	})

	tag, err := r.db.Exec(
		ctx,
		query,
		settings.UserID,
		string(settings.Level),
		string(settings.Group),
		string(settings.QuestionType),
		tags,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrSettingsNotFound
	}

	return nil
}
