package service

import (
	"context"
	"slices"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
	adminIDs   []int64
}

func NewUserService(repository UserRepository, adminIDs []int64) *UserService {
	return &UserService{repository: repository, adminIDs: adminIDs}
}

// EnsureUser registers the user on first contact. It reports whether the user is new.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64) (bool, error) {
	return s.repository.Save(ctx, entities.NewUser(userID, chatID))
}

// IsAdmin reports whether the user may exclude words and see data errors.
// Users listed in configuration are admins without a database lookup.
func (s *UserService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if slices.Contains(s.adminIDs, userID) {
		return true, nil
	}
	return s.repository.IsAdmin(ctx, userID)
}
