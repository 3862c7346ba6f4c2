package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

type userService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) ports.UserService {
	return &userService{
		repo: repo,
	}
}

// GetInfo returns the profile together with its poll activity counters.
func (s *userService) GetInfo(ctx context.Context, id uuid.UUID) (*domain.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	activity, err := s.repo.Activity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user activity: %w", err)
	}

	return &domain.UserInfo{User: *user, UserActivity: *activity}, nil
}
