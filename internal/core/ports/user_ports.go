package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Activity(ctx context.Context, id uuid.UUID) (*domain.UserActivity, error)

	Bookmarks(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	AddBookmark(ctx context.Context, userID, pollID uuid.UUID) (bool, error)
	RemoveBookmark(ctx context.Context, userID, pollID uuid.UUID) (bool, error)
}

type UserService interface {
	GetInfo(ctx context.Context, id uuid.UUID) (*domain.UserInfo, error)
}
