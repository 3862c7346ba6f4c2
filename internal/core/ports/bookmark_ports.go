package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
)

// BookmarkToggle is the outcome of a bookmark toggle.
type BookmarkToggle struct {
	Bookmarked      bool        `json:"bookmarked"`
	BookmarkedPolls []uuid.UUID `json:"bookmarked_polls"`
}

type BookmarkService interface {
	Toggle(ctx context.Context, userID uuid.UUID, pollID string) (*BookmarkToggle, error)
	ListBookmarked(ctx context.Context, userID uuid.UUID) ([]*domain.Poll, error)
}
