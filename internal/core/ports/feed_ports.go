package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
)

type ListPollsInput struct {
	Type      domain.PollType
	CreatorID uuid.UUID
	Page      int
	PageSize  int
	ViewerID  uuid.UUID
}

type FeedService interface {
	ListPolls(ctx context.Context, input ListPollsInput) (*domain.PollFeed, error)
	ListVotedPolls(ctx context.Context, viewerID uuid.UUID, page, pageSize int) (*domain.PollFeed, error)
}
