package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
)

// PollFilter narrows poll listings. Zero values mean "no filter".
type PollFilter struct {
	Type      domain.PollType
	CreatorID uuid.UUID
}

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	List(ctx context.Context, filter PollFilter, limit, offset int) ([]*domain.Poll, error)
	Count(ctx context.Context, filter PollFilter) (int, error)
	ListVotedBy(ctx context.Context, voterID uuid.UUID, limit, offset int) ([]*domain.Poll, error)
	CountVotedBy(ctx context.Context, voterID uuid.UUID) (int, error)
	ListBookmarkedBy(ctx context.Context, userID uuid.UUID) ([]*domain.Poll, error)
	CountByType(ctx context.Context) (map[domain.PollType]int, error)

	// ApplyVote atomically records a vote: it re-checks the closed flag and the
	// voter set with the poll row locked, applies the option increment or the
	// open-ended response, appends the voter and returns the updated poll.
	// Nothing is persisted when any check fails.
	ApplyVote(ctx context.Context, pollID, voterID uuid.UUID, optionIndex *int, responseText string) (*domain.Poll, error)

	SetClosed(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatePollInput struct {
	Question  string
	Type      domain.PollType
	Options   []string
	CreatorID uuid.UUID
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)
	ClosePoll(ctx context.Context, id string, requesterID uuid.UUID) (*domain.Poll, error)
	DeletePoll(ctx context.Context, id string, requesterID uuid.UUID) error
}
