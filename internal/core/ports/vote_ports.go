package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
)

type VoteInput struct {
	PollID       string
	VoterID      uuid.UUID
	OptionIndex  *int
	ResponseText string
}

type VoteService interface {
	CastVote(ctx context.Context, input VoteInput) (*domain.Poll, error)
}
