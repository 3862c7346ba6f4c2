package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

type voteService struct {
	pollRepo ports.PollRepository
}

func NewVoteService(pollRepo ports.PollRepository) ports.VoteService {
	return &voteService{
		pollRepo: pollRepo,
	}
}

// CastVote records a single vote on a poll. Checks run in a fixed order and
// the first failing check wins with no side effect: poll exists, poll open,
// voter has not voted, then the type-specific payload check. The final apply
// is delegated to the repository, which re-checks the closed flag and the
// voter set atomically so concurrent requests cannot double-vote.
func (s *voteService) CastVote(ctx context.Context, input ports.VoteInput) (*domain.Poll, error) {
	pollID, err := uuid.Parse(input.PollID)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.Closed {
		return nil, domain.ErrPollClosed
	}
	if poll.HasVoter(input.VoterID) {
		return nil, domain.ErrAlreadyVoted
	}

	if poll.Type == domain.TypeOpenEnded {
		if strings.TrimSpace(input.ResponseText) == "" {
			return nil, fmt.Errorf("%w: response text is required for open-ended polls", domain.ErrValidation)
		}
	} else {
		if input.OptionIndex == nil || *input.OptionIndex < 0 || *input.OptionIndex >= len(poll.Options) {
			return nil, domain.ErrInvalidOption
		}
	}

	updated, err := s.pollRepo.ApplyVote(ctx, pollID, input.VoterID, input.OptionIndex, input.ResponseText)
	if err != nil {
		return nil, err
	}
	return updated, nil
}
