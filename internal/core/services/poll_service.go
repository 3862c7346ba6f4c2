package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

type pollService struct {
	repo ports.PollRepository
}

func NewPollService(repo ports.PollRepository) ports.PollService {
	return &pollService{
		repo: repo,
	}
}

// Create builds the option set for the declared poll type and persists the poll.
func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	if input.Question == "" {
		return nil, fmt.Errorf("%w: question is required", domain.ErrValidation)
	}
	if input.Type == "" {
		return nil, fmt.Errorf("%w: type is required", domain.ErrValidation)
	}
	if input.CreatorID == uuid.Nil {
		return nil, fmt.Errorf("%w: creator id is required", domain.ErrValidation)
	}

	options, err := buildOptions(input.Type, input.Options)
	if err != nil {
		return nil, err
	}

	poll := &domain.Poll{
		ID:        uuid.New(),
		Question:  input.Question,
		Type:      input.Type,
		Options:   options,
		CreatorID: input.CreatorID,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, fmt.Errorf("failed to save poll: %w", err)
	}

	return poll, nil
}

// buildOptions is deterministic: the same type and input always yield the same
// zero-vote option set.
func buildOptions(pollType domain.PollType, options []string) ([]domain.PollOption, error) {
	switch pollType {
	case domain.TypeSingleChoice:
		if len(options) < 2 {
			return nil, fmt.Errorf("%w: single-choice poll must have at least two options", domain.ErrValidation)
		}
		return optionsFromStrings(options), nil

	case domain.TypeOpenEnded:
		return nil, nil

	case domain.TypeRating:
		ratings := make([]string, 0, 5)
		for i := 1; i <= 5; i++ {
			ratings = append(ratings, strconv.Itoa(i))
		}
		return optionsFromStrings(ratings), nil

	case domain.TypeYesNo:
		return optionsFromStrings([]string{"Yes", "No"}), nil

	case domain.TypeImageBased:
		if len(options) < 2 {
			return nil, fmt.Errorf("%w: image-based poll must have at least two image URLs", domain.ErrValidation)
		}
		return optionsFromStrings(options), nil

	default:
		return nil, domain.ErrInvalidPollType
	}
}

func optionsFromStrings(texts []string) []domain.PollOption {
	options := make([]domain.PollOption, 0, len(texts))
	for _, text := range texts {
		options = append(options, domain.PollOption{OptionText: text})
	}
	return options
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	return s.repo.GetByID(ctx, pollID)
}

// ClosePoll marks a poll closed. Only the creator may close, and the
// transition is one-way.
func (s *pollService) ClosePoll(ctx context.Context, id string, requesterID uuid.UUID) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.CreatorID != requesterID {
		return nil, domain.ErrNotPollOwner
	}
	if poll.Closed {
		return nil, domain.ErrPollAlreadyClosed
	}

	if err := s.repo.SetClosed(ctx, pollID); err != nil {
		return nil, fmt.Errorf("failed to close poll: %w", err)
	}

	poll.Closed = true
	return poll, nil
}

func (s *pollService) DeletePoll(ctx context.Context, id string, requesterID uuid.UUID) error {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrInvalidPollID
	}

	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return err
	}
	if poll.CreatorID != requesterID {
		return domain.ErrNotPollOwner
	}

	if err := s.repo.Delete(ctx, pollID); err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	return nil
}
