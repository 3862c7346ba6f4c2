package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

const defaultPageSize = 10

type feedService struct {
	pollRepo ports.PollRepository
}

func NewFeedService(pollRepo ports.PollRepository) ports.FeedService {
	return &feedService{
		pollRepo: pollRepo,
	}
}

// ListPolls returns one page of polls, most recent first, each annotated with
// the viewer's voted flag, plus pagination metadata and the per-type stats.
func (s *feedService) ListPolls(ctx context.Context, input ports.ListPollsInput) (*domain.PollFeed, error) {
	page, pageSize := normalizePage(input.Page, input.PageSize)
	filter := ports.PollFilter{Type: input.Type, CreatorID: input.CreatorID}

	polls, err := s.pollRepo.List(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	annotateVoted(polls, input.ViewerID)

	total, err := s.pollRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count polls: %w", err)
	}

	stats, err := s.typeStats(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.PollFeed{
		Polls:       polls,
		CurrentPage: page,
		TotalPages:  totalPages(total, pageSize),
		TotalPolls:  total,
		Stats:       stats,
	}, nil
}

// ListVotedPolls pages through the polls the viewer has voted on.
func (s *feedService) ListVotedPolls(ctx context.Context, viewerID uuid.UUID, page, pageSize int) (*domain.PollFeed, error) {
	page, pageSize = normalizePage(page, pageSize)

	polls, err := s.pollRepo.ListVotedBy(ctx, viewerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list voted polls: %w", err)
	}
	annotateVoted(polls, viewerID)

	total, err := s.pollRepo.CountVotedBy(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count voted polls: %w", err)
	}

	return &domain.PollFeed{
		Polls:       polls,
		CurrentPage: page,
		TotalPages:  totalPages(total, pageSize),
		TotalPolls:  total,
	}, nil
}

// typeStats reports a count for every supported poll type, zero included,
// sorted count-descending. Ties keep the fixed domain.PollTypes order, which
// sort.SliceStable preserves.
func (s *feedService) typeStats(ctx context.Context) ([]domain.PollTypeStat, error) {
	counts, err := s.pollRepo.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count polls by type: %w", err)
	}

	stats := make([]domain.PollTypeStat, 0, len(domain.PollTypes))
	for _, info := range domain.PollTypes {
		stats = append(stats, domain.PollTypeStat{
			Label: info.Label,
			Type:  info.Type,
			Count: counts[info.Type],
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	return stats, nil
}

func annotateVoted(polls []*domain.Poll, viewerID uuid.UUID) {
	for _, poll := range polls {
		poll.UserHasVoted = poll.HasVoter(viewerID)
	}
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

func totalPages(total, pageSize int) int {
	return (total + pageSize - 1) / pageSize
}
