package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

type bookmarkService struct {
	userRepo ports.UserRepository
	pollRepo ports.PollRepository
}

func NewBookmarkService(userRepo ports.UserRepository, pollRepo ports.PollRepository) ports.BookmarkService {
	return &bookmarkService{
		userRepo: userRepo,
		pollRepo: pollRepo,
	}
}

// Toggle removes the poll from the user's bookmarks when present, otherwise
// adds it. The store keys bookmarks by (user, poll), so the set never holds
// duplicates and toggling twice restores the original membership.
func (s *bookmarkService) Toggle(ctx context.Context, userID uuid.UUID, pollID string) (*ports.BookmarkToggle, error) {
	id, err := uuid.Parse(pollID)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	if _, err := s.pollRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	removed, err := s.userRepo.RemoveBookmark(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update bookmarks: %w", err)
	}
	if !removed {
		if _, err := s.userRepo.AddBookmark(ctx, userID, id); err != nil {
			return nil, fmt.Errorf("failed to update bookmarks: %w", err)
		}
	}

	bookmarks, err := s.userRepo.Bookmarks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookmarks: %w", err)
	}

	return &ports.BookmarkToggle{
		Bookmarked:      !removed,
		BookmarkedPolls: bookmarks,
	}, nil
}

// ListBookmarked returns the full poll record for every bookmark, annotated
// with the owner's voted flag. Bookmarks of deleted polls are dropped by the
// store and never show up here.
func (s *bookmarkService) ListBookmarked(ctx context.Context, userID uuid.UUID) ([]*domain.Poll, error) {
	polls, err := s.pollRepo.ListBookmarkedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarked polls: %w", err)
	}
	annotateVoted(polls, userID)
	return polls, nil
}
