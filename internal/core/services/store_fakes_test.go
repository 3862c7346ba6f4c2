package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

// memStore holds the shared in-memory state behind the fake repositories used
// by the unit tests. fakePollRepo's ApplyVote mirrors the conditional-write
// semantics of the postgres adapter: all checks and mutations happen under one
// lock.
type memStore struct {
	mu        sync.Mutex
	polls     map[uuid.UUID]*domain.Poll
	users     map[uuid.UUID]*domain.User
	bookmarks map[uuid.UUID][]uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		polls:     make(map[uuid.UUID]*domain.Poll),
		users:     make(map[uuid.UUID]*domain.User),
		bookmarks: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *memStore) pollRepo() ports.PollRepository { return &fakePollRepo{s} }
func (s *memStore) userRepo() ports.UserRepository { return &fakeUserRepo{s} }

func clonePoll(p *domain.Poll) *domain.Poll {
	c := *p
	c.Options = append([]domain.PollOption(nil), p.Options...)
	c.Responses = append([]domain.PollResponse(nil), p.Responses...)
	c.Voters = append([]uuid.UUID(nil), p.Voters...)
	return &c
}

type fakePollRepo struct {
	s *memStore
}

func (r *fakePollRepo) Save(_ context.Context, poll *domain.Poll) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.polls[poll.ID] = clonePoll(poll)
	return nil
}

func (r *fakePollRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	poll, ok := r.s.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return clonePoll(poll), nil
}

func (r *fakePollRepo) sortedPolls() []*domain.Poll {
	polls := make([]*domain.Poll, 0, len(r.s.polls))
	for _, p := range r.s.polls {
		polls = append(polls, clonePoll(p))
	}
	sort.Slice(polls, func(i, j int) bool {
		if !polls[i].CreatedAt.Equal(polls[j].CreatedAt) {
			return polls[i].CreatedAt.After(polls[j].CreatedAt)
		}
		return polls[i].ID.String() < polls[j].ID.String()
	})
	return polls
}

func matchesFilter(p *domain.Poll, filter ports.PollFilter) bool {
	if filter.Type != "" && p.Type != filter.Type {
		return false
	}
	if filter.CreatorID != uuid.Nil && p.CreatorID != filter.CreatorID {
		return false
	}
	return true
}

func pageOf(polls []*domain.Poll, limit, offset int) []*domain.Poll {
	if offset >= len(polls) {
		return nil
	}
	polls = polls[offset:]
	if len(polls) > limit {
		polls = polls[:limit]
	}
	return polls
}

func (r *fakePollRepo) List(_ context.Context, filter ports.PollFilter, limit, offset int) ([]*domain.Poll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var filtered []*domain.Poll
	for _, p := range r.sortedPolls() {
		if matchesFilter(p, filter) {
			filtered = append(filtered, p)
		}
	}
	return pageOf(filtered, limit, offset), nil
}

func (r *fakePollRepo) Count(_ context.Context, filter ports.PollFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, p := range r.s.polls {
		if matchesFilter(p, filter) {
			count++
		}
	}
	return count, nil
}

func (r *fakePollRepo) ListVotedBy(_ context.Context, voterID uuid.UUID, limit, offset int) ([]*domain.Poll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var voted []*domain.Poll
	for _, p := range r.sortedPolls() {
		if p.HasVoter(voterID) {
			voted = append(voted, p)
		}
	}
	return pageOf(voted, limit, offset), nil
}

func (r *fakePollRepo) CountVotedBy(_ context.Context, voterID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, p := range r.s.polls {
		if p.HasVoter(voterID) {
			count++
		}
	}
	return count, nil
}

func (r *fakePollRepo) ListBookmarkedBy(_ context.Context, userID uuid.UUID) ([]*domain.Poll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var polls []*domain.Poll
	for _, id := range r.s.bookmarks[userID] {
		// bookmarks of deleted polls are dropped, like the FK cascade does
		if p, ok := r.s.polls[id]; ok {
			polls = append(polls, clonePoll(p))
		}
	}
	return polls, nil
}

func (r *fakePollRepo) CountByType(_ context.Context) (map[domain.PollType]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[domain.PollType]int)
	for _, p := range r.s.polls {
		counts[p.Type]++
	}
	return counts, nil
}

func (r *fakePollRepo) ApplyVote(_ context.Context, pollID, voterID uuid.UUID, optionIndex *int, responseText string) (*domain.Poll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	poll, ok := r.s.polls[pollID]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	if poll.Closed {
		return nil, domain.ErrPollClosed
	}
	if poll.HasVoter(voterID) {
		return nil, domain.ErrAlreadyVoted
	}

	if poll.Type == domain.TypeOpenEnded {
		if strings.TrimSpace(responseText) == "" {
			return nil, fmt.Errorf("%w: response text is required for open-ended polls", domain.ErrValidation)
		}
		poll.Responses = append(poll.Responses, domain.PollResponse{VoterID: voterID, ResponseText: responseText})
	} else {
		if optionIndex == nil || *optionIndex < 0 || *optionIndex >= len(poll.Options) {
			return nil, domain.ErrInvalidOption
		}
		poll.Options[*optionIndex].Votes++
	}
	poll.Voters = append(poll.Voters, voterID)

	return clonePoll(poll), nil
}

func (r *fakePollRepo) SetClosed(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	poll, ok := r.s.polls[id]
	if !ok {
		return domain.ErrPollNotFound
	}
	poll.Closed = true
	return nil
}

func (r *fakePollRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.polls[id]; !ok {
		return domain.ErrPollNotFound
	}
	delete(r.s.polls, id)
	return nil
}

type fakeUserRepo struct {
	s *memStore
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := *user
	r.s.users[user.ID] = &u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getUser(func(u *domain.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.getUser(func(u *domain.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.getUser(func(u *domain.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) getUser(match func(*domain.User) bool) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Activity(_ context.Context, id uuid.UUID) (*domain.UserActivity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	activity := &domain.UserActivity{TotalPollsBookmarked: len(r.s.bookmarks[id])}
	for _, p := range r.s.polls {
		if p.CreatorID == id {
			activity.TotalPollsCreated++
		}
		if p.HasVoter(id) {
			activity.TotalPollsVoted++
		}
	}
	return activity, nil
}

func (r *fakeUserRepo) Bookmarks(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]uuid.UUID(nil), r.s.bookmarks[userID]...), nil
}

func (r *fakeUserRepo) AddBookmark(_ context.Context, userID, pollID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.bookmarks[userID] {
		if id == pollID {
			return false, nil
		}
	}
	r.s.bookmarks[userID] = append(r.s.bookmarks[userID], pollID)
	return true, nil
}

func (r *fakeUserRepo) RemoveBookmark(_ context.Context, userID, pollID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := r.s.bookmarks[userID]
	for i, id := range ids {
		if id == pollID {
			r.s.bookmarks[userID] = append(ids[:i:i], ids[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
