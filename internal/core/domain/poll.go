package domain

import (
	"time"

	"github.com/google/uuid"
)

type PollType string

const (
	TypeSingleChoice PollType = "single-choice"
	TypeOpenEnded    PollType = "open-ended"
	TypeRating       PollType = "rating"
	TypeYesNo        PollType = "yes/no"
	TypeImageBased   PollType = "image-based"
)

// PollTypeInfo pairs a poll type with its display label.
type PollTypeInfo struct {
	Type  PollType
	Label string
}

// PollTypes is the fixed set of supported poll types. Stats are reported for
// every entry even at zero count, and the slice order is the tie-break order
// when counts are equal.
var PollTypes = []PollTypeInfo{
	{TypeSingleChoice, "Single Choice"},
	{TypeOpenEnded, "Open Ended"},
	{TypeRating, "Rating"},
	{TypeYesNo, "Yes/No"},
	{TypeImageBased, "Image Based"},
}

// ValidPollType reports whether t is one of the supported poll types.
func ValidPollType(t PollType) bool {
	for _, info := range PollTypes {
		if info.Type == t {
			return true
		}
	}
	return false
}

type PollOption struct {
	OptionText string `json:"option_text"`
	Votes      int    `json:"votes"`
}

type PollResponse struct {
	VoterID      uuid.UUID `json:"voter_id"`
	ResponseText string    `json:"response_text"`
	CreatedAt    time.Time `json:"created_at"`
}

type Poll struct {
	ID        uuid.UUID      `json:"id"`
	Question  string         `json:"question"`
	Type      PollType       `json:"type"`
	Options   []PollOption   `json:"options"`
	Responses []PollResponse `json:"responses,omitempty"`
	Voters    []uuid.UUID    `json:"voters"`
	Closed    bool           `json:"closed"`
	CreatorID uuid.UUID      `json:"creator_id"`
	Creator   *UserProfile   `json:"creator,omitempty"`
	CreatedAt time.Time      `json:"created_at"`

	// UserHasVoted is computed per viewer on listing endpoints, never stored.
	UserHasVoted bool `json:"user_has_voted"`
}

// HasVoter reports whether the given user already voted on this poll.
func (p *Poll) HasVoter(id uuid.UUID) bool {
	for _, v := range p.Voters {
		if v == id {
			return true
		}
	}
	return false
}

// PollTypeStat is one row of the per-type poll count breakdown.
type PollTypeStat struct {
	Label string   `json:"label"`
	Type  PollType `json:"type"`
	Count int      `json:"count"`
}

// PollFeed is a paginated poll listing with its metadata.
type PollFeed struct {
	Polls       []*Poll        `json:"polls"`
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
	TotalPolls  int            `json:"total_polls"`
	Stats       []PollTypeStat `json:"stats,omitempty"`
}
