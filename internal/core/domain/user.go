package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// UserProfile is the public subset of a user embedded in poll records.
type UserProfile struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	FullName        string    `json:"full_name"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
}

func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:              u.ID,
		Username:        u.Username,
		FullName:        u.FullName,
		ProfileImageURL: u.ProfileImageURL,
	}
}

// UserActivity holds the poll-related counters shown on a profile.
type UserActivity struct {
	TotalPollsCreated    int `json:"total_polls_created"`
	TotalPollsVoted      int `json:"total_polls_voted"`
	TotalPollsBookmarked int `json:"total_polls_bookmarked"`
}

// UserInfo is a user with its activity counters attached.
type UserInfo struct {
	User
	UserActivity
}
