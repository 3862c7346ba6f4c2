package ports

import (
	"context"

	"github.com/pollpulse/api/internal/core/domain"
)

type RegisterInput struct {
	FullName        string
	Username        string
	Email           string
	Password        string
	ProfileImageURL string
}

// AuthResult carries the authenticated user and its signed access token.
type AuthResult struct {
	User  *domain.UserInfo `json:"user"`
	Token string           `json:"token"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
