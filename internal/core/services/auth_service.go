package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = time.Hour

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type AuthService struct {
	userRepo  ports.UserRepository
	jwtSecret []byte
}

func NewAuthService(userRepo ports.UserRepository, jwtSecret []byte) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if input.FullName == "" || input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}
	if !usernameRegex.MatchString(input.Username) {
		return nil, fmt.Errorf("%w: username may only contain letters, digits and hyphens", domain.ErrValidation)
	}
	if !emailRegex.MatchString(input.Email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	existing, err = s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:              uuid.New(),
		FullName:        input.FullName,
		Username:        input.Username,
		Email:           input.Email,
		PasswordHash:    string(hash),
		ProfileImageURL: input.ProfileImageURL,
		CreatedAt:       time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.result(user, &domain.UserActivity{})
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	activity, err := s.userRepo.Activity(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user activity: %w", err)
	}

	return s.result(user, activity)
}

func (s *AuthService) result(user *domain.User, activity *domain.UserActivity) (*ports.AuthResult, error) {
	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	sanitized := *user
	sanitized.PasswordHash = ""
	return &ports.AuthResult{
		User:  &domain.UserInfo{User: sanitized, UserActivity: *activity},
		Token: token,
	}, nil
}

func (s *AuthService) generateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(tokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
