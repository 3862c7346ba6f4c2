package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, full_name, username, email, password_hash, profile_image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.FullName, user.Username, user.Email, user.PasswordHash,
		nullString(user.ProfileImageURL), user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username = $1", username)
}

func (r *UserRepository) getBy(ctx context.Context, cond string, arg any) (*domain.User, error) {
	query := `
		SELECT id, full_name, username, email, password_hash, COALESCE(profile_image_url, ''), created_at
		FROM users
		WHERE ` + cond

	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.FullName, &user.Username, &user.Email,
		&user.PasswordHash, &user.ProfileImageURL, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) Activity(ctx context.Context, id uuid.UUID) (*domain.UserActivity, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM polls WHERE creator_id = $1),
			(SELECT COUNT(*) FROM poll_voters WHERE voter_id = $1),
			(SELECT COUNT(*) FROM bookmarks WHERE user_id = $1)
	`
	activity := &domain.UserActivity{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&activity.TotalPollsCreated, &activity.TotalPollsVoted, &activity.TotalPollsBookmarked,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user activity: %w", err)
	}
	return activity, nil
}

func (r *UserRepository) Bookmarks(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT poll_id
		FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at, poll_id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookmarks: %w", err)
	}
	return ids, nil
}

func (r *UserRepository) AddBookmark(ctx context.Context, userID, pollID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO bookmarks (user_id, poll_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, userID, pollID)
	if err != nil {
		return false, fmt.Errorf("failed to add bookmark: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *UserRepository) RemoveBookmark(ctx context.Context, userID, pollID uuid.UUID) (bool, error) {
	query := `DELETE FROM bookmarks WHERE user_id = $1 AND poll_id = $2`
	res, err := r.db.ExecContext(ctx, query, userID, pollID)
	if err != nil {
		return false, fmt.Errorf("failed to remove bookmark: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
