package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

const pollColumns = `
	p.id, p.question, p.type, p.closed, p.creator_id, p.created_at,
	u.username, u.full_name, COALESCE(u.profile_image_url, '')
`

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryPoll := `
		INSERT INTO polls (id, question, type, closed, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.ExecContext(ctx, queryPoll, poll.ID, poll.Question, poll.Type, poll.Closed, poll.CreatorID, poll.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	queryOption := `
		INSERT INTO poll_options (poll_id, idx, option_text, votes)
		VALUES ($1, $2, $3, $4)
	`
	stmt, err := tx.PrepareContext(ctx, queryOption)
	if err != nil {
		return fmt.Errorf("failed to prepare option statement: %w", err)
	}
	defer stmt.Close()

	for i, opt := range poll.Options {
		_, err = stmt.ExecContext(ctx, poll.ID, i, opt.OptionText, opt.Votes)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	query := `
		SELECT ` + pollColumns + `
		FROM polls p
		JOIN users u ON u.id = p.creator_id
		WHERE p.id = $1
	`

	poll, err := r.scanPoll(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	if err := r.loadDetails(ctx, poll); err != nil {
		return nil, err
	}

	return poll, nil
}

func (r *pollRepository) List(ctx context.Context, filter ports.PollFilter, limit, offset int) ([]*domain.Poll, error) {
	where, args := filterClause(filter)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT `+pollColumns+`
		FROM polls p
		JOIN users u ON u.id = p.creator_id
		%s
		ORDER BY p.created_at DESC, p.id
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

func (r *pollRepository) Count(ctx context.Context, filter ports.PollFilter) (int, error) {
	where, args := filterClause(filter)

	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM polls p %s`, where)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count polls: %w", err)
	}
	return count, nil
}

func (r *pollRepository) ListVotedBy(ctx context.Context, voterID uuid.UUID, limit, offset int) ([]*domain.Poll, error) {
	query := `
		SELECT ` + pollColumns + `
		FROM polls p
		JOIN users u ON u.id = p.creator_id
		JOIN poll_voters v ON v.poll_id = p.id
		WHERE v.voter_id = $1
		ORDER BY p.created_at DESC, p.id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, voterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list voted polls: %w", err)
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

func (r *pollRepository) CountVotedBy(ctx context.Context, voterID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM poll_voters WHERE voter_id = $1`
	if err := r.db.QueryRowContext(ctx, query, voterID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count voted polls: %w", err)
	}
	return count, nil
}

func (r *pollRepository) ListBookmarkedBy(ctx context.Context, userID uuid.UUID) ([]*domain.Poll, error) {
	query := `
		SELECT ` + pollColumns + `
		FROM polls p
		JOIN users u ON u.id = p.creator_id
		JOIN bookmarks b ON b.poll_id = p.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarked polls: %w", err)
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

func (r *pollRepository) CountByType(ctx context.Context) (map[domain.PollType]int, error) {
	query := `SELECT type, COUNT(*) FROM polls GROUP BY type`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count polls by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.PollType]int)
	for rows.Next() {
		var pollType domain.PollType
		var count int
		if err := rows.Scan(&pollType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan type count: %w", err)
		}
		counts[pollType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating type counts: %w", err)
	}
	return counts, nil
}

// ApplyVote runs the whole vote mutation in one transaction. The poll row is
// locked first, which serializes votes per poll; the (poll_id, voter_id)
// primary key on poll_voters backstops the duplicate check. A failed check
// rolls everything back, so no partial vote is ever visible.
func (r *pollRepository) ApplyVote(ctx context.Context, pollID, voterID uuid.UUID, optionIndex *int, responseText string) (*domain.Poll, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var pollType domain.PollType
	var closed bool
	err = tx.QueryRowContext(ctx, `SELECT type, closed FROM polls WHERE id = $1 FOR UPDATE`, pollID).
		Scan(&pollType, &closed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to lock poll: %w", err)
	}
	if closed {
		return nil, domain.ErrPollClosed
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO poll_voters (poll_id, voter_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, pollID, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to record voter: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrAlreadyVoted
	}

	if pollType == domain.TypeOpenEnded {
		if strings.TrimSpace(responseText) == "" {
			return nil, fmt.Errorf("%w: response text is required for open-ended polls", domain.ErrValidation)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_responses (poll_id, voter_id, response_text)
			VALUES ($1, $2, $3)
		`, pollID, voterID, responseText)
		if err != nil {
			return nil, fmt.Errorf("failed to record response: %w", err)
		}
	} else {
		if optionIndex == nil {
			return nil, domain.ErrInvalidOption
		}
		res, err := tx.ExecContext(ctx, `
			UPDATE poll_options SET votes = votes + 1
			WHERE poll_id = $1 AND idx = $2
		`, pollID, *optionIndex)
		if err != nil {
			return nil, fmt.Errorf("failed to increment option votes: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, domain.ErrInvalidOption
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}

	return r.GetByID(ctx, pollID)
}

func (r *pollRepository) SetClosed(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE polls SET closed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to close poll: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPollNotFound
	}
	return nil
}

func (r *pollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPollNotFound
	}
	return nil
}

func filterClause(filter ports.PollFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("p.type = $%d", len(args)))
	}
	if filter.CreatorID != uuid.Nil {
		args = append(args, filter.CreatorID)
		conds = append(conds, fmt.Sprintf("p.creator_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *pollRepository) scanPoll(row rowScanner) (*domain.Poll, error) {
	var poll domain.Poll
	var creator domain.UserProfile
	err := row.Scan(
		&poll.ID, &poll.Question, &poll.Type, &poll.Closed, &poll.CreatorID, &poll.CreatedAt,
		&creator.Username, &creator.FullName, &creator.ProfileImageURL,
	)
	if err != nil {
		return nil, err
	}
	creator.ID = poll.CreatorID
	poll.Creator = &creator
	return &poll, nil
}

func (r *pollRepository) scanPolls(ctx context.Context, rows *sql.Rows) ([]*domain.Poll, error) {
	var polls []*domain.Poll
	for rows.Next() {
		poll, err := r.scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}

	for _, poll := range polls {
		if err := r.loadDetails(ctx, poll); err != nil {
			return nil, err
		}
	}
	return polls, nil
}

func (r *pollRepository) loadDetails(ctx context.Context, poll *domain.Poll) error {
	options, err := r.fetchOptions(ctx, poll.ID)
	if err != nil {
		return err
	}
	poll.Options = options

	voters, err := r.fetchVoters(ctx, poll.ID)
	if err != nil {
		return err
	}
	poll.Voters = voters

	if poll.Type == domain.TypeOpenEnded {
		responses, err := r.fetchResponses(ctx, poll.ID)
		if err != nil {
			return err
		}
		poll.Responses = responses
	}
	return nil
}

func (r *pollRepository) fetchOptions(ctx context.Context, pollID uuid.UUID) ([]domain.PollOption, error) {
	query := `
		SELECT option_text, votes
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY idx
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll options: %w", err)
	}
	defer rows.Close()

	var options []domain.PollOption
	for rows.Next() {
		var opt domain.PollOption
		if err := rows.Scan(&opt.OptionText, &opt.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}

func (r *pollRepository) fetchVoters(ctx context.Context, pollID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT voter_id
		FROM poll_voters
		WHERE poll_id = $1
		ORDER BY voted_at, voter_id
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll voters: %w", err)
	}
	defer rows.Close()

	var voters []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voters: %w", err)
	}
	return voters, nil
}

func (r *pollRepository) fetchResponses(ctx context.Context, pollID uuid.UUID) ([]domain.PollResponse, error) {
	query := `
		SELECT voter_id, response_text, created_at
		FROM poll_responses
		WHERE poll_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll responses: %w", err)
	}
	defer rows.Close()

	var responses []domain.PollResponse
	for rows.Next() {
		var resp domain.PollResponse
		if err := rows.Scan(&resp.VoterID, &resp.ResponseText, &resp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responses: %w", err)
	}
	return responses, nil
}
