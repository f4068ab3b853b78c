package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/domain"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// RecordVote relies on the UNIQUE (identity, city_key, vote_day) constraint
// for idempotency. ON CONFLICT DO NOTHING keeps the insert atomic, so two
// concurrent submissions from the same identity can never both win.
func (r *voteRepository) RecordVote(ctx context.Context, vote *domain.Vote) (int64, error) {
	query := `
		INSERT INTO votes (identity, city_raw, city_key, choice, vote_day)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (identity, city_key, vote_day) DO NOTHING
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		vote.Identity, vote.CityRaw, vote.CityKey, vote.Choice, vote.VoteDay,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrAlreadyVoted
		}
		return 0, fmt.Errorf("failed to record vote: %w", err)
	}
	return id, nil
}

func (r *voteRepository) GetAggregate(ctx context.Context, cityKey, voteDay string) (domain.Aggregate, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE choice),
			COUNT(*) FILTER (WHERE NOT choice),
			COUNT(*)
		FROM votes
		WHERE city_key = $1 AND vote_day = $2
	`
	var agg domain.Aggregate
	err := r.db.QueryRowContext(ctx, query, cityKey, voteDay).
		Scan(&agg.YesCount, &agg.NoCount, &agg.TotalVotes)
	if err != nil {
		return domain.Aggregate{}, fmt.Errorf("failed to aggregate votes: %w", err)
	}
	return agg, nil
}

func (r *voteRepository) GetUserVote(ctx context.Context, identity, cityKey, voteDay string) (*bool, error) {
	query := `
		SELECT choice FROM votes
		WHERE identity = $1 AND city_key = $2 AND vote_day = $3
		LIMIT 1
	`
	var choice bool
	err := r.db.QueryRowContext(ctx, query, identity, cityKey, voteDay).Scan(&choice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user vote: %w", err)
	}
	return &choice, nil
}

func (r *voteRepository) DeleteDaysBefore(ctx context.Context, day string) (int64, error) {
	query := `DELETE FROM votes WHERE vote_day < $1`
	res, err := r.db.ExecContext(ctx, query, day)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale votes: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted votes: %w", err)
	}
	return deleted, nil
}
