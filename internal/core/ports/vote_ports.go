package ports

import (
	"context"

	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/domain"
)

type VoteRepository interface {
	// RecordVote inserts the vote in a single atomic statement. When a row
	// already exists for (identity, city_key, vote_day) it returns
	// domain.ErrAlreadyVoted and leaves storage untouched.
	RecordVote(ctx context.Context, vote *domain.Vote) (int64, error)
	GetAggregate(ctx context.Context, cityKey, voteDay string) (domain.Aggregate, error)
	// GetUserVote returns nil when the identity has not voted for that
	// city-day.
	GetUserVote(ctx context.Context, identity, cityKey, voteDay string) (*bool, error)
	// DeleteDaysBefore removes rows from vote days older than day. Used by
	// the retention job only; the serving path never deletes.
	DeleteDaysBefore(ctx context.Context, day string) (int64, error)
}

type SubmitInput struct {
	Identity string
	City     string
	Choice   bool
}

type VoteService interface {
	Submit(ctx context.Context, input SubmitInput) (int64, error)
	Results(ctx context.Context, identity, city string) (*domain.CityResults, error)
}
