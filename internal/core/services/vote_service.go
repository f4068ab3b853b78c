package services

import (
	"context"
	"strings"
	"time"

	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/domain"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/voteday"
)

type voteService struct {
	voteRepo ports.VoteRepository
	clock    ports.Clock
	zone     *time.Location
}

func NewVoteService(voteRepo ports.VoteRepository, clock ports.Clock, zone *time.Location) ports.VoteService {
	return &voteService{
		voteRepo: voteRepo,
		clock:    clock,
		zone:     zone,
	}
}

func (s *voteService) Submit(ctx context.Context, input ports.SubmitInput) (int64, error) {
	city := strings.TrimSpace(input.City)
	if city == "" {
		return 0, domain.ErrInvalidCity
	}
	if input.Identity == "" {
		return 0, domain.ErrInvalidIdentity
	}

	// vote_day always comes from the server clock; clients cannot backdate.
	now := s.clock.Now()
	vote := &domain.Vote{
		Identity:  input.Identity,
		CityRaw:   city,
		CityKey:   domain.NormalizeCity(city),
		Choice:    input.Choice,
		VoteDay:   voteday.Day(now, s.zone),
		CreatedAt: now,
	}

	return s.voteRepo.RecordVote(ctx, vote)
}

func (s *voteService) Results(ctx context.Context, identity, city string) (*domain.CityResults, error) {
	if strings.TrimSpace(city) == "" {
		return nil, domain.ErrInvalidCity
	}
	if identity == "" {
		return nil, domain.ErrInvalidIdentity
	}

	cityKey := domain.NormalizeCity(city)
	now := s.clock.Now()
	day := voteday.Day(now, s.zone)

	// The aggregate and the caller's own vote are independent reads; run
	// them concurrently.
	type aggResult struct {
		agg domain.Aggregate
		err error
	}
	aggCh := make(chan aggResult, 1)
	go func() {
		agg, err := s.voteRepo.GetAggregate(ctx, cityKey, day)
		aggCh <- aggResult{agg, err}
	}()

	userVote, err := s.voteRepo.GetUserVote(ctx, identity, cityKey, day)
	if err != nil {
		<-aggCh
		return nil, err
	}

	agg := <-aggCh
	if agg.err != nil {
		return nil, agg.err
	}

	yes, no := agg.agg.Percentages()
	return &domain.CityResults{
		City:       city,
		VoteDay:    day,
		Aggregate:  agg.agg,
		YesPercent: yes,
		NoPercent:  no,
		UserVoted:  userVote != nil,
		UserVote:   userVote,
		ResetsAt:   voteday.NextReset(now, s.zone),
	}, nil
}
