package domain

import (
	"math"
	"time"
)

// Vote is one caller's yes/no answer for a city on a vote day. A caller gets
// at most one row per (identity, city_key, vote_day); the choice is never
// updated after creation.
type Vote struct {
	ID        int64     `json:"id"`
	Identity  string    `json:"-"`
	CityRaw   string    `json:"city"`
	CityKey   string    `json:"-"`
	Choice    bool      `json:"choice"`
	VoteDay   string    `json:"vote_day"`
	CreatedAt time.Time `json:"created_at"`
}

type Aggregate struct {
	YesCount   int64
	NoCount    int64
	TotalVotes int64
}

// Percentages returns the rounded yes share and its complement. The no share
// is derived rather than rounded independently so the two always sum to 100.
func (a Aggregate) Percentages() (yes, no int) {
	if a.TotalVotes == 0 {
		return 0, 0
	}
	yes = int(math.Round(float64(a.YesCount) / float64(a.TotalVotes) * 100))
	return yes, 100 - yes
}

// CityResults is the full snapshot for one city on the current vote day.
type CityResults struct {
	City       string
	VoteDay    string
	Aggregate  Aggregate
	YesPercent int
	NoPercent  int
	UserVoted  bool
	UserVote   *bool
	ResetsAt   time.Time
}
