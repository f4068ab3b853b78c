// Package voteday computes the canonical vote day and its boundaries.
//
// Both functions are pure in (instant, reference zone): the day a vote lands
// in depends only on the wall clock of the reference timezone at the moment
// of submission, never on the server's local zone or the client's.
package voteday

import "time"

// DefaultZone is the nightlife timezone the day flips in.
const DefaultZone = "America/New_York"

const dayFormat = "2006-01-02"

// Day returns the calendar date observed in loc at instant t, as YYYY-MM-DD.
// This is the partition key for one-vote-per-day enforcement.
func Day(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayFormat)
}

// NextReset returns the instant of the next local midnight in loc after t.
// time.Date normalizes day+1 through the zone's rules, so the result stays
// correct across daylight-saving transitions.
func NextReset(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
}
