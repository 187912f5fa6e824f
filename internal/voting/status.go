package voting

import (
	"time"

	"campus-vote/internal/database"
)

// Status is the time-derived state of an election, independent of the
// stored lifecycle column. It is computed per request and never cached;
// caching would introduce staleness around election boundaries.
type Status string

const (
	StatusUpcoming Status = "Upcoming"
	StatusOpen     Status = "Open"
	StatusClosed   Status = "Closed"
)

// CurrentStatus derives the election's state from the wall clock and its
// time window. Draft visibility is handled by IsVisible, one layer up.
func CurrentStatus(now time.Time, election *database.Election) Status {
	if now.Before(election.StartTime) {
		return StatusUpcoming
	}
	if now.Before(election.EndTime) {
		return StatusOpen
	}
	return StatusClosed
}

// IsVisible reports whether an election may be shown to voters at all.
// Draft elections are never visible regardless of their time window.
func IsVisible(election *database.Election) bool {
	return election.Status != database.ElectionStatusDraft
}
