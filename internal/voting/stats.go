package voting

import (
	"sort"
	"time"

	"campus-vote/internal/database"
)

// Impact score tuning. The score starts at a base and is clamped so a
// single prolific voter cannot run away from the rest of campus.
const (
	impactBase              = 50
	impactPerElection       = 10
	impactEarlyVoteBonus    = 5
	impactPerfectBonus      = 3
	impactConsecutiveBonus  = 2
	impactSpecialVoteBonus  = 3
	impactMax               = 200
	earlyVoteWindow         = 24 * time.Hour
	consecutiveElectionsGap = 30 * 24 * time.Hour
)

// CampusStats is the participation document for one student
type CampusStats struct {
	ElectionsVoted int     `json:"elections_voted"`
	Rank           int     `json:"rank"`
	Percentile     float64 `json:"percentile"`
	ImpactScore    int     `json:"impact_score"`
	TotalStudents  int     `json:"total_students"`
}

// ComputeCampusStats derives a student's campus-wide participation rank,
// percentile, and impact score from the same ballot-counting primitives as
// election tallying.
//
// Rank 1 is the most elections voted; ties share a rank. Students who never
// voted have no entry in countsByVoter and count as strictly below anyone
// with at least one ballot. The percentile is clamped to [0, 100].
func ComputeCampusStats(
	voterID int64,
	participation []database.Participation,
	countsByVoter map[int64]int,
	totalStudents int,
	closedEligibleElections int,
) CampusStats {
	voted := countsByVoter[voterID]

	strictlyMore := 0
	for id, count := range countsByVoter {
		if id != voterID && count > voted {
			strictlyMore++
		}
	}

	percentile := 100.0
	if totalStudents > 0 {
		percentile = float64(totalStudents-strictlyMore) / float64(totalStudents) * 100
	}
	if percentile < 0 {
		percentile = 0
	}
	if percentile > 100 {
		percentile = 100
	}

	return CampusStats{
		ElectionsVoted: voted,
		Rank:           1 + strictlyMore,
		Percentile:     percentile,
		ImpactScore:    impactScore(participation, closedEligibleElections),
		TotalStudents:  totalStudents,
	}
}

// impactScore builds the bounded engagement score from a voter's
// participation history.
func impactScore(participation []database.Participation, closedEligibleElections int) int {
	score := impactBase

	score += impactPerElection * len(participation)

	for _, p := range participation {
		if p.VotedAt.Sub(p.StartTime) <= earlyVoteWindow {
			score += impactEarlyVoteBonus
		}
		if p.IsSpecial {
			score += impactSpecialVoteBonus
		}
	}

	if closedEligibleElections > 0 && len(participation) >= closedEligibleElections {
		score += impactPerfectBonus
	}

	// Consecutive-participation bonus: +2 for each pair of successive votes
	// cast within a 30-day gap of each other.
	ordered := make([]database.Participation, len(participation))
	copy(ordered, participation)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].VotedAt.Before(ordered[j].VotedAt)
	})
	for i := 1; i < len(ordered); i++ {
		if ordered[i].VotedAt.Sub(ordered[i-1].VotedAt) <= consecutiveElectionsGap {
			score += impactConsecutiveBonus
		}
	}

	if score < impactBase {
		score = impactBase
	}
	if score > impactMax {
		score = impactMax
	}

	return score
}
