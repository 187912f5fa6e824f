package voting

import (
	"time"

	"campus-vote/internal/database"
)

// ElectionResult is the election-level result document. Derived, never
// persisted: recomputed on demand so it always reflects the latest ballot
// set for a closed election.
type ElectionResult struct {
	ElectionID   int64            `json:"election_id"`
	Title        string           `json:"title"`
	Status       Status           `json:"status"`
	TotalVotes   int              `json:"total_votes"`
	UniqueVoters int              `json:"unique_voters"`
	Positions    []PositionResult `json:"positions"`
	ComputedAt   time.Time        `json:"computed_at"`
}

// ComputeElectionResults tallies every position of a closed election.
// Returns ErrResultsNotAvailable while the election is still upcoming or
// open. Ballots that fail to parse are skipped per ballot, never fatal:
// historical data cannot be retroactively fixed and partial results must
// still be visible.
func ComputeElectionResults(
	now time.Time,
	election *database.Election,
	positions []database.Position,
	candidatesByPosition map[int64][]database.Candidate,
	ballots []database.Ballot,
) (*ElectionResult, error) {
	status := CurrentStatus(now, election)
	if status != StatusClosed {
		return nil, ErrResultsNotAvailable
	}

	parsed := make([]ParsedBallot, 0, len(ballots))
	voters := make(map[int64]bool, len(ballots))
	for _, ballot := range ballots {
		voters[ballot.VoterID] = true
		ballotData, err := ParseVoteData(ballot.VoteData, positions)
		if err != nil {
			continue
		}
		parsed = append(parsed, ballotData)
	}

	result := &ElectionResult{
		ElectionID:   election.ID,
		Title:        election.Title,
		Status:       status,
		TotalVotes:   len(ballots),
		UniqueVoters: len(voters),
		Positions:    make([]PositionResult, 0, len(positions)),
		ComputedAt:   now,
	}

	for _, position := range positions {
		result.Positions = append(result.Positions,
			Tally(position, candidatesByPosition[position.ID], parsed))
	}

	return result, nil
}
