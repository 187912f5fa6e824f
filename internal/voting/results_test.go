package voting

import (
	"testing"
	"time"

	"campus-vote/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeElectionResults(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	election := &database.Election{
		ID:        1,
		Title:     "Student Council 2026",
		Status:    database.ElectionStatusActive,
		StartTime: start,
		EndTime:   start.Add(48 * time.Hour),
	}
	positions := []database.Position{
		{ID: 1, Name: "President", Type: database.PositionTypeSingle, AllowAbstain: true},
	}
	candidates := map[int64][]database.Candidate{
		1: {{ID: 10, Name: "Ada"}, {ID: 11, Name: "Ben"}},
	}
	ballots := []database.Ballot{
		{VoterID: 1, VoteData: []byte(`{"position_1": {"candidate_id": 10}}`)},
		{VoterID: 2, VoteData: []byte(`{"position_1": {"candidate_id": 10}}`)},
		{VoterID: 3, VoteData: []byte(`{"position_1": {"candidate_id": 11}}`)},
	}

	t.Run("unavailable while open", func(t *testing.T) {
		_, err := ComputeElectionResults(start.Add(time.Hour), election, positions, candidates, ballots)
		assert.ErrorIs(t, err, ErrResultsNotAvailable)
	})

	t.Run("unavailable while upcoming", func(t *testing.T) {
		_, err := ComputeElectionResults(start.Add(-time.Hour), election, positions, candidates, ballots)
		assert.ErrorIs(t, err, ErrResultsNotAvailable)
	})

	t.Run("tallied after close", func(t *testing.T) {
		now := election.EndTime.Add(time.Hour)
		result, err := ComputeElectionResults(now, election, positions, candidates, ballots)
		require.NoError(t, err)

		assert.Equal(t, StatusClosed, result.Status)
		assert.Equal(t, 3, result.TotalVotes)
		assert.Equal(t, 3, result.UniqueVoters)
		require.Len(t, result.Positions, 1)
		assert.Equal(t, []int64{10}, result.Positions[0].WinnerIDs)
		assert.Equal(t, "Ada", result.Positions[0].Candidates[0].Name)
	})

	t.Run("unparseable ballots are skipped not fatal", func(t *testing.T) {
		withGarbage := append(ballots, database.Ballot{VoterID: 4, VoteData: []byte(`garbage`)})
		result, err := ComputeElectionResults(election.EndTime.Add(time.Hour), election, positions, candidates, withGarbage)
		require.NoError(t, err)
		assert.Equal(t, 4, result.TotalVotes)
		assert.Equal(t, 4, result.UniqueVoters)
		assert.Equal(t, 3, result.Positions[0].ValidVotes)
	})
}
