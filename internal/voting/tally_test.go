package voting

import (
	"testing"

	"campus-vote/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func makeCandidates(ids ...int64) []database.Candidate {
	out := make([]database.Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, database.Candidate{ID: id, Approved: true})
	}
	return out
}

func singleBallot(positionID, candidateID int64) ParsedBallot {
	return ParsedBallot{positionID: {Value: SingleChoice{CandidateID: candidateID}}}
}

func rankedBallot(positionID int64, preferences ...int64) ParsedBallot {
	rankings := make([]Ranking, 0, len(preferences))
	for i, id := range preferences {
		rankings = append(rankings, Ranking{CandidateID: id, Rank: i + 1})
	}
	return ParsedBallot{positionID: {Value: RankedChoice{Rankings: rankings}}}
}

func TestTallySingleChoice(t *testing.T) {
	position := database.Position{ID: 1, Name: "President", Type: database.PositionTypeSingle}
	candidates := makeCandidates(10, 11, 12)

	var ballots []ParsedBallot
	for i := 0; i < 5; i++ {
		ballots = append(ballots, singleBallot(1, 10))
	}
	for i := 0; i < 3; i++ {
		ballots = append(ballots, singleBallot(1, 11))
	}
	ballots = append(ballots, ParsedBallot{1: {Abstain: true}})

	result := Tally(position, candidates, ballots)

	assert.Equal(t, 9, result.TotalBallots)
	assert.Equal(t, 1, result.Abstentions)
	assert.Equal(t, 8, result.ValidVotes)
	assert.Equal(t, []int64{10}, result.WinnerIDs)

	require.Len(t, result.Candidates, 3)
	assert.Equal(t, int64(10), result.Candidates[0].CandidateID)
	assert.Equal(t, 5, result.Candidates[0].Votes)
	assert.InDelta(t, 62.5, result.Candidates[0].Percentage, 0.001)
	assert.Equal(t, 1, result.Candidates[0].Rank)
	assert.Equal(t, 2, result.Candidates[1].Rank)
	assert.Equal(t, 0, result.Candidates[2].Votes)
	assert.Equal(t, 3, result.Candidates[2].Rank)

	// sum(candidate votes) == valid votes for single-choice
	sum := 0
	for _, row := range result.Candidates {
		sum += row.Votes
	}
	assert.Equal(t, result.ValidVotes, sum)
}

func TestTallySingleChoiceZeroBallots(t *testing.T) {
	position := database.Position{ID: 1, Name: "President", Type: database.PositionTypeSingle}
	candidates := makeCandidates(10, 11)

	result := Tally(position, candidates, nil)

	assert.Equal(t, 0, result.TotalBallots)
	assert.Equal(t, 0, result.ValidVotes)
	assert.Empty(t, result.WinnerIDs)
	require.Len(t, result.Candidates, 2)
	for _, row := range result.Candidates {
		assert.Equal(t, 0, row.Votes)
		assert.Equal(t, 0.0, row.Percentage)
		assert.Equal(t, 1, row.Rank) // everyone ties at the top with zero
	}
}

func TestTallySingleChoiceTieSharesRank(t *testing.T) {
	position := database.Position{ID: 1, Name: "Treasurer", Type: database.PositionTypeSingle}
	candidates := makeCandidates(20, 21, 22)

	ballots := []ParsedBallot{
		singleBallot(1, 20), singleBallot(1, 21),
		singleBallot(1, 20), singleBallot(1, 21),
		singleBallot(1, 22),
	}

	result := Tally(position, candidates, ballots)

	require.Len(t, result.Candidates, 3)
	assert.Equal(t, 1, result.Candidates[0].Rank)
	assert.Equal(t, 1, result.Candidates[1].Rank)
	assert.Equal(t, 3, result.Candidates[2].Rank)
	// Tie at the top resolves to the lower candidate id, deterministically
	assert.Equal(t, []int64{20}, result.WinnerIDs)
}

func TestTallyMultipleChoice(t *testing.T) {
	position := database.Position{
		ID:           2,
		Name:         "Senate Seats",
		Type:         database.PositionTypeMultiple,
		MaxSelection: intPtr(2),
	}
	candidates := makeCandidates(30, 31, 32)

	ballots := []ParsedBallot{
		{2: {Value: MultipleChoice{CandidateIDs: []int64{30, 31}}}},
		{2: {Value: MultipleChoice{CandidateIDs: []int64{30, 32}}}},
		{2: {Value: MultipleChoice{CandidateIDs: []int64{31}}}},
	}

	result := Tally(position, candidates, ballots)

	assert.Equal(t, 3, result.ValidVotes)
	assert.Equal(t, []int64{30, 31}, result.WinnerIDs)

	// A ballot can count toward several candidates
	sum := 0
	for _, row := range result.Candidates {
		sum += row.Votes
	}
	assert.GreaterOrEqual(t, sum, result.ValidVotes)
}

func TestTallyRankedInstantRunoff(t *testing.T) {
	// Fixture: [A,B]x3, [A,C]x2, [B,A]x3, [C,B]x2 with A=1, B=2, C=3.
	// Round 1: A=5, B=3, C=2 of 10 — majority is 6, nobody has it.
	// C is eliminated; both C ballots transfer to B, leaving A=5, B=5.
	// Still no majority, and the 5-5 elimination tie resolves to the lowest
	// candidate id: A goes, B wins as the last candidate standing.
	position := database.Position{
		ID:            3,
		Name:          "Union Chair",
		Type:          database.PositionTypeRanked,
		RankingLevels: intPtr(2),
	}
	candidates := makeCandidates(1, 2, 3)

	var ballots []ParsedBallot
	for i := 0; i < 3; i++ {
		ballots = append(ballots, rankedBallot(3, 1, 2))
	}
	for i := 0; i < 2; i++ {
		ballots = append(ballots, rankedBallot(3, 1, 3))
	}
	for i := 0; i < 3; i++ {
		ballots = append(ballots, rankedBallot(3, 2, 1))
	}
	for i := 0; i < 2; i++ {
		ballots = append(ballots, rankedBallot(3, 3, 2))
	}

	result := Tally(position, candidates, ballots)

	assert.Equal(t, []int64{2}, result.WinnerIDs)
	assert.False(t, result.SafetyLimit)

	// First-choice table: A=5, B=3, C=2
	require.Len(t, result.Candidates, 3)
	assert.Equal(t, int64(1), result.Candidates[0].CandidateID)
	assert.Equal(t, 5, result.Candidates[0].Votes)
	assert.Equal(t, int64(2), result.Candidates[1].CandidateID)
	assert.Equal(t, 3, result.Candidates[1].Votes)

	// Stable across repeated runs: tie-breaks depend only on candidate ids
	for i := 0; i < 10; i++ {
		again := Tally(position, candidates, ballots)
		assert.Equal(t, result.WinnerIDs, again.WinnerIDs)
	}
}

func TestTallyRankedMajorityShortCircuits(t *testing.T) {
	position := database.Position{ID: 4, Name: "Secretary", Type: database.PositionTypeRanked}
	candidates := makeCandidates(1, 2)

	ballots := []ParsedBallot{
		rankedBallot(4, 1, 2),
		rankedBallot(4, 1, 2),
		rankedBallot(4, 2, 1),
	}

	result := Tally(position, candidates, ballots)

	// 2 of 3 meets floor(3/2)+1 in round one
	assert.Equal(t, []int64{1}, result.WinnerIDs)
	assert.Equal(t, 1, result.RunoffRounds)
}

func TestTallyRankedZeroBallotsHasNoWinner(t *testing.T) {
	position := database.Position{ID: 5, Name: "Delegate", Type: database.PositionTypeRanked}
	result := Tally(position, makeCandidates(1, 2, 3), nil)

	assert.Empty(t, result.WinnerIDs)
	assert.Equal(t, 0, result.RunoffRounds)
}

func TestTallySkipsMalformedEntries(t *testing.T) {
	position := database.Position{ID: 6, Name: "Auditor", Type: database.PositionTypeSingle}
	candidates := makeCandidates(40, 41)

	ballots := []ParsedBallot{
		singleBallot(6, 40),
		{6: {Malformed: true}},
		singleBallot(6, 41),
	}

	result := Tally(position, candidates, ballots)

	assert.Equal(t, 3, result.TotalBallots)
	assert.Equal(t, 2, result.ValidVotes)
}

func TestTallyIsOrderInvariant(t *testing.T) {
	position := database.Position{ID: 7, Name: "Rep", Type: database.PositionTypeSingle}
	candidates := makeCandidates(50, 51, 52)

	forward := []ParsedBallot{
		singleBallot(7, 50), singleBallot(7, 51), singleBallot(7, 51), singleBallot(7, 52),
	}
	reversed := []ParsedBallot{
		singleBallot(7, 52), singleBallot(7, 51), singleBallot(7, 51), singleBallot(7, 50),
	}

	assert.Equal(t, Tally(position, candidates, forward), Tally(position, candidates, reversed))
}
