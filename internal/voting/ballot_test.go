package voting

import (
	"testing"

	"campus-vote/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVoteData(t *testing.T) {
	positions := []database.Position{
		{ID: 1, Type: database.PositionTypeSingle},
		{ID: 2, Type: database.PositionTypeMultiple},
		{ID: 3, Type: database.PositionTypeRanked},
	}

	raw := []byte(`{
		"position_1": {"candidate_id": 10},
		"position_2": {"candidate_ids": [20, 21]},
		"position_3": {"rankings": [
			{"candidate_id": 30, "rank": 1},
			{"candidate_id": 31, "rank": 2}
		]}
	}`)

	ballot, err := ParseVoteData(raw, positions)
	require.NoError(t, err)
	require.Len(t, ballot, 3)

	assert.Equal(t, SingleChoice{CandidateID: 10}, ballot[1].Value)
	assert.Equal(t, MultipleChoice{CandidateIDs: []int64{20, 21}}, ballot[2].Value)
	ranked, ok := ballot[3].Value.(RankedChoice)
	require.True(t, ok)
	assert.Len(t, ranked.Rankings, 2)
	assert.True(t, ballot.HasSelection())
}

func TestParseVoteDataAbstainFlag(t *testing.T) {
	positions := []database.Position{{ID: 1, Type: database.PositionTypeSingle}}

	ballot, err := ParseVoteData([]byte(`{"position_1_abstain": true}`), positions)
	require.NoError(t, err)
	require.Contains(t, ballot, int64(1))
	assert.True(t, ballot[1].Abstain)
	assert.Nil(t, ballot[1].Value)
	assert.False(t, ballot.HasSelection())

	// Abstain flag wins over a value for the same position
	ballot, err = ParseVoteData(
		[]byte(`{"position_1_abstain": true, "position_1": {"candidate_id": 10}}`), positions)
	require.NoError(t, err)
	assert.True(t, ballot[1].Abstain)
	assert.Nil(t, ballot[1].Value)
}

func TestParseVoteDataUntouchedPositionsHaveNoEntry(t *testing.T) {
	positions := []database.Position{
		{ID: 1, Type: database.PositionTypeSingle},
		{ID: 2, Type: database.PositionTypeSingle},
	}

	ballot, err := ParseVoteData([]byte(`{"position_1": {"candidate_id": 10}}`), positions)
	require.NoError(t, err)
	assert.Contains(t, ballot, int64(1))
	assert.NotContains(t, ballot, int64(2))
}

func TestParseVoteDataMalformedValueIsNotFatal(t *testing.T) {
	positions := []database.Position{
		{ID: 1, Type: database.PositionTypeSingle},
		{ID: 2, Type: database.PositionTypeSingle},
	}

	raw := []byte(`{
		"position_1": "not an object",
		"position_2": {"candidate_id": 10}
	}`)

	ballot, err := ParseVoteData(raw, positions)
	require.NoError(t, err)
	assert.True(t, ballot[1].Malformed)
	assert.Nil(t, ballot[1].Value)
	assert.Equal(t, SingleChoice{CandidateID: 10}, ballot[2].Value)
}

func TestParseVoteDataRejectsNonObject(t *testing.T) {
	_, err := ParseVoteData([]byte(`[1, 2, 3]`), nil)
	assert.Error(t, err)

	_, err = ParseVoteData([]byte(`not json`), nil)
	assert.Error(t, err)
}

func TestParseVoteDataSingleChoiceRequiresCandidateID(t *testing.T) {
	positions := []database.Position{{ID: 1, Type: database.PositionTypeSingle}}

	ballot, err := ParseVoteData([]byte(`{"position_1": {}}`), positions)
	require.NoError(t, err)
	assert.True(t, ballot[1].Malformed)
}
