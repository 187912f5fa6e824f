package voting

import (
	"encoding/json"
	"fmt"

	"campus-vote/internal/database"
)

// VoteValue is the tagged per-position selection inside a ballot. The
// concrete shape is selected by the position's declared type rather than
// left as an untyped document.
type VoteValue interface {
	isVoteValue()
}

// SingleChoice selects exactly one candidate
type SingleChoice struct {
	CandidateID int64 `json:"candidate_id"`
}

// MultipleChoice selects a set of candidates
type MultipleChoice struct {
	CandidateIDs []int64 `json:"candidate_ids"`
}

// Ranking pairs a candidate with a 1-based preference rank
type Ranking struct {
	CandidateID int64 `json:"candidate_id"`
	Rank        int   `json:"rank"`
}

// RankedChoice orders candidates by preference
type RankedChoice struct {
	Rankings []Ranking `json:"rankings"`
}

func (SingleChoice) isVoteValue()   {}
func (MultipleChoice) isVoteValue() {}
func (RankedChoice) isVoteValue()   {}

// Entry is one position's slot within a parsed ballot
type Entry struct {
	Abstain   bool
	Value     VoteValue // nil when absent, abstained, or malformed
	Malformed bool      // value present but not decodable for the position type
}

// ParsedBallot maps position id to that position's entry. Positions the
// ballot does not touch have no key.
type ParsedBallot map[int64]Entry

// HasSelection reports whether at least one position carries a non-abstain
// selection
func (b ParsedBallot) HasSelection() bool {
	for _, entry := range b {
		if !entry.Abstain && entry.Value != nil {
			return true
		}
	}
	return false
}

// ParseVoteData decodes a persisted (or submitted) vote_data document into
// typed per-position values. The document is keyed "position_<id>" with an
// optional "position_<id>_abstain" flag. Malformed values are marked rather
// than failing the parse, so tallying can skip them defensively.
func ParseVoteData(raw []byte, positions []database.Position) (ParsedBallot, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("vote data is not a JSON object: %w", err)
	}

	ballot := make(ParsedBallot, len(positions))
	for _, position := range positions {
		key := fmt.Sprintf("position_%d", position.ID)
		abstainKey := key + "_abstain"

		entry := Entry{}
		touched := false

		if rawFlag, ok := doc[abstainKey]; ok {
			touched = true
			var abstain bool
			if err := json.Unmarshal(rawFlag, &abstain); err == nil && abstain {
				entry.Abstain = true
			}
		}

		if rawValue, ok := doc[key]; ok && !entry.Abstain {
			touched = true
			value, err := decodeValue(position.Type, rawValue)
			if err != nil {
				entry.Malformed = true
			} else {
				entry.Value = value
			}
		}

		if touched {
			ballot[position.ID] = entry
		}
	}

	return ballot, nil
}

func decodeValue(positionType string, raw json.RawMessage) (VoteValue, error) {
	switch positionType {
	case database.PositionTypeSingle:
		var v SingleChoice
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		if v.CandidateID <= 0 {
			return nil, fmt.Errorf("missing candidate_id")
		}
		return v, nil

	case database.PositionTypeMultiple:
		var v MultipleChoice
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil

	case database.PositionTypeRanked:
		var v RankedChoice
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil

	default:
		return nil, fmt.Errorf("unknown position type %q", positionType)
	}
}
