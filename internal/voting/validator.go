package voting

import (
	"campus-vote/internal/database"
)

// ValidateBallot checks every position's entry against the position's type
// and constraints. The approved candidate set is passed in explicitly — the
// same lookup feeds validation and tallying, so the two can never diverge.
// A non-empty result rejects the whole ballot.
func ValidateBallot(positions []database.Position, ballot ParsedBallot, approved map[int64][]int64) []ValidationError {
	var failures []ValidationError

	for _, position := range positions {
		entry := ballot[position.ID]
		if failure := validatePosition(position, entry, approved[position.ID]); failure != nil {
			failures = append(failures, *failure)
		}
	}

	return failures
}

// validatePosition checks a single position's entry. Abstaining, where
// allowed, suppresses all other validation for the position.
func validatePosition(position database.Position, entry Entry, approvedIDs []int64) *ValidationError {
	fail := func(reason string) *ValidationError {
		return &ValidationError{
			PositionID:   position.ID,
			PositionName: position.Name,
			Reason:       reason,
		}
	}

	if entry.Abstain {
		if !position.AllowAbstain {
			return fail(ReasonAbstainNotAllowed)
		}
		return nil
	}

	if entry.Malformed {
		return fail(ReasonMalformedValue)
	}

	if entry.Value == nil {
		if position.AllowAbstain {
			// Absent value counts as an abstention
			return nil
		}
		return fail(ReasonMissingRequiredSelection)
	}

	approved := make(map[int64]bool, len(approvedIDs))
	for _, id := range approvedIDs {
		approved[id] = true
	}

	switch value := entry.Value.(type) {
	case SingleChoice:
		if !approved[value.CandidateID] {
			return fail(ReasonNotApprovedCandidate)
		}

	case MultipleChoice:
		if len(value.CandidateIDs) == 0 {
			return fail(ReasonMissingRequiredSelection)
		}
		if position.MaxSelection != nil && len(value.CandidateIDs) > *position.MaxSelection {
			return fail(ReasonTooManySelections)
		}
		seen := make(map[int64]bool, len(value.CandidateIDs))
		for _, id := range value.CandidateIDs {
			if seen[id] {
				return fail(ReasonDuplicateCandidate)
			}
			seen[id] = true
			if !approved[id] {
				return fail(ReasonNotApprovedCandidate)
			}
		}

	case RankedChoice:
		if len(value.Rankings) == 0 {
			return fail(ReasonMissingRequiredSelection)
		}
		if position.RankingLevels != nil && len(value.Rankings) > *position.RankingLevels {
			return fail(ReasonTooManySelections)
		}
		seenCandidates := make(map[int64]bool, len(value.Rankings))
		seenRanks := make(map[int]bool, len(value.Rankings))
		for _, ranking := range value.Rankings {
			if ranking.Rank < 1 {
				return fail(ReasonInvalidRank)
			}
			if seenRanks[ranking.Rank] {
				return fail(ReasonDuplicateRank)
			}
			seenRanks[ranking.Rank] = true
			if seenCandidates[ranking.CandidateID] {
				return fail(ReasonDuplicateCandidate)
			}
			seenCandidates[ranking.CandidateID] = true
			if !approved[ranking.CandidateID] {
				return fail(ReasonNotApprovedCandidate)
			}
		}

	default:
		return fail(ReasonMalformedValue)
	}

	return nil
}
