package voting

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the casting protocol and results computation. Handlers
// map these onto structured API responses; they are never retried.
var (
	ErrNotEligible         = errors.New("voter is not eligible for this election")
	ErrElectionNotOpen     = errors.New("election is not open for voting")
	ErrAlreadyVoted        = errors.New("voter has already cast a ballot in this election")
	ErrNoSelectionMade     = errors.New("ballot abstains on every position")
	ErrResultsNotAvailable = errors.New("results are not available until the election closes")
)

// Machine-readable ballot validation reasons
const (
	ReasonNotApprovedCandidate     = "not-approved-candidate"
	ReasonTooManySelections        = "too-many-selections"
	ReasonDuplicateRank            = "duplicate-rank"
	ReasonDuplicateCandidate       = "duplicate-candidate"
	ReasonInvalidRank              = "invalid-rank"
	ReasonMissingRequiredSelection = "missing-required-selection"
	ReasonAbstainNotAllowed        = "abstain-not-allowed"
	ReasonMalformedValue           = "malformed-value"
)

// ValidationError describes one position that failed ballot validation
type ValidationError struct {
	PositionID   int64  `json:"position_id"`
	PositionName string `json:"position"`
	Reason       string `json:"reason"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("position %q: %s", e.PositionName, e.Reason)
}

// InvalidBallotError rejects a whole ballot; partial ballots are never
// persisted, so it carries every failing position.
type InvalidBallotError struct {
	Failures []ValidationError
}

func (e *InvalidBallotError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return "invalid ballot: " + strings.Join(parts, "; ")
}
