package voting

import (
	"campus-vote/internal/database"
)

// Voter is the identity-provider projection of a student: just the
// attributes eligibility rules consult.
type Voter struct {
	ID            int64   `json:"id"`
	Department    string  `json:"department"`
	ClassLevel    string  `json:"class_level"`
	Organizations []int64 `json:"organizations"`
}

// IsEligible decides whether a voter may see and vote in an election.
// The rule is a pure OR-disjunction over independent predicates: a single
// match grants eligibility. Safe to call for draft elections; visibility
// filtering happens one layer up.
func IsEligible(election *database.Election, voter Voter) bool {
	if election.IsUniversal {
		return true
	}

	for _, dept := range election.EligibleDepartments {
		if dept == voter.Department {
			return true
		}
	}

	for _, level := range election.EligibleClassLevels {
		if level == voter.ClassLevel {
			return true
		}
	}

	for _, id := range election.EligibleVoterIDs {
		if id == voter.ID {
			return true
		}
	}

	for _, org := range election.EligibleOrganizations {
		for _, member := range voter.Organizations {
			if org == member {
				return true
			}
		}
	}

	return false
}
