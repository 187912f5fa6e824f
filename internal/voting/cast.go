package voting

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campus-vote/internal/database"
)

// BallotStore is the transactional persistence boundary the casting
// protocol writes through. InsertBallot must enforce the one-ballot-per
// (election, voter) invariant atomically and return
// database.ErrDuplicateBallot on violation; a check-then-insert store is a
// defect, not an optimization.
type BallotStore interface {
	GetBallot(ctx context.Context, electionID, voterID int64) (*database.Ballot, error)
	InsertBallot(ctx context.Context, ballot *database.Ballot) error
}

// AuditSink receives fire-and-forget cast events. Implementations must not
// return errors into the cast path; a failed event never rolls back a
// recorded ballot.
type AuditSink interface {
	BallotCast(election *database.Election, voter Voter, ballot *database.Ballot)
	BallotRejected(election *database.Election, voter Voter, reason string)
}

// Caster runs the vote-casting protocol: precondition checks in a fixed
// order, each with a distinct reportable failure, then a single atomic
// insert.
type Caster struct {
	Store BallotStore
	Audit AuditSink
	Now   func() time.Time
}

func NewCaster(store BallotStore, audit AuditSink) *Caster {
	return &Caster{
		Store: store,
		Audit: audit,
		Now:   time.Now,
	}
}

// Cast validates and durably records one voter's ballot for an election.
//
// Preconditions, in order: the election window is open; the voter is
// eligible; no ballot exists yet for (election, voter); every position
// validates; at least one position carries a non-abstain selection. The
// existing-ballot read is advisory — the storage-layer unique constraint is
// what serializes concurrent attempts, and its violation surfaces as
// ErrAlreadyVoted exactly like the pre-check.
func (c *Caster) Cast(
	ctx context.Context,
	election *database.Election,
	positions []database.Position,
	approved map[int64][]int64,
	voter Voter,
	voteData []byte,
) (*database.Ballot, error) {
	now := c.Now()

	if CurrentStatus(now, election) != StatusOpen {
		c.reject(election, voter, "election_not_open")
		return nil, ErrElectionNotOpen
	}

	if !IsEligible(election, voter) {
		c.reject(election, voter, "not_eligible")
		return nil, ErrNotEligible
	}

	existing, err := c.Store.GetBallot(ctx, election.ID, voter.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		c.reject(election, voter, "already_voted")
		return nil, ErrAlreadyVoted
	}

	ballot, err := ParseVoteData(voteData, positions)
	if err != nil {
		c.reject(election, voter, "invalid_ballot")
		return nil, &InvalidBallotError{Failures: []ValidationError{{Reason: ReasonMalformedValue}}}
	}

	if failures := ValidateBallot(positions, ballot, approved); len(failures) > 0 {
		c.reject(election, voter, "invalid_ballot")
		return nil, &InvalidBallotError{Failures: failures}
	}

	if !ballot.HasSelection() {
		c.reject(election, voter, "no_selection_made")
		return nil, ErrNoSelectionMade
	}

	record := &database.Ballot{
		ElectionID: election.ID,
		VoterID:    voter.ID,
		VoteData:   voteData,
		VotedAt:    now.UTC(),
	}

	if err := c.Store.InsertBallot(ctx, record); err != nil {
		if errors.Is(err, database.ErrDuplicateBallot) {
			// A concurrent cast won the race; indistinguishable from the
			// pre-check failure by design.
			c.reject(election, voter, "already_voted")
			return nil, ErrAlreadyVoted
		}
		return nil, err
	}

	if c.Audit != nil {
		c.Audit.BallotCast(election, voter, record)
	}

	return record, nil
}

func (c *Caster) reject(election *database.Election, voter Voter, reason string) {
	if c.Audit != nil {
		c.Audit.BallotRejected(election, voter, reason)
	}
}
