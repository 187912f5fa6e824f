package repositories

import (
	"context"
	"database/sql"
	"time"

	"campus-vote/internal/database"
)

// BallotRepository is the transactional persistence boundary for ballots.
type BallotRepository struct {
	db *sql.DB
}

func NewBallotRepository(db *sql.DB) *BallotRepository {
	return &BallotRepository{db: db}
}

// InsertBallot durably records a ballot. The unique index on
// (election_id, voter_id) serializes concurrent cast attempts for the same
// voter; a constraint failure maps to database.ErrDuplicateBallot. The insert
// is a single statement, so a cancelled context leaves no partial row.
func (r *BallotRepository) InsertBallot(ctx context.Context, ballot *database.Ballot) error {
	query := `
        INSERT INTO ballots (election_id, voter_id, vote_data, voted_at)
        VALUES (?, ?, ?, ?)
    `
	if ballot.VotedAt.IsZero() {
		ballot.VotedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query, ballot.ElectionID, ballot.VoterID,
		string(ballot.VoteData), ballot.VotedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return database.ErrDuplicateBallot
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	ballot.ID = id
	return nil
}

// GetBallot retrieves the ballot for (election, voter), or sql.ErrNoRows
func (r *BallotRepository) GetBallot(ctx context.Context, electionID, voterID int64) (*database.Ballot, error) {
	query := `
        SELECT id, election_id, voter_id, vote_data, voted_at
        FROM ballots
        WHERE election_id = ? AND voter_id = ?
    `

	var ballot database.Ballot
	var voteData string
	err := r.db.QueryRowContext(ctx, query, electionID, voterID).Scan(
		&ballot.ID, &ballot.ElectionID, &ballot.VoterID, &voteData, &ballot.VotedAt,
	)
	if err != nil {
		return nil, err
	}

	ballot.VoteData = []byte(voteData)
	return &ballot, nil
}

// ListByElection retrieves every ballot cast in an election
func (r *BallotRepository) ListByElection(electionID int64) ([]database.Ballot, error) {
	query := `
        SELECT id, election_id, voter_id, vote_data, voted_at
        FROM ballots
        WHERE election_id = ?
        ORDER BY id ASC
    `

	rows, err := r.db.Query(query, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ballots []database.Ballot
	for rows.Next() {
		var ballot database.Ballot
		var voteData string
		if err := rows.Scan(&ballot.ID, &ballot.ElectionID, &ballot.VoterID,
			&voteData, &ballot.VotedAt); err != nil {
			return nil, err
		}
		ballot.VoteData = []byte(voteData)
		ballots = append(ballots, ballot)
	}

	return ballots, rows.Err()
}

// CountByElection returns total ballot rows and distinct voters for an election
func (r *BallotRepository) CountByElection(electionID int64) (total int, uniqueVoters int, err error) {
	query := `
        SELECT COUNT(*), COUNT(DISTINCT voter_id)
        FROM ballots
        WHERE election_id = ?
    `
	err = r.db.QueryRow(query, electionID).Scan(&total, &uniqueVoters)
	return total, uniqueVoters, err
}

// CountByVoter returns elections-voted counts keyed by voter id, covering
// every voter who has cast at least one ballot
func (r *BallotRepository) CountByVoter() (map[int64]int, error) {
	query := `
        SELECT voter_id, COUNT(*) AS ballot_count
        FROM ballots
        GROUP BY voter_id
    `

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var voterID int64
		var count int
		if err := rows.Scan(&voterID, &count); err != nil {
			return nil, err
		}
		counts[voterID] = count
	}

	return counts, rows.Err()
}

// ListParticipation returns one row per ballot the voter has cast, joined
// with the election's time window and flags, for campus statistics
func (r *BallotRepository) ListParticipation(voterID int64) ([]database.Participation, error) {
	query := `
        SELECT b.election_id, b.voted_at, e.start_time, e.end_time, e.is_special, e.status
        FROM ballots b
        JOIN elections e ON e.id = b.election_id
        WHERE b.voter_id = ?
        ORDER BY b.voted_at ASC
    `

	rows, err := r.db.Query(query, voterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participation []database.Participation
	for rows.Next() {
		var p database.Participation
		if err := rows.Scan(&p.ElectionID, &p.VotedAt, &p.StartTime, &p.EndTime,
			&p.IsSpecial, &p.Status); err != nil {
			return nil, err
		}
		participation = append(participation, p)
	}

	return participation, rows.Err()
}
