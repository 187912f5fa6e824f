package repositories

import (
	"database/sql"

	"campus-vote/internal/database"
)

type CandidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// CreateCandidate records a candidacy. The unique index on
// (election_id, user_id) rejects a second candidacy for the same user in
// the same election; database.ErrDuplicateBallot is not reused here, the
// raw constraint error surfaces to the admin caller.
func (r *CandidateRepository) CreateCandidate(candidate *database.Candidate) error {
	query := `
        INSERT INTO candidates (position_id, election_id, user_id, name, tagline, bio, approved)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	result, err := r.db.Exec(query, candidate.PositionID, candidate.ElectionID, candidate.UserID,
		candidate.Name, candidate.Tagline, candidate.Bio, candidate.Approved)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	candidate.ID = id
	return nil
}

// ListApprovedByElection retrieves every approved candidate in an election,
// grouped by position. Validation and tallying both consume this single
// lookup so they can never disagree on the candidate set.
func (r *CandidateRepository) ListApprovedByElection(electionID int64) (map[int64][]database.Candidate, error) {
	query := `
        SELECT id, position_id, election_id, user_id, name, tagline, bio, approved, created_at
        FROM candidates
        WHERE election_id = ? AND approved = TRUE
        ORDER BY position_id ASC, id ASC
    `

	rows, err := r.db.Query(query, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byPosition := make(map[int64][]database.Candidate)
	for rows.Next() {
		var c database.Candidate
		if err := rows.Scan(&c.ID, &c.PositionID, &c.ElectionID, &c.UserID,
			&c.Name, &c.Tagline, &c.Bio, &c.Approved, &c.CreatedAt); err != nil {
			return nil, err
		}
		byPosition[c.PositionID] = append(byPosition[c.PositionID], c)
	}

	return byPosition, rows.Err()
}
