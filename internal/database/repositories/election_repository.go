package repositories

import (
	"database/sql"

	"campus-vote/internal/database"
)

type ElectionRepository struct {
	db *sql.DB
}

func NewElectionRepository(db *sql.DB) *ElectionRepository {
	return &ElectionRepository{db: db}
}

const electionColumns = `id, title, description, status, is_universal, is_special,
       start_time, end_time, default_ballot_type, allow_write_in, allow_abstain,
       eligible_departments, eligible_class_levels, eligible_organizations, eligible_voter_ids,
       created_at`

func scanElection(row interface{ Scan(...interface{}) error }) (*database.Election, error) {
	var e database.Election
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Status, &e.IsUniversal, &e.IsSpecial,
		&e.StartTime, &e.EndTime, &e.DefaultBallotType, &e.AllowWriteIn, &e.AllowAbstain,
		&e.EligibleDepartments, &e.EligibleClassLevels, &e.EligibleOrganizations, &e.EligibleVoterIDs,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetElectionByID retrieves an election by ID
func (r *ElectionRepository) GetElectionByID(electionID int64) (*database.Election, error) {
	query := `SELECT ` + electionColumns + ` FROM elections WHERE id = ?`
	return scanElection(r.db.QueryRow(query, electionID))
}

// ListVisibleElections retrieves all non-draft elections, newest first.
// Draft elections are never exposed outside the admin surface.
func (r *ElectionRepository) ListVisibleElections(limit, offset int) ([]database.Election, error) {
	query := `
        SELECT ` + electionColumns + `
        FROM elections
        WHERE status != ?
        ORDER BY start_time DESC
        LIMIT ? OFFSET ?
    `

	rows, err := r.db.Query(query, database.ElectionStatusDraft, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var elections []database.Election
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, err
		}
		elections = append(elections, *e)
	}

	return elections, rows.Err()
}

// CreateElection creates a new election record. Used by the admin surface
// and by test fixtures; the engine itself only reads elections.
func (r *ElectionRepository) CreateElection(election *database.Election) error {
	query := `
        INSERT INTO elections (title, description, status, is_universal, is_special,
                               start_time, end_time, default_ballot_type, allow_write_in, allow_abstain,
                               eligible_departments, eligible_class_levels, eligible_organizations, eligible_voter_ids)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	result, err := r.db.Exec(query,
		election.Title, election.Description, election.Status, election.IsUniversal, election.IsSpecial,
		election.StartTime, election.EndTime, election.DefaultBallotType, election.AllowWriteIn, election.AllowAbstain,
		election.EligibleDepartments, election.EligibleClassLevels, election.EligibleOrganizations, election.EligibleVoterIDs,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	election.ID = id
	return nil
}

// UpdateElectionStatus advances an election along its lifecycle
func (r *ElectionRepository) UpdateElectionStatus(electionID int64, status string) error {
	query := `UPDATE elections SET status = ? WHERE id = ?`
	_, err := r.db.Exec(query, status, electionID)
	return err
}

// CountClosedEligible counts closed, non-draft elections whose window has
// ended; used for the perfect-participation bonus
func (r *ElectionRepository) CountClosedEligible() (int, error) {
	query := `
        SELECT COUNT(*)
        FROM elections
        WHERE status != ? AND end_time < CURRENT_TIMESTAMP
    `
	var count int
	err := r.db.QueryRow(query, database.ElectionStatusDraft).Scan(&count)
	return count, err
}
