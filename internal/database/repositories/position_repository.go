package repositories

import (
	"database/sql"

	"campus-vote/internal/database"
)

type PositionRepository struct {
	db *sql.DB
}

func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// ListByElection retrieves all positions for an election
func (r *PositionRepository) ListByElection(electionID int64) ([]database.Position, error) {
	query := `
        SELECT id, election_id, name, description, type, max_selection, ranking_levels, allow_abstain, created_at
        FROM positions
        WHERE election_id = ?
        ORDER BY id ASC
    `

	rows, err := r.db.Query(query, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []database.Position
	for rows.Next() {
		var p database.Position
		if err := rows.Scan(&p.ID, &p.ElectionID, &p.Name, &p.Description, &p.Type,
			&p.MaxSelection, &p.RankingLevels, &p.AllowAbstain, &p.CreatedAt); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	return positions, rows.Err()
}

// CreatePosition creates a new position record
func (r *PositionRepository) CreatePosition(position *database.Position) error {
	query := `
        INSERT INTO positions (election_id, name, description, type, max_selection, ranking_levels, allow_abstain)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	result, err := r.db.Exec(query, position.ElectionID, position.Name, position.Description,
		position.Type, position.MaxSelection, position.RankingLevels, position.AllowAbstain)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	position.ID = id
	return nil
}
