package database

import (
	"database/sql"
	"fmt"
)

// RunMigrations executes database migrations
func RunMigrations(db *sql.DB) error {
	migrations := []string{
		createElectionsTable,
		createPositionsTable,
		createCandidatesTable,
		createBallotsTable,
		createStudentsTable,
		createAuditLogsTable,
		createIndices,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %v", i+1, err)
		}
	}

	return nil
}

// Database schema definitions
const createElectionsTable = `
CREATE TABLE IF NOT EXISTS elections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title VARCHAR(255) NOT NULL,
    description TEXT,
    status VARCHAR(20) NOT NULL DEFAULT 'draft',
    is_universal BOOLEAN DEFAULT FALSE,
    is_special BOOLEAN DEFAULT FALSE,
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP NOT NULL,
    default_ballot_type VARCHAR(20) DEFAULT 'single',
    allow_write_in BOOLEAN DEFAULT FALSE,
    allow_abstain BOOLEAN DEFAULT FALSE,
    eligible_departments TEXT DEFAULT '[]',
    eligible_class_levels TEXT DEFAULT '[]',
    eligible_organizations TEXT DEFAULT '[]',
    eligible_voter_ids TEXT DEFAULT '[]',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    CHECK (start_time < end_time)
);`

const createPositionsTable = `
CREATE TABLE IF NOT EXISTS positions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    election_id INTEGER NOT NULL,
    name VARCHAR(255) NOT NULL,
    description TEXT,
    type VARCHAR(20) NOT NULL DEFAULT 'single',
    max_selection INTEGER,
    ranking_levels INTEGER,
    allow_abstain BOOLEAN DEFAULT FALSE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (election_id) REFERENCES elections(id),
    CHECK (type IN ('single', 'multiple', 'ranked')),
    CHECK (max_selection IS NULL OR type = 'multiple'),
    CHECK (ranking_levels IS NULL OR type = 'ranked')
);`

const createCandidatesTable = `
CREATE TABLE IF NOT EXISTS candidates (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    position_id INTEGER NOT NULL,
    election_id INTEGER NOT NULL,
    user_id INTEGER NOT NULL,
    name VARCHAR(255) NOT NULL,
    tagline VARCHAR(255),
    bio TEXT,
    approved BOOLEAN DEFAULT FALSE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (position_id) REFERENCES positions(id),
    FOREIGN KEY (election_id) REFERENCES elections(id)
);`

const createBallotsTable = `
CREATE TABLE IF NOT EXISTS ballots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    election_id INTEGER NOT NULL,
    voter_id INTEGER NOT NULL,
    vote_data TEXT NOT NULL,
    voted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (election_id) REFERENCES elections(id)
);`

const createStudentsTable = `
CREATE TABLE IF NOT EXISTS students (
    id INTEGER PRIMARY KEY,
    department VARCHAR(100),
    class_level VARCHAR(50),
    organizations TEXT DEFAULT '[]',
    is_active BOOLEAN DEFAULT TRUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

const createAuditLogsTable = `
CREATE TABLE IF NOT EXISTS audit_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    action VARCHAR(100) NOT NULL,
    user_id VARCHAR(255),
    election_id INTEGER,
    details TEXT,
    ip_address VARCHAR(45),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

const createIndices = `
-- One ballot per (election, voter): the vote-casting uniqueness invariant.
CREATE UNIQUE INDEX IF NOT EXISTS idx_ballots_election_voter ON ballots(election_id, voter_id);
-- One candidacy per user per election.
CREATE UNIQUE INDEX IF NOT EXISTS idx_candidates_election_user ON candidates(election_id, user_id);
CREATE INDEX IF NOT EXISTS idx_ballots_voter ON ballots(voter_id);
CREATE INDEX IF NOT EXISTS idx_positions_election ON positions(election_id);
CREATE INDEX IF NOT EXISTS idx_candidates_position ON candidates(position_id, approved);
CREATE INDEX IF NOT EXISTS idx_elections_status ON elections(status);
CREATE INDEX IF NOT EXISTS idx_elections_dates ON elections(start_time, end_time);
CREATE INDEX IF NOT EXISTS idx_audit_logs_action ON audit_logs(action, created_at);
`
