package database

import (
	"database/sql"
	"errors"
	"fmt"

	"campus-vote/pkg/config"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrDuplicateBallot is returned when an insert violates the one-ballot-per
// (election, voter) uniqueness constraint. Callers treat it as the canonical
// "already voted" signal; pre-checks in application code are advisory only.
var ErrDuplicateBallot = errors.New("duplicate ballot for election and voter")

// NewConnection creates a new database connection based on configuration
func NewConnection(cfg *config.Config) (*sql.DB, error) {
	var driverName string
	switch cfg.Database.Type {
	case "postgres":
		driverName = "postgres"
	case "sqlite":
		driverName = "sqlite3"
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}

	db, err := sql.Open(driverName, cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	return db, nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// either supported driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" // unique_violation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint &&
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}
