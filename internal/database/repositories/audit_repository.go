package repositories

import (
	"database/sql"
	"time"

	"campus-vote/internal/database"
)

type AuditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// InsertAuditLog records an audit event
func (r *AuditLogRepository) InsertAuditLog(entry *database.AuditLog) error {
	query := `
        INSERT INTO audit_logs (action, user_id, election_id, details, ip_address, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.Exec(query, entry.Action, entry.UserID, entry.ElectionID,
		entry.Details, entry.IPAddress, entry.CreatedAt)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// ListRecent retrieves the most recent audit log entries
func (r *AuditLogRepository) ListRecent(limit int) ([]database.AuditLog, error) {
	query := `
        SELECT id, action, user_id, election_id, details, ip_address, created_at
        FROM audit_logs
        ORDER BY created_at DESC
        LIMIT ?
    `

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []database.AuditLog
	for rows.Next() {
		var entry database.AuditLog
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.UserID, &entry.ElectionID,
			&entry.Details, &entry.IPAddress, &entry.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}

	return logs, rows.Err()
}
