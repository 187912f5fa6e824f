package repositories

import (
	"database/sql"

	"campus-vote/internal/database"
)

// StudentRepository reads the identity provider's student directory mirror.
// Registration and profile management live outside this service.
type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// GetStudentByID retrieves a student record
func (r *StudentRepository) GetStudentByID(studentID int64) (*database.Student, error) {
	query := `
        SELECT id, department, class_level, organizations, is_active, created_at
        FROM students
        WHERE id = ?
    `

	var s database.Student
	err := r.db.QueryRow(query, studentID).Scan(
		&s.ID, &s.Department, &s.ClassLevel, &s.Organizations, &s.IsActive, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// CountActive returns the number of active students; the denominator for
// campus-wide percentile statistics
func (r *StudentRepository) CountActive() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM students WHERE is_active = TRUE`).Scan(&count)
	return count, err
}
