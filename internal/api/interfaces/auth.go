package interfaces

// Claims is the verified identity-provider projection of a student. The
// identity provider owns authentication; this service only trusts the
// signed attributes it needs for eligibility decisions.
type Claims struct {
	StudentID     int64   `json:"student_id"`
	Department    string  `json:"department"`
	ClassLevel    string  `json:"class_level"`
	Organizations []int64 `json:"organizations"`
	Role          string  `json:"role"`
	ExpiresAt     int64   `json:"expires_at"`
}

// AuthServiceInterface defines authentication operations
type AuthServiceInterface interface {
	ValidateToken(token string) (*Claims, error)
}
