package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Election lifecycle states as stored. The open/closed state exposed to
// clients is derived from the time window, never from this column.
const (
	ElectionStatusDraft    = "draft"
	ElectionStatusActive   = "active"
	ElectionStatusClosed   = "closed"
	ElectionStatusArchived = "archived"
)

// Position ballot types
const (
	PositionTypeSingle   = "single"
	PositionTypeMultiple = "multiple"
	PositionTypeRanked   = "ranked"
)

// StringList is a JSON-encoded list of strings stored in a TEXT column
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Int64List is a JSON-encoded list of ids stored in a TEXT column
type Int64List []int64

func (l Int64List) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *Int64List) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

// Election represents an election
type Election struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	IsUniversal bool      `db:"is_universal" json:"is_universal"`
	IsSpecial   bool      `db:"is_special" json:"is_special"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`

	// Ballot-structure defaults applied to positions that do not override them
	DefaultBallotType string `db:"default_ballot_type" json:"default_ballot_type"`
	AllowWriteIn      bool   `db:"allow_write_in" json:"allow_write_in"`
	AllowAbstain      bool   `db:"allow_abstain" json:"allow_abstain"`

	// Eligibility predicates; any single match grants eligibility
	EligibleDepartments   StringList `db:"eligible_departments" json:"eligible_departments"`
	EligibleClassLevels   StringList `db:"eligible_class_levels" json:"eligible_class_levels"`
	EligibleOrganizations Int64List  `db:"eligible_organizations" json:"eligible_organizations"`
	EligibleVoterIDs      Int64List  `db:"eligible_voter_ids" json:"eligible_voter_ids"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Position represents a single office or question within an election
type Position struct {
	ID            int64  `db:"id" json:"id"`
	ElectionID    int64  `db:"election_id" json:"election_id"`
	Name          string `db:"name" json:"name"`
	Description   string `db:"description" json:"description"`
	Type          string `db:"type" json:"type"`
	MaxSelection  *int   `db:"max_selection" json:"max_selection,omitempty"`   // multiple only
	RankingLevels *int   `db:"ranking_levels" json:"ranking_levels,omitempty"` // ranked only
	AllowAbstain  bool   `db:"allow_abstain" json:"allow_abstain"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Candidate represents an approved or pending candidacy for a position
type Candidate struct {
	ID         int64     `db:"id" json:"id"`
	PositionID int64     `db:"position_id" json:"position_id"`
	ElectionID int64     `db:"election_id" json:"election_id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	Name       string    `db:"name" json:"name"`
	Tagline    string    `db:"tagline" json:"tagline"`
	Bio        string    `db:"bio" json:"bio"`
	Approved   bool      `db:"approved" json:"approved"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Ballot represents one voter's complete submission for an election.
// Immutable once created; at most one row per (election_id, voter_id).
type Ballot struct {
	ID         int64     `db:"id" json:"id"`
	ElectionID int64     `db:"election_id" json:"election_id"`
	VoterID    int64     `db:"voter_id" json:"voter_id"`
	VoteData   []byte    `db:"vote_data" json:"vote_data"` // JSON keyed by position_<id>
	VotedAt    time.Time `db:"voted_at" json:"voted_at"`
}

// Student mirrors the identity provider's student directory; maintained
// externally, read-only here
type Student struct {
	ID            int64     `db:"id" json:"id"`
	Department    string    `db:"department" json:"department"`
	ClassLevel    string    `db:"class_level" json:"class_level"`
	Organizations Int64List `db:"organizations" json:"organizations"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Participation is one ballot a voter cast, joined with its election's
// time window and flags; input to the campus statistics computation
type Participation struct {
	ElectionID int64     `db:"election_id" json:"election_id"`
	VotedAt    time.Time `db:"voted_at" json:"voted_at"`
	StartTime  time.Time `db:"start_time" json:"start_time"`
	EndTime    time.Time `db:"end_time" json:"end_time"`
	IsSpecial  bool      `db:"is_special" json:"is_special"`
	Status     string    `db:"status" json:"status"`
}

// AuditLog represents an audit log entry
type AuditLog struct {
	ID         int64     `db:"id" json:"id"`
	Action     string    `db:"action" json:"action"`
	UserID     string    `db:"user_id" json:"user_id"`
	ElectionID int64     `db:"election_id" json:"election_id"`
	Details    string    `db:"details" json:"details"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
