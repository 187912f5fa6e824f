package models

import "encoding/json"

// BaseResponse represents the base API response structure
type BaseResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp" example:"1640995200"`
	RequestID string      `json:"request_id,omitempty" example:"req_123456"`
}

// ErrorInfo represents error information
type ErrorInfo struct {
	Code    string      `json:"code" example:"INVALID_REQUEST"`
	Message string      `json:"message" example:"Invalid request parameters"`
	Details interface{} `json:"details,omitempty"`
}

// VoteResponse represents ballot submission response
type VoteResponse struct {
	BallotID   int64 `json:"ballot_id" example:"12345"`
	ElectionID int64 `json:"election_id" example:"1"`
	VotedAt    int64 `json:"voted_at" example:"1640995200"`
}

// ElectionSummary represents one election in the election list
type ElectionSummary struct {
	ID          int64  `json:"id" example:"1"`
	Title       string `json:"title" example:"Student Council 2026"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status" example:"Open"`
	IsSpecial   bool   `json:"is_special" example:"false"`
	StartTime   int64  `json:"start_time" example:"1640995200"`
	EndTime     int64  `json:"end_time" example:"1641081600"`
	IsEligible  bool   `json:"is_eligible" example:"true"`
	HasVoted    bool   `json:"has_voted" example:"false"`
}

// ElectionDetail represents full election information
type ElectionDetail struct {
	ElectionSummary
	AllowAbstain bool           `json:"allow_abstain" example:"true"`
	Positions    []PositionInfo `json:"positions"`
}

// PositionInfo represents one position on a ballot form
type PositionInfo struct {
	ID            int64           `json:"id" example:"1"`
	Name          string          `json:"name" example:"President"`
	Description   string          `json:"description,omitempty"`
	Type          string          `json:"type" example:"single"`
	MaxSelection  *int            `json:"max_selection,omitempty" example:"2"`
	RankingLevels *int            `json:"ranking_levels,omitempty" example:"3"`
	AllowAbstain  bool            `json:"allow_abstain" example:"true"`
	Candidates    []CandidateInfo `json:"candidates"`
}

// CandidateInfo represents an approved candidate
type CandidateInfo struct {
	ID      int64  `json:"id" example:"42"`
	Name    string `json:"name" example:"Ada Obi"`
	Tagline string `json:"tagline,omitempty" example:"A voice for every hall"`
	Bio     string `json:"bio,omitempty"`
}

// BallotFormResponse represents the voting form for one election. For a
// returning voter ExistingBallot carries the recorded vote document so the
// form can render their selections.
type BallotFormResponse struct {
	Election       ElectionDetail  `json:"election"`
	VoteKey        string          `json:"vote_key_format" example:"position_<id>"`
	ExistingBallot json.RawMessage `json:"existing_ballot,omitempty"`
}

// HealthCheckResponse represents health check response
type HealthCheckResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Timestamp int64             `json:"timestamp" example:"1640995200"`
	Version   string            `json:"version" example:"1.0.0"`
	Checks    map[string]string `json:"checks"`
}
