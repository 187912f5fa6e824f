package models

// Error codes
const (
	// General errors
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeInternalError  = "INTERNAL_ERROR"
	ErrCodeRateLimited    = "RATE_LIMIT_EXCEEDED"

	// Casting errors
	ErrCodeNotEligible     = "NOT_ELIGIBLE"
	ErrCodeElectionNotOpen = "ELECTION_NOT_OPEN"
	ErrCodeAlreadyVoted    = "ALREADY_VOTED"
	ErrCodeInvalidBallot   = "INVALID_BALLOT"
	ErrCodeNoSelectionMade = "NO_SELECTION_MADE"

	// Results errors
	ErrCodeResultsNotAvailable = "RESULTS_NOT_AVAILABLE"

	// Authentication errors
	ErrCodeInvalidToken = "INVALID_TOKEN"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
)
