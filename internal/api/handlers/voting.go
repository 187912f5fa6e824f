package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"campus-vote/internal/api/interfaces"
	"campus-vote/internal/api/models"
	"campus-vote/internal/database"
	"campus-vote/internal/voting"

	"github.com/gin-gonic/gin"
)

// Helper functions
func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.ClientIP()
}

func createAuditLog(services interfaces.Services, action string, voterID, electionID int64, details, clientIP string) {
	entry := &database.AuditLog{
		Action:     action,
		UserID:     strconv.FormatInt(voterID, 10),
		ElectionID: electionID,
		Details:    details,
		IPAddress:  clientIP,
		CreatedAt:  time.Now(),
	}

	if err := services.AuditLogRepository().InsertAuditLog(entry); err != nil {
		services.GetLogger().Error("Failed to create audit log: %v", err)
	}
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.BaseResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Unix(),
		RequestID: c.GetString("request_id"),
	})
}

func respondError(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, models.BaseResponse{
		Success: false,
		Error: &models.ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now().Unix(),
		RequestID: c.GetString("request_id"),
	})
}

func electionIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest,
			"Invalid election id", nil)
		return 0, false
	}
	return id, true
}

func voterFromContext(c *gin.Context) (voting.Voter, bool) {
	value, exists := c.Get("voter")
	if !exists {
		respondError(c, http.StatusUnauthorized, models.ErrCodeUnauthorized,
			"Voter identity missing from request context", nil)
		return voting.Voter{}, false
	}
	voter, ok := value.(voting.Voter)
	if !ok {
		respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
			"Invalid voter context", nil)
		return voting.Voter{}, false
	}
	return voter, true
}

// loadVisibleElection fetches a non-draft election or writes a 404. Draft
// elections are indistinguishable from missing ones outside the admin
// surface.
func loadVisibleElection(c *gin.Context, services interfaces.Services, electionID int64) (*database.Election, bool) {
	election, err := services.ElectionRepository().GetElectionByID(electionID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			services.GetLogger().Error("Failed to load election %d: %v", electionID, err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Failed to load election", nil)
			return nil, false
		}
		respondError(c, http.StatusNotFound, models.ErrCodeNotFound, "Election not found", nil)
		return nil, false
	}

	if !voting.IsVisible(election) {
		respondError(c, http.StatusNotFound, models.ErrCodeNotFound, "Election not found", nil)
		return nil, false
	}

	return election, true
}

// CastBallot handles ballot submission requests
func CastBallot(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		electionID, ok := electionIDParam(c)
		if !ok {
			return
		}

		voter, ok := voterFromContext(c)
		if !ok {
			return
		}

		var req models.CastBallotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest,
				"Invalid request format: "+err.Error(), nil)
			return
		}

		clientIP := getClientIP(c)
		services.GetLogger().Info("Ballot submission attempt - election: %d, voter: %d, ip: %s",
			electionID, voter.ID, clientIP)

		// The student directory is the source of truth for active status;
		// a token can outlive a withdrawal
		student, err := services.StudentRepository().GetStudentByID(voter.ID)
		if err != nil || !student.IsActive {
			createAuditLog(services, "ballot_rejected_inactive_student", voter.ID, electionID,
				"Student not found or inactive", clientIP)
			respondError(c, http.StatusForbidden, models.ErrCodeNotEligible,
				"Student record not found or inactive", nil)
			return
		}

		election, ok := loadVisibleElection(c, services, electionID)
		if !ok {
			return
		}

		positions, err := services.PositionRepository().ListByElection(electionID)
		if err != nil {
			services.GetLogger().Error("Failed to load positions for election %d: %v", electionID, err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Failed to load election positions", nil)
			return
		}

		candidatesByPosition, err := services.CandidateRepository().ListApprovedByElection(electionID)
		if err != nil {
			services.GetLogger().Error("Failed to load candidates for election %d: %v", electionID, err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Failed to load election candidates", nil)
			return
		}
		approved := approvedIDsByPosition(candidatesByPosition)

		ctx, cancel := context.WithTimeout(c.Request.Context(), services.GetConfig().API.CastTimeout)
		defer cancel()

		ballot, err := services.GetCaster().Cast(ctx, election, positions, approved, voter, req.VoteData)
		if err != nil {
			writeCastError(c, services, err)
			return
		}

		services.GetLogger().BallotLogger("ballot_cast", electionID, voter.ID,
			fmt.Sprintf("Ballot %d recorded", ballot.ID))

		respondOK(c, http.StatusCreated, "Ballot cast successfully", models.VoteResponse{
			BallotID:   ballot.ID,
			ElectionID: ballot.ElectionID,
			VotedAt:    ballot.VotedAt.Unix(),
		})
	}
}

// writeCastError maps casting protocol failures onto structured responses.
// Every precondition failure has a distinct code so clients can show the
// voter what actually went wrong.
func writeCastError(c *gin.Context, services interfaces.Services, err error) {
	var invalid *voting.InvalidBallotError

	switch {
	case errors.Is(err, voting.ErrElectionNotOpen):
		respondError(c, http.StatusBadRequest, models.ErrCodeElectionNotOpen,
			"Election is not open for voting", nil)

	case errors.Is(err, voting.ErrNotEligible):
		respondError(c, http.StatusForbidden, models.ErrCodeNotEligible,
			"You are not eligible to vote in this election", nil)

	case errors.Is(err, voting.ErrAlreadyVoted):
		respondError(c, http.StatusConflict, models.ErrCodeAlreadyVoted,
			"You have already cast a ballot in this election", nil)

	case errors.Is(err, voting.ErrNoSelectionMade):
		respondError(c, http.StatusBadRequest, models.ErrCodeNoSelectionMade,
			"Ballot must select at least one candidate", nil)

	case errors.As(err, &invalid):
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidBallot,
			"Ballot failed validation", invalid.Failures)

	case errors.Is(err, context.DeadlineExceeded):
		services.GetLogger().Error("Ballot cast timed out: %v", err)
		respondError(c, http.StatusGatewayTimeout, models.ErrCodeInternalError,
			"Ballot submission timed out; no vote was recorded", nil)

	default:
		services.GetLogger().Error("Ballot cast failed: %v", err)
		respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
			"Failed to record ballot", nil)
	}
}

func approvedIDsByPosition(candidates map[int64][]database.Candidate) map[int64][]int64 {
	approved := make(map[int64][]int64, len(candidates))
	for positionID, list := range candidates {
		ids := make([]int64, 0, len(list))
		for _, candidate := range list {
			ids = append(ids, candidate.ID)
		}
		approved[positionID] = ids
	}
	return approved
}
