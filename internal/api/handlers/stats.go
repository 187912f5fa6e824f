package handlers

import (
	"net/http"

	"campus-vote/internal/api/interfaces"
	"campus-vote/internal/api/models"
	"campus-vote/internal/voting"

	"github.com/gin-gonic/gin"
)

// GetMyStats returns the authenticated student's campus participation
// statistics: elections voted, campus rank, percentile, and impact score
func GetMyStats(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		voter, ok := voterFromContext(c)
		if !ok {
			return
		}

		participation, err := services.BallotRepository().ListParticipation(voter.ID)
		if err != nil {
			services.GetLogger().Error("Failed to load participation for voter %d: %v", voter.ID, err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Failed to load participation history", nil)
			return
		}

		countsByVoter, err := services.BallotRepository().CountByVoter()
		if err != nil {
			services.GetLogger().Error("Failed to load campus vote counts: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Failed to load campus statistics", nil)
			return
		}

		totalStudents, err := services.StudentRepository().CountActive()
		if err != nil {
			services.GetLogger().Error("Failed to count active students: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Failed to load campus statistics", nil)
			return
		}

		closedEligible, err := services.ElectionRepository().CountClosedEligible()
		if err != nil {
			services.GetLogger().Error("Failed to count closed elections: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Failed to load campus statistics", nil)
			return
		}

		stats := voting.ComputeCampusStats(voter.ID, participation, countsByVoter,
			totalStudents, closedEligible)

		respondOK(c, http.StatusOK, "", stats)
	}
}
