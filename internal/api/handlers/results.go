package handlers

import (
	"errors"
	"net/http"
	"time"

	"campus-vote/internal/api/interfaces"
	"campus-vote/internal/api/models"
	"campus-vote/internal/voting"

	"github.com/gin-gonic/gin"
)

// GetElectionResults tallies and returns results for a closed election.
// Results are derived on demand from the stored ballots; there is no
// results table to drift out of sync.
func GetElectionResults(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		electionID, ok := electionIDParam(c)
		if !ok {
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

		ballots, err := services.BallotRepository().ListByElection(electionID)
		if err != nil {
			services.GetLogger().Error("Failed to load ballots for election %d: %v", electionID, err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Failed to load ballots", nil)
			return
		}

		result, err := voting.ComputeElectionResults(time.Now(), election, positions,
			candidatesByPosition, ballots)
		if err != nil {
			if errors.Is(err, voting.ErrResultsNotAvailable) {
				respondError(c, http.StatusConflict, models.ErrCodeResultsNotAvailable,
					"Results are not available until the election closes", nil)
				return
			}
			services.GetLogger().Error("Failed to compute results for election %d: %v", electionID, err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Failed to compute results", nil)
			return
		}

		respondOK(c, http.StatusOK, "", result)
	}
}
