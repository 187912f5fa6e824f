package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"campus-vote/internal/api/interfaces"
	"campus-vote/internal/api/models"
	"campus-vote/internal/database"
	"campus-vote/internal/voting"

	"github.com/gin-gonic/gin"
)

func electionSummary(election *database.Election, voter voting.Voter, hasVoted bool, now time.Time) models.ElectionSummary {
	return models.ElectionSummary{
		ID:          election.ID,
		Title:       election.Title,
		Description: election.Description,
		Status:      string(voting.CurrentStatus(now, election)),
		IsSpecial:   election.IsSpecial,
		StartTime:   election.StartTime.Unix(),
		EndTime:     election.EndTime.Unix(),
		IsEligible:  voting.IsEligible(election, voter),
		HasVoted:    hasVoted,
	}
}

// ListElections returns all visible elections, newest first
func ListElections(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		voter, ok := voterFromContext(c)
		if !ok {
			return
		}

		var query models.ListElectionsQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest,
				"Invalid pagination parameters: "+err.Error(), nil)
			return
		}

		elections, err := services.ElectionRepository().ListVisibleElections(query.Limit, query.Offset)
		if err != nil {
			services.GetLogger().Error("Failed to list elections: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Failed to list elections", nil)
			return
		}

		now := time.Now()
		summaries := make([]models.ElectionSummary, 0, len(elections))
		for i := range elections {
			hasVoted := voterHasBallot(c, services, elections[i].ID, voter.ID)
			summaries = append(summaries, electionSummary(&elections[i], voter, hasVoted, now))
		}

		respondOK(c, http.StatusOK, "", summaries)
	}
}

// GetElection returns full details for one election, including its
// positions and approved candidates
func GetElection(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		electionID, ok := electionIDParam(c)
		if !ok {
			return
		}

		voter, ok := voterFromContext(c)
		if !ok {
			return
		}

		election, ok := loadVisibleElection(c, services, electionID)
		if !ok {
			return
		}

		detail, err := buildElectionDetail(services, election, voter,
			voterHasBallot(c, services, electionID, voter.ID))
		if err != nil {
			services.GetLogger().Error("Failed to build election detail %d: %v", electionID, err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Failed to load election", nil)
			return
		}

		respondOK(c, http.StatusOK, "", detail)
	}
}

// GetBallotForm returns the voting form for one election. Only eligible
// voters can fetch the form; ineligible voters learn the election exists
// from the list endpoint but never see its ballot.
func GetBallotForm(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		electionID, ok := electionIDParam(c)
		if !ok {
			return
		}

		voter, ok := voterFromContext(c)
		if !ok {
			return
		}

		election, ok := loadVisibleElection(c, services, electionID)
		if !ok {
			return
		}

		if !voting.IsEligible(election, voter) {
			respondError(c, http.StatusForbidden, models.ErrCodeNotEligible,
				"You are not eligible to vote in this election", nil)
			return
		}

		ballot, err := services.BallotRepository().GetBallot(c.Request.Context(), electionID, voter.ID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			services.GetLogger().Error("Failed to load ballot for election %d voter %d: %v",
				electionID, voter.ID, err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Failed to load ballot form", nil)
			return
		}

		detail, err := buildElectionDetail(services, election, voter, ballot != nil)
		if err != nil {
			services.GetLogger().Error("Failed to build ballot form %d: %v", electionID, err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Failed to load ballot form", nil)
			return
		}

		form := models.BallotFormResponse{
			Election: detail,
			VoteKey:  "position_<id>",
		}
		if ballot != nil {
			form.ExistingBallot = json.RawMessage(ballot.VoteData)
		}

		respondOK(c, http.StatusOK, "", form)
	}
}

func buildElectionDetail(services interfaces.Services, election *database.Election, voter voting.Voter, hasVoted bool) (models.ElectionDetail, error) {
	positions, err := services.PositionRepository().ListByElection(election.ID)
	if err != nil {
		return models.ElectionDetail{}, err
	}

	candidatesByPosition, err := services.CandidateRepository().ListApprovedByElection(election.ID)
	if err != nil {
		return models.ElectionDetail{}, err
	}

	detail := models.ElectionDetail{
		ElectionSummary: electionSummary(election, voter, hasVoted, time.Now()),
		AllowAbstain:    election.AllowAbstain,
		Positions:       make([]models.PositionInfo, 0, len(positions)),
	}

	for _, position := range positions {
		info := models.PositionInfo{
			ID:            position.ID,
			Name:          position.Name,
			Description:   position.Description,
			Type:          position.Type,
			MaxSelection:  position.MaxSelection,
			RankingLevels: position.RankingLevels,
			AllowAbstain:  position.AllowAbstain,
			Candidates:    make([]models.CandidateInfo, 0),
		}
		for _, candidate := range candidatesByPosition[position.ID] {
			info.Candidates = append(info.Candidates, models.CandidateInfo{
				ID:      candidate.ID,
				Name:    candidate.Name,
				Tagline: candidate.Tagline,
				Bio:     candidate.Bio,
			})
		}
		detail.Positions = append(detail.Positions, info)
	}

	return detail, nil
}

func voterHasBallot(c *gin.Context, services interfaces.Services, electionID, voterID int64) bool {
	ballot, err := services.BallotRepository().GetBallot(c.Request.Context(), electionID, voterID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		services.GetLogger().Warning("Failed to check ballot for election %d voter %d: %v",
			electionID, voterID, err)
	}
	return ballot != nil
}
