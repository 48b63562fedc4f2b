// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tharun/campusvote/internal/app/models"
	"github.com/tharun/campusvote/internal/app/models/dto"
	"github.com/tharun/campusvote/internal/app/services"
	"github.com/tharun/campusvote/internal/middleware"
)

// VotingController handles student registration and ballot operations
type VotingController struct {
	votingService   services.VotingService
	electionService services.ElectionService
	logger          zerolog.Logger
}

// NewVotingController creates a new VotingController
func NewVotingController(votingService services.VotingService, electionService services.ElectionService, logger zerolog.Logger) *VotingController {
	return &VotingController{
		votingService:   votingService,
		electionService: electionService,
		logger:          logger,
	}
}

// RegisterStudent handles student registration
// @Summary Register a student
// @Description Adds a student to the voter roll. Each register number can be registered only once.
// @Tags voting
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or blank fields"
// @Failure 409 {object} dto.ErrorResponse "Register number already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *VotingController) RegisterStudent(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student registration payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.votingService.RegisterStudent(ctx.Request.Context(), req.RegisterNumber, req.Name)
	if err != nil {
		c.logger.Warn().Err(err).Str("registerNumber", req.RegisterNumber).Msg("Student registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("registerNumber", student.RegisterNumber).
		Str("name", student.Name).
		Msg("Student registered")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// HasVoted reports whether a student has already cast a ballot
// @Summary Check vote status
// @Description Returns whether the student with the given register number has already voted
// @Tags voting
// @Produce json
// @Param registerNumber path string true "Student register number"
// @Success 200 {object} dto.APIResponse{data=dto.HasVotedResponse} "Vote status"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{registerNumber}/voted [get]
func (c *VotingController) HasVoted(ctx *gin.Context) {
	registerNumber := ctx.Param("registerNumber")

	voted, err := c.votingService.HasVoted(ctx.Request.Context(), registerNumber)
	if err != nil {
		c.logger.Warn().Err(err).Str("registerNumber", registerNumber).Msg("Vote status lookup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.HasVotedResponse{
			RegisterNumber: services.NormalizeRegisterNumber(registerNumber),
			HasVoted:       voted,
		},
		Timestamp: time.Now(),
	})
}

// CastVote records a ballot
// @Summary Cast a vote
// @Description Records one ballot for a registered student. A second ballot from the same student is rejected.
// @Tags voting
// @Accept json
// @Produce json
// @Param request body dto.CastVoteRequest true "Ballot"
// @Success 201 {object} dto.APIResponse{data=models.Vote} "Vote recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or unknown candidate"
// @Failure 403 {object} dto.ErrorResponse "Voting is closed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Student has already voted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /votes [post]
func (c *VotingController) CastVote(ctx *gin.Context) {
	var req dto.CastVoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid ballot payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	vote, err := c.votingService.CastVote(ctx.Request.Context(), req.RegisterNumber, req.Candidate)
	if err != nil {
		c.logger.Warn().Err(err).Str("registerNumber", req.RegisterNumber).Msg("Ballot rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("registerNumber", vote.RegisterNumber).
		Str("candidate", vote.Candidate.String()).
		Msg("Vote recorded")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      vote,
		Timestamp: time.Now(),
	})
}

// Results returns the public tally
// @Summary Election results
// @Description Returns the per-candidate tally. The winner is included once the voting window has ended and auto-declare is enabled.
// @Tags voting
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ResultsResponse} "Current tally"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results [get]
func (c *VotingController) Results(ctx *gin.Context) {
	tally, err := c.votingService.Tally(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to compute tally")
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.ResultsResponse{
		Tally:      tally,
		TotalVotes: tally.Total(),
	}

	// The winner is published automatically only after the scheduled window
	// has ended with auto-declare enabled.
	status, err := c.electionService.Schedule(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load election schedule")
		middleware.HandleAPIError(ctx, err)
		return
	}
	if status.Settings != nil && status.Settings.AutoDeclareWinner && status.Phase == models.ScheduleEnded {
		resp.Winner = services.WinnerFromTally(tally)
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
