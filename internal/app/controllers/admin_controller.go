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

// AdminController handles administrator authentication and election management
type AdminController struct {
	authService     services.AdminAuthService
	electionService services.ElectionService
	votingService   services.VotingService
	logger          zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(authService services.AdminAuthService, electionService services.ElectionService, votingService services.VotingService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		authService:     authService,
		electionService: electionService,
		votingService:   votingService,
		logger:          logger,
	}
}

// Login authenticates the administrator
// @Summary Admin login
// @Description Authenticates the election administrator and returns an access token
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AdminLoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/login [post]
func (c *AdminController) Login(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid admin login payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	token, expiresIn, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Admin login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("username", req.Username).Msg("Admin logged in")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.AdminLoginResponse{
			Token:     token,
			TokenType: "Bearer",
			ExpiresIn: expiresIn,
		},
		Timestamp: time.Now(),
	})
}

// ListStudents returns the voter roll
// @Summary List registered students
// @Description Returns all registered students, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Registered students"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/students [get]
func (c *AdminController) ListStudents(ctx *gin.Context) {
	students, err := c.electionService.ListStudents(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list students")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// ListBallots returns every recorded ballot with student details
// @Summary List cast ballots
// @Description Returns all recorded ballots joined with student information
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Ballot} "Recorded ballots"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/ballots [get]
func (c *AdminController) ListBallots(ctx *gin.Context) {
	ballots, err := c.electionService.ListBallots(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list ballots")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      ballots,
		Timestamp: time.Now(),
	})
}

// Turnout reports participation
// @Summary Election turnout
// @Description Returns registered-student and cast-ballot counts with the turnout percentage
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Turnout} "Turnout figures"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/turnout [get]
func (c *AdminController) Turnout(ctx *gin.Context) {
	turnout, err := c.electionService.Turnout(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to compute turnout")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      turnout,
		Timestamp: time.Now(),
	})
}

// GetSchedule returns the current voting schedule
// @Summary Get voting schedule
// @Description Returns the configured voting window and the current schedule phase
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.ScheduleStatus} "Current schedule"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/schedule [get]
func (c *AdminController) GetSchedule(ctx *gin.Context) {
	status, err := c.electionService.Schedule(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load schedule")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      status,
		Timestamp: time.Now(),
	})
}

// SetSchedule configures the voting window
// @Summary Set voting schedule
// @Description Sets the voting window, the voting switch and the auto-declare flag
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScheduleRequest true "Schedule settings"
// @Success 200 {object} dto.APIResponse{data=models.ScheduleStatus} "Updated schedule"
// @Failure 400 {object} dto.ErrorResponse "Invalid window bounds"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/schedule [put]
func (c *AdminController) SetSchedule(ctx *gin.Context) {
	var req dto.ScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid schedule payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	settings := &models.ElectionSettings{
		VotingStartTime:   req.VotingStartTime,
		VotingEndTime:     req.VotingEndTime,
		VotingEnabled:     req.VotingEnabled,
		AutoDeclareWinner: req.AutoDeclareWinner,
	}
	if err := c.electionService.SetSchedule(ctx.Request.Context(), settings); err != nil {
		c.logger.Warn().Err(err).Msg("Schedule update rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	status, err := c.electionService.Schedule(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load schedule")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Bool("votingEnabled", settings.VotingEnabled).
		Bool("autoDeclareWinner", settings.AutoDeclareWinner).
		Msg("Voting schedule updated")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      status,
		Timestamp: time.Now(),
	})
}

// SetVotingEnabled flips the manual voting switch
// @Summary Enable or disable voting
// @Description Turns ballot acceptance on or off without touching the schedule window
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VotingSwitchRequest true "Switch state"
// @Success 200 {object} dto.APIResponse{data=map[string]bool} "Switch updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/voting [put]
func (c *AdminController) SetVotingEnabled(ctx *gin.Context) {
	var req dto.VotingSwitchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid voting switch payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.electionService.SetVotingEnabled(ctx.Request.Context(), *req.Enabled); err != nil {
		c.logger.Error().Err(err).Msg("Failed to update voting switch")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Bool("enabled", *req.Enabled).Msg("Voting switch updated")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      map[string]bool{"enabled": *req.Enabled},
		Timestamp: time.Now(),
	})
}

// DeclareWinner computes and returns the election outcome
// @Summary Declare the winner
// @Description Computes the outcome from the current tally: a winner with margin, a tie, or no votes yet
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.WinnerResult} "Election outcome"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/winner [get]
func (c *AdminController) DeclareWinner(ctx *gin.Context) {
	result, err := c.votingService.DeclareWinner(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to declare winner")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("outcome", string(result.Outcome)).
		Msg("Winner declared")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// Reset wipes all votes and students for a re-election
// @Summary Reset the election
// @Description Deletes every ballot and every registered student. The schedule settings are kept.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=map[string]string} "Election reset"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/reset [post]
func (c *AdminController) Reset(ctx *gin.Context) {
	if err := c.electionService.Reset(ctx.Request.Context()); err != nil {
		c.logger.Error().Err(err).Msg("Election reset failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Msg("Election reset")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      map[string]string{"message": "Election has been reset. All votes and registrations were removed."},
		Timestamp: time.Now(),
	})
}
