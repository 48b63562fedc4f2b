package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tharun/campusvote/internal/app/models"
	"github.com/tharun/campusvote/internal/pkg/apperrors"
)

// electionService implements ElectionService
type electionService struct {
	students  StudentStore
	votes     VoteStore
	elections ElectionStore
	logger    zerolog.Logger
}

// NewElectionService creates a new ElectionService
func NewElectionService(students StudentStore, votes VoteStore, elections ElectionStore, logger zerolog.Logger) ElectionService {
	return &electionService{
		students:  students,
		votes:     votes,
		elections: elections,
		logger:    logger,
	}
}

// Schedule evaluates the stored schedule against the current time.
func (s *electionService) Schedule(ctx context.Context) (*models.ScheduleStatus, error) {
	settings, err := s.elections.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &models.ScheduleStatus{
		Settings:      settings,
		Phase:         settings.Phase(now),
		TimeRemaining: settings.TimeRemaining(now),
	}, nil
}

// SetSchedule stores a new voting window. The start must precede the end
// when both are set; a window with only one bound is rejected.
func (s *electionService) SetSchedule(ctx context.Context, settings *models.ElectionSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", apperrors.ErrInvalidInput)
	}
	if (settings.VotingStartTime == nil) != (settings.VotingEndTime == nil) {
		return fmt.Errorf("%w: start and end must be set together", apperrors.ErrInvalidInput)
	}
	if settings.VotingStartTime != nil && !settings.VotingStartTime.Before(*settings.VotingEndTime) {
		return fmt.Errorf("%w: voting start must be before voting end", apperrors.ErrInvalidInput)
	}

	if err := s.elections.UpsertSettings(ctx, settings); err != nil {
		return err
	}

	s.logger.Info().
		Bool("votingEnabled", settings.VotingEnabled).
		Bool("autoDeclareWinner", settings.AutoDeclareWinner).
		Msg("Election schedule updated")
	return nil
}

// SetVotingEnabled flips the manual voting switch.
func (s *electionService) SetVotingEnabled(ctx context.Context, enabled bool) error {
	return s.elections.SetVotingEnabled(ctx, enabled)
}

// Reset performs a full re-election: every ballot and every student record
// is deleted in one transaction. There is no undo.
func (s *electionService) Reset(ctx context.Context) error {
	if err := s.elections.Reset(ctx); err != nil {
		return err
	}

	s.logger.Warn().Msg("Election reset executed")
	return nil
}

// ListStudents returns the roster, newest registrations first.
func (s *electionService) ListStudents(ctx context.Context) ([]models.Student, error) {
	return s.students.List(ctx)
}

// ListBallots returns all cast ballots with voter details, newest first.
func (s *electionService) ListBallots(ctx context.Context) ([]models.Ballot, error) {
	return s.votes.ListBallots(ctx)
}

// Turnout reports registration and participation counts.
func (s *electionService) Turnout(ctx context.Context) (*models.Turnout, error) {
	registered, err := s.students.Count(ctx)
	if err != nil {
		return nil, err
	}

	votesCast, err := s.votes.Count(ctx)
	if err != nil {
		return nil, err
	}

	turnout := &models.Turnout{
		Registered: registered,
		VotesCast:  votesCast,
	}
	if registered > 0 {
		turnout.Percent = float64(votesCast) / float64(registered) * 100
	}

	return turnout, nil
}
