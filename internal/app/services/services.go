package services

import (
	"context"

	"github.com/tharun/campusvote/internal/app/models"
)

// Services defined in this package:
// - VotingService: registration, ballot casting and results
// - ElectionService: schedule, roster, turnout and the re-election reset
// - AdminAuthService: admin credential check and token issuance

// VotingService exposes the vote-integrity operations.
type VotingService interface {
	RegisterStudent(ctx context.Context, registerNumber, name string) (*models.Student, error)
	HasVoted(ctx context.Context, registerNumber string) (bool, error)
	CastVote(ctx context.Context, registerNumber, candidate string) (*models.Vote, error)
	Tally(ctx context.Context) (models.TallyResult, error)
	DeclareWinner(ctx context.Context) (*models.WinnerResult, error)
}

// ElectionService exposes administrative election operations.
type ElectionService interface {
	Schedule(ctx context.Context) (*models.ScheduleStatus, error)
	SetSchedule(ctx context.Context, settings *models.ElectionSettings) error
	SetVotingEnabled(ctx context.Context, enabled bool) error
	Reset(ctx context.Context) error
	ListStudents(ctx context.Context) ([]models.Student, error)
	ListBallots(ctx context.Context) ([]models.Ballot, error)
	Turnout(ctx context.Context) (*models.Turnout, error)
}

// AdminAuthService authenticates the election administrator.
type AdminAuthService interface {
	Login(ctx context.Context, username, password string) (token string, expiresIn int, err error)
}

// Store interfaces are defined on the consumer side so services can be
// tested against in-memory fakes. The repositories package provides the
// PostgreSQL implementations.

// StudentStore persists student records.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByRegisterNumber(ctx context.Context, registerNumber string) (*models.Student, error)
	Exists(ctx context.Context, registerNumber string) (bool, error)
	List(ctx context.Context) ([]models.Student, error)
	Count(ctx context.Context) (int, error)
}

// VoteStore persists ballots. Create must reject a second ballot for the
// same register number atomically, surfacing apperrors.ErrAlreadyVoted.
type VoteStore interface {
	Create(ctx context.Context, vote *models.Vote) error
	HasVoted(ctx context.Context, registerNumber string) (bool, error)
	Tally(ctx context.Context) (models.TallyResult, error)
	Count(ctx context.Context) (int, error)
	ListBallots(ctx context.Context) ([]models.Ballot, error)
}

// ElectionStore persists election settings and performs the bulk reset.
type ElectionStore interface {
	GetSettings(ctx context.Context) (*models.ElectionSettings, error)
	UpsertSettings(ctx context.Context, settings *models.ElectionSettings) error
	SetVotingEnabled(ctx context.Context, enabled bool) error
	Reset(ctx context.Context) error
}
