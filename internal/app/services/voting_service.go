package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tharun/campusvote/internal/app/models"
	"github.com/tharun/campusvote/internal/pkg/apperrors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// votingService implements VotingService
type votingService struct {
	students  StudentStore
	votes     VoteStore
	elections ElectionStore
	logger    zerolog.Logger
}

// NewVotingService creates a new VotingService
func NewVotingService(students StudentStore, votes VoteStore, elections ElectionStore, logger zerolog.Logger) VotingService {
	return &votingService{
		students:  students,
		votes:     votes,
		elections: elections,
		logger:    logger,
	}
}

// NormalizeRegisterNumber canonicalizes a register number for storage and
// lookup. Register numbers are compared case-insensitively by storing them
// upper-cased.
func NormalizeRegisterNumber(registerNumber string) string {
	return strings.ToUpper(strings.TrimSpace(registerNumber))
}

// normalizeName trims and title-cases a student name.
func normalizeName(name string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(name))
}

// RegisterStudent validates and persists a new student. Duplicate register
// numbers are rejected by the primary key and surface as
// apperrors.ErrStudentAlreadyRegistered.
func (s *votingService) RegisterStudent(ctx context.Context, registerNumber, name string) (*models.Student, error) {
	registerNumber = NormalizeRegisterNumber(registerNumber)
	if registerNumber == "" {
		return nil, fmt.Errorf("%w: register number cannot be empty", apperrors.ErrInvalidInput)
	}

	name = normalizeName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrInvalidInput)
	}

	student := &models.Student{
		RegisterNumber: registerNumber,
		Name:           name,
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Str("registerNumber", student.RegisterNumber).Msg("Student registered")
	return student, nil
}

// HasVoted reports whether the student has already cast a ballot.
func (s *votingService) HasVoted(ctx context.Context, registerNumber string) (bool, error) {
	registerNumber = NormalizeRegisterNumber(registerNumber)
	if registerNumber == "" {
		return false, fmt.Errorf("%w: register number cannot be empty", apperrors.ErrInvalidInput)
	}

	exists, err := s.students.Exists(ctx, registerNumber)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, apperrors.ErrStudentNotFound
	}

	return s.votes.HasVoted(ctx, registerNumber)
}

// CastVote records a ballot for a registered student. The vote insert is a
// single atomic statement; the unique constraint on the votes relation, not
// a prior read, decides the duplicate-vote race. A losing concurrent cast
// comes back as apperrors.ErrAlreadyVoted, an unknown register number as
// apperrors.ErrStudentNotFound via the foreign key.
func (s *votingService) CastVote(ctx context.Context, registerNumber, candidate string) (*models.Vote, error) {
	registerNumber = NormalizeRegisterNumber(registerNumber)
	if registerNumber == "" {
		return nil, fmt.Errorf("%w: register number cannot be empty", apperrors.ErrInvalidInput)
	}

	parsed, ok := models.ParseCandidate(candidate)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidCandidate, candidate)
	}

	settings, err := s.elections.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	// An election with no settings row has no restrictions. A configured
	// schedule or a flipped switch closes voting.
	if settings != nil && !settings.VotingOpen(time.Now()) {
		return nil, apperrors.ErrVotingClosed
	}

	vote := &models.Vote{
		RegisterNumber: registerNumber,
		Candidate:      parsed,
	}

	if err := s.votes.Create(ctx, vote); err != nil {
		return nil, err
	}

	s.logger.Info().Str("registerNumber", vote.RegisterNumber).Str("candidate", parsed.String()).Msg("Ballot cast")
	return vote, nil
}

// Tally counts ballots per candidate, zero-filling absent candidates.
func (s *votingService) Tally(ctx context.Context) (models.TallyResult, error) {
	return s.votes.Tally(ctx)
}

// DeclareWinner computes the election result from the current tally.
func (s *votingService) DeclareWinner(ctx context.Context) (*models.WinnerResult, error) {
	tally, err := s.votes.Tally(ctx)
	if err != nil {
		return nil, err
	}

	result := WinnerFromTally(tally)
	s.logger.Info().Str("outcome", string(result.Outcome)).Str("winner", result.Winner.String()).Msg("Winner computed")
	return result, nil
}

// WinnerFromTally is the pure declaration rule: the candidate with more
// votes wins by the absolute margin; equal non-zero counts tie; an empty
// ballot box is reported distinctly.
func WinnerFromTally(tally models.TallyResult) *models.WinnerResult {
	messi := tally[models.CandidateMessi]
	ronaldo := tally[models.CandidateRonaldo]

	result := &models.WinnerResult{Tally: tally}
	switch {
	case messi == 0 && ronaldo == 0:
		result.Outcome = models.OutcomeNoVotesYet
	case messi == ronaldo:
		result.Outcome = models.OutcomeTie
	case messi > ronaldo:
		result.Outcome = models.OutcomeWinner
		result.Winner = models.CandidateMessi
		result.Margin = messi - ronaldo
	default:
		result.Outcome = models.OutcomeWinner
		result.Winner = models.CandidateRonaldo
		result.Margin = ronaldo - messi
	}

	return result
}
