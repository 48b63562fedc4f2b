package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tharun/campusvote/internal/app/models"
	"github.com/tharun/campusvote/internal/pkg/apperrors"
)

func newVotingFixture() (VotingService, *memStudentStore, *memVoteStore, *memElectionStore) {
	students := newMemStudentStore()
	votes := newMemVoteStore(students)
	elections := newMemElectionStore(students, votes)
	svc := NewVotingService(students, votes, elections, zerolog.Nop())
	return svc, students, votes, elections
}

func TestRegisterStudent(t *testing.T) {
	svc, _, _, _ := newVotingFixture()
	ctx := context.Background()

	student, err := svc.RegisterStudent(ctx, "20cs101", "alice kumar")
	require.NoError(t, err)
	assert.Equal(t, "20CS101", student.RegisterNumber)
	assert.Equal(t, "Alice Kumar", student.Name)
	assert.False(t, student.RegisteredAt.IsZero())
}

func TestRegisterStudentRejectsBlankInput(t *testing.T) {
	svc, _, _, _ := newVotingFixture()
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, "   ", "Alice")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.RegisterStudent(ctx, "20CS101", "  ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRegisterStudentDuplicate(t *testing.T) {
	svc, _, _, _ := newVotingFixture()
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, "20CS101", "Alice")
	require.NoError(t, err)

	// Same register number in a different case is the same student.
	_, err = svc.RegisterStudent(ctx, "20cs101", "Alice Again")
	assert.ErrorIs(t, err, apperrors.ErrStudentAlreadyRegistered)
}

func TestHasVoted(t *testing.T) {
	svc, _, _, _ := newVotingFixture()
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, "20CS101", "Alice")
	require.NoError(t, err)

	voted, err := svc.HasVoted(ctx, "20CS101")
	require.NoError(t, err)
	assert.False(t, voted)

	_, err = svc.CastVote(ctx, "20CS101", "Messi")
	require.NoError(t, err)

	voted, err = svc.HasVoted(ctx, "20cs101")
	require.NoError(t, err)
	assert.True(t, voted)
}

func TestHasVotedUnknownStudent(t *testing.T) {
	svc, _, _, _ := newVotingFixture()

	_, err := svc.HasVoted(context.Background(), "99XX999")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestCastVote(t *testing.T) {
	svc, _, _, _ := newVotingFixture()
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, "20CS101", "Alice")
	require.NoError(t, err)

	vote, err := svc.CastVote(ctx, "20cs101", "messi")
	require.NoError(t, err)
	assert.Equal(t, "20CS101", vote.RegisterNumber)
	assert.Equal(t, models.CandidateMessi, vote.Candidate)
	assert.NotZero(t, vote.ID)
}

func TestCastVoteTwiceRejected(t *testing.T) {
	svc, _, _, _ := newVotingFixture()
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, "20CS101", "Alice")
	require.NoError(t, err)

	_, err = svc.CastVote(ctx, "20CS101", "Messi")
	require.NoError(t, err)

	// Even for a different candidate.
	_, err = svc.CastVote(ctx, "20CS101", "Ronaldo")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyVoted)

	tally, err := svc.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Total())
}

func TestCastVoteUnknownStudent(t *testing.T) {
	svc, _, _, _ := newVotingFixture()

	_, err := svc.CastVote(context.Background(), "99XX999", "Messi")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestCastVoteInvalidCandidate(t *testing.T) {
	svc, _, _, _ := newVotingFixture()
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, "20CS101", "Alice")
	require.NoError(t, err)

	_, err = svc.CastVote(ctx, "20CS101", "Pele")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCandidate)

	// An invalid candidate must not consume the student's ballot.
	voted, err := svc.HasVoted(ctx, "20CS101")
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestCastVoteWhenVotingClosed(t *testing.T) {
	svc, _, _, elections := newVotingFixture()
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, "20CS101", "Alice")
	require.NoError(t, err)

	require.NoError(t, elections.UpsertSettings(ctx, &models.ElectionSettings{VotingEnabled: false}))

	_, err = svc.CastVote(ctx, "20CS101", "Messi")
	assert.ErrorIs(t, err, apperrors.ErrVotingClosed)
}

func TestCastVoteOutsideWindow(t *testing.T) {
	svc, _, _, elections := newVotingFixture()
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, "20CS101", "Alice")
	require.NoError(t, err)

	start := time.Now().Add(time.Hour)
	end := time.Now().Add(2 * time.Hour)
	require.NoError(t, elections.UpsertSettings(ctx, &models.ElectionSettings{
		VotingEnabled:   true,
		VotingStartTime: &start,
		VotingEndTime:   &end,
	}))

	_, err = svc.CastVote(ctx, "20CS101", "Messi")
	assert.ErrorIs(t, err, apperrors.ErrVotingClosed)
}

func TestCastVoteNoSettingsRowMeansOpen(t *testing.T) {
	svc, _, _, _ := newVotingFixture()
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, "20CS101", "Alice")
	require.NoError(t, err)

	_, err = svc.CastVote(ctx, "20CS101", "Ronaldo")
	assert.NoError(t, err)
}

// A burst of concurrent casts for the same student must produce exactly
// one recorded ballot; every other attempt fails as already voted.
func TestCastVoteConcurrentDuplicates(t *testing.T) {
	svc, _, _, _ := newVotingFixture()
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, "20CS101", "Alice")
	require.NoError(t, err)

	const attempts = 50
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int64
		rejected  atomic.Int64
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CastVote(ctx, "20CS101", "Messi")
			switch {
			case err == nil:
				succeeded.Add(1)
			case assert.ErrorIs(t, err, apperrors.ErrAlreadyVoted):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), succeeded.Load())
	assert.Equal(t, int64(attempts-1), rejected.Load())

	tally, err := svc.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, tally[models.CandidateMessi])
}

func TestTallyCountsPerCandidate(t *testing.T) {
	svc, _, _, _ := newVotingFixture()
	ctx := context.Background()

	for _, reg := range []string{"20CS101", "20CS102", "20CS103"} {
		_, err := svc.RegisterStudent(ctx, reg, "Student "+reg)
		require.NoError(t, err)
	}

	_, err := svc.CastVote(ctx, "20CS101", "Messi")
	require.NoError(t, err)
	_, err = svc.CastVote(ctx, "20CS102", "Messi")
	require.NoError(t, err)
	_, err = svc.CastVote(ctx, "20CS103", "Ronaldo")
	require.NoError(t, err)

	tally, err := svc.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, tally[models.CandidateMessi])
	assert.Equal(t, 1, tally[models.CandidateRonaldo])
	assert.Equal(t, 3, tally.Total())
}

func TestWinnerFromTally(t *testing.T) {
	tests := []struct {
		name    string
		messi   int
		ronaldo int
		outcome models.Outcome
		winner  models.Candidate
		margin  int
	}{
		{name: "messi wins", messi: 5, ronaldo: 2, outcome: models.OutcomeWinner, winner: models.CandidateMessi, margin: 3},
		{name: "ronaldo wins", messi: 1, ronaldo: 4, outcome: models.OutcomeWinner, winner: models.CandidateRonaldo, margin: 3},
		{name: "tie", messi: 3, ronaldo: 3, outcome: models.OutcomeTie},
		{name: "no votes yet", messi: 0, ronaldo: 0, outcome: models.OutcomeNoVotesYet},
		{name: "single vote wins", messi: 0, ronaldo: 1, outcome: models.OutcomeWinner, winner: models.CandidateRonaldo, margin: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally := models.NewTallyResult()
			tally[models.CandidateMessi] = tt.messi
			tally[models.CandidateRonaldo] = tt.ronaldo

			result := WinnerFromTally(tally)
			assert.Equal(t, tt.outcome, result.Outcome)
			assert.Equal(t, tt.winner, result.Winner)
			assert.Equal(t, tt.margin, result.Margin)
			assert.Equal(t, tally, result.Tally)
		})
	}
}

func TestDeclareWinner(t *testing.T) {
	svc, _, _, _ := newVotingFixture()
	ctx := context.Background()

	result, err := svc.DeclareWinner(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeNoVotesYet, result.Outcome)

	for _, reg := range []string{"20CS101", "20CS102"} {
		_, err := svc.RegisterStudent(ctx, reg, "Student "+reg)
		require.NoError(t, err)
		_, err = svc.CastVote(ctx, reg, "Messi")
		require.NoError(t, err)
	}

	result, err = svc.DeclareWinner(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeWinner, result.Outcome)
	assert.Equal(t, models.CandidateMessi, result.Winner)
	assert.Equal(t, 2, result.Margin)
}
