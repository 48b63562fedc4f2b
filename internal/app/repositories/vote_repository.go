package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tharun/campusvote/internal/app/models"
	"github.com/tharun/campusvote/internal/pkg/apperrors"
	"github.com/tharun/campusvote/internal/pkg/dberrors"
	"github.com/tharun/campusvote/internal/pkg/logger"
)

// VoteRepository handles vote database operations
type VoteRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a ballot. The unique constraint on register_number is the
// double-vote guard: two concurrent inserts for the same student race, the
// database lets exactly one through, and the loser comes back as
// apperrors.ErrAlreadyVoted. No prior existence check decides this.
func (r *VoteRepository) Create(ctx context.Context, vote *models.Vote) error {
	sql, args, err := r.sb.Insert("votes").
		Columns("register_number", "candidate").
		Values(vote.RegisterNumber, string(vote.Candidate)).
		Suffix("RETURNING id, vote_time").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create vote SQL")
		return fmt.Errorf("failed to build create vote query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&vote.ID, &vote.CastAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "votes_register_number_key") {
			logger.Warn().Str("registerNumber", vote.RegisterNumber).Msg("Rejected duplicate vote")
			return apperrors.ErrAlreadyVoted
		}
		if dberrors.IsForeignKeyViolation(err, "votes_register_number_fkey") {
			logger.Warn().Str("registerNumber", vote.RegisterNumber).Msg("Vote attempted for unregistered student")
			return apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("registerNumber", vote.RegisterNumber).Msg("Error executing create vote query")
		return fmt.Errorf("error creating vote: %w", err)
	}

	logger.Info().Str("registerNumber", vote.RegisterNumber).Str("candidate", vote.Candidate.String()).Msg("Vote recorded")
	return nil
}

// HasVoted checks whether a ballot exists for the register number
func (r *VoteRepository) HasVoted(ctx context.Context, registerNumber string) (bool, error) {
	var exists bool
	sql, args, err := r.sb.Select("1").
		From("votes").
		Where(squirrel.Eq{"register_number": registerNumber}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building has voted SQL")
		return false, fmt.Errorf("failed to build has voted query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Str("registerNumber", registerNumber).Msg("Error checking vote existence")
		return false, fmt.Errorf("error checking vote existence: %w", err)
	}

	return exists, nil
}

// Tally counts ballots grouped by candidate. Every recognized candidate is
// present in the result; candidates without votes carry a zero count.
func (r *VoteRepository) Tally(ctx context.Context) (models.TallyResult, error) {
	sql, args, err := r.sb.Select("candidate", "COUNT(*)").
		From("votes").
		GroupBy("candidate").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building tally SQL")
		return nil, fmt.Errorf("failed to build tally query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing tally query")
		return nil, fmt.Errorf("error tallying votes: %w", err)
	}
	defer rows.Close()

	tally := models.NewTallyResult()
	for rows.Next() {
		var candidate string
		var count int
		if err := rows.Scan(&candidate, &count); err != nil {
			return nil, fmt.Errorf("error scanning tally row: %w", err)
		}
		tally[models.Candidate(candidate)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tally rows: %w", err)
	}

	return tally, nil
}

// Count returns the total number of ballots cast
func (r *VoteRepository) Count(ctx context.Context) (int, error) {
	var count int
	sql, args, err := r.sb.Select("COUNT(*)").From("votes").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count votes query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting votes")
		return 0, fmt.Errorf("error counting votes: %w", err)
	}

	return count, nil
}

// ListBallots retrieves ballots joined with voter records, newest first
func (r *VoteRepository) ListBallots(ctx context.Context) ([]models.Ballot, error) {
	sql, args, err := r.sb.Select("s.register_number", "s.name", "v.candidate", "v.vote_time").
		From("votes v").
		Join("students s ON s.register_number = v.register_number").
		OrderBy("v.vote_time DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list ballots SQL")
		return nil, fmt.Errorf("failed to build list ballots query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list ballots query")
		return nil, fmt.Errorf("error listing ballots: %w", err)
	}
	defer rows.Close()

	ballots := make([]models.Ballot, 0)
	for rows.Next() {
		var ballot models.Ballot
		var candidate string
		if err := rows.Scan(&ballot.RegisterNumber, &ballot.Name, &candidate, &ballot.CastAt); err != nil {
			return nil, fmt.Errorf("error scanning ballot row: %w", err)
		}
		ballot.Candidate = models.Candidate(candidate)
		ballots = append(ballots, ballot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ballot rows: %w", err)
	}

	return ballots, nil
}
