package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tharun/campusvote/internal/app/models"
	"github.com/tharun/campusvote/internal/db"
	"github.com/tharun/campusvote/internal/pkg/logger"
)

// ElectionRepository handles election settings and the full re-election reset.
// It holds the database wrapper rather than the bare pool because Reset needs
// the transaction helper.
type ElectionRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewElectionRepository creates a new ElectionRepository
func NewElectionRepository(database *db.PostgresDB) *ElectionRepository {
	return &ElectionRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetSettings retrieves the election settings row. A nil result with no
// error means no schedule has ever been configured.
func (r *ElectionRepository) GetSettings(ctx context.Context) (*models.ElectionSettings, error) {
	var settings models.ElectionSettings
	sql, args, err := r.sb.Select("voting_start_time", "voting_end_time", "voting_enabled", "auto_declare_winner", "updated_at").
		From("election_settings").
		Where(squirrel.Eq{"id": 1}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get settings SQL")
		return nil, fmt.Errorf("failed to build get settings query: %w", err)
	}

	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&settings.VotingStartTime, &settings.VotingEndTime,
		&settings.VotingEnabled, &settings.AutoDeclareWinner, &settings.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Msg("Error scanning settings row")
		return nil, fmt.Errorf("error retrieving election settings: %w", err)
	}

	return &settings, nil
}

// UpsertSettings writes the single settings row, creating it on first use.
func (r *ElectionRepository) UpsertSettings(ctx context.Context, settings *models.ElectionSettings) error {
	query := `
		INSERT INTO election_settings (id, voting_start_time, voting_end_time, voting_enabled, auto_declare_winner, updated_at)
		VALUES (1, $1, $2, $3, $4, now())
		ON CONFLICT (id) DO UPDATE SET
			voting_start_time = EXCLUDED.voting_start_time,
			voting_end_time = EXCLUDED.voting_end_time,
			voting_enabled = EXCLUDED.voting_enabled,
			auto_declare_winner = EXCLUDED.auto_declare_winner,
			updated_at = now()
	`
	_, err := r.db.Pool.Exec(ctx, query,
		settings.VotingStartTime, settings.VotingEndTime,
		settings.VotingEnabled, settings.AutoDeclareWinner)
	if err != nil {
		logger.Error().Err(err).Msg("Error upserting election settings")
		return fmt.Errorf("error saving election settings: %w", err)
	}

	logger.Info().Bool("votingEnabled", settings.VotingEnabled).Msg("Election settings saved")
	return nil
}

// SetVotingEnabled flips the manual voting switch without touching the window.
func (r *ElectionRepository) SetVotingEnabled(ctx context.Context, enabled bool) error {
	query := `
		INSERT INTO election_settings (id, voting_enabled, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET
			voting_enabled = EXCLUDED.voting_enabled,
			updated_at = now()
	`
	if _, err := r.db.Pool.Exec(ctx, query, enabled); err != nil {
		logger.Error().Err(err).Msg("Error updating voting enabled flag")
		return fmt.Errorf("error updating voting switch: %w", err)
	}

	logger.Info().Bool("votingEnabled", enabled).Msg("Voting switch updated")
	return nil
}

// Reset deletes every ballot and every student in a single transaction.
// Votes go first to satisfy the foreign key. While the transaction is open
// no concurrent castVote can observe a half-reset election.
func (r *ElectionRepository) Reset(ctx context.Context) error {
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM votes`); err != nil {
			return fmt.Errorf("error deleting votes: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM students`); err != nil {
			return fmt.Errorf("error deleting students: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("Election reset failed")
		return err
	}

	logger.Info().Msg("Election reset: all students and votes deleted")
	return nil
}
